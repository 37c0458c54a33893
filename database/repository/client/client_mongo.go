package clientRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonnotify/database"
	"salonnotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new instance of ClientRepository using MongoDB.
func NewMongoClientRepo() ClientRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("clients")
	repo := &MongoClientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoClientRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "marketingConsent", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "lastVisitDate", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// CanReceiveMessages reports whether a client is active and not blocked.
func (r *MongoClientRepo) CanReceiveMessages(clientID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var client models.Client
	err := r.coll.FindOne(ctx, bson.M{"id": clientID}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch client %s: %w", clientID, err)
	}

	return client.IsActive && client.Status != models.ClientStatusBlocked, nil
}

// GetEligibleClients returns clients eligible for a marketing campaign.
func (r *MongoClientRepo) GetEligibleClients(recencyDays int) ([]models.CampaignClient, error) {
	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -recencyDays)

	filter := bson.M{
		"marketingConsent": true,
		"isActive":         true,
		"status":           bson.M{"$ne": models.ClientStatusBlocked},
		"$and": []bson.M{
			{"$or": []bson.M{
				{"lastVisitDate": bson.M{"$lt": cutoff}},
				{"lastVisitDate": nil},
			}},
			{"$or": []bson.M{
				{"whatsapp": bson.M{"$nin": []interface{}{nil, ""}}},
				{"phone": bson.M{"$nin": []interface{}{nil, ""}}},
			}},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible clients: %w", err)
	}
	defer cursor.Close(ctx)

	var eligible []models.CampaignClient
	for cursor.Next(ctx) {
		var client models.Client
		if err := cursor.Decode(&client); err != nil {
			return nil, fmt.Errorf("failed to decode client: %w", err)
		}
		phone := client.BestPhone()
		if phone == "" {
			continue
		}
		eligible = append(eligible, models.CampaignClient{
			ID:    client.ID,
			Name:  client.FullName(),
			Phone: phone,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate eligible clients: %w", err)
	}

	return eligible, nil
}
