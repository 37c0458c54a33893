package notificationlogRepo

import (
	"context"
	"fmt"
	"time"

	"salonnotify/database"
	"salonnotify/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoNotificationLogRepo implements NotificationLogRepository using MongoDB.
type MongoNotificationLogRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationLogRepo creates a new instance of NotificationLogRepository using MongoDB.
func NewMongoNotificationLogRepo() NotificationLogRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("notification_logs")
	repo := &MongoNotificationLogRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoNotificationLogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "messageType", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert writes a new notification log entry.
func (r *MongoNotificationLogRepo) Insert(entry *models.NotificationLog) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert notification log: %w", err)
	}
	return nil
}
