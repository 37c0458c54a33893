package bookingRepo

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

// ErrBookingNotFound marks the missing-booking fault class. Callers treat it
// as fatal and non-retryable.
var ErrBookingNotFound = errors.New("booking not found")

// defaultDurationMinutes applies when a booking has no duration set.
const defaultDurationMinutes = 60

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookings *mongo.Collection
	clients  *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoBookingRepo{
		bookings: db.Collection("bookings"),
		clients:  db.Collection("clients"),
	}

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
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		{Keys: bson.D{{Key: "bookingDate", Value: 1}}},
	}

	_, err := r.bookings.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetDetails retrieves a booking joined with its client's contact fields.
func (r *MongoBookingRepo) GetDetails(bookingID string) (*models.BookingDetails, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookings.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}

	var client models.Client
	if err := r.clients.FindOne(ctx, bson.M{"id": booking.ClientID}).Decode(&client); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("client %s for booking %s: %w", booking.ClientID, bookingID, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("failed to fetch client for booking %s: %w", bookingID, err)
	}

	return &models.BookingDetails{
		BookingID:       booking.ID,
		ClientID:        client.ID,
		ClientName:      client.FullName(),
		ClientPhone:     client.BestPhone(),
		AppointmentDate: booking.BookingDate.Format("2006-01-02"),
		AppointmentTime: booking.StartTime.Format("15:04"),
		TreatmentName:   booking.TreatmentName,
		StaffName:       booking.StaffName,
		Status:          booking.Status,
	}, nil
}

// GetAppointmentEnd computes the appointment end time (start + duration).
func (r *MongoBookingRepo) GetAppointmentEnd(bookingID string) (time.Time, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookings.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return time.Time{}, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
		}
		return time.Time{}, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}

	duration := booking.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}

	start := time.Date(
		booking.BookingDate.Year(), booking.BookingDate.Month(), booking.BookingDate.Day(),
		booking.StartTime.Hour(), booking.StartTime.Minute(), 0, 0, booking.StartTime.Location(),
	)
	return start.Add(time.Duration(duration) * time.Minute), nil
}

// MarkConfirmed stamps confirmationSentAt on the booking.
func (r *MongoBookingRepo) MarkConfirmed(bookingID string) error {
	return r.stampField(bookingID, "confirmationSentAt")
}

// MarkReminded stamps reminderSentAt on the booking.
func (r *MongoBookingRepo) MarkReminded(bookingID string) error {
	return r.stampField(bookingID, "reminderSentAt")
}

func (r *MongoBookingRepo) stampField(bookingID, field string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{field: time.Now(), "updatedAt": time.Now()}}
	result, err := r.bookings.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}
	return nil
}
