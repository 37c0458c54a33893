package models

import "time"

// Notification message types written to the notification log.
const (
	MessageTypeConfirmation = "confirmation"
	MessageTypeReminder24h  = "reminder_24h"
	MessageTypeReminder1h   = "reminder_1h"
	MessageTypeAftercare    = "aftercare"
	MessageTypeCancellation = "cancellation"
	MessageTypeReschedule   = "reschedule"
	MessageTypeMarketing    = "marketing"
)

// NotificationLog is one durable record of an attempted send.
type NotificationLog struct {
	ID                string     `bson:"id" json:"id"`
	BookingID         string     `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	ClientID          string     `bson:"clientId" json:"clientId"`
	PhoneNumber       string     `bson:"phoneNumber" json:"phoneNumber"`
	MessageType       string     `bson:"messageType" json:"messageType"`
	MessageContent    string     `bson:"messageContent" json:"messageContent"`
	Status            string     `bson:"status" json:"status"`
	ProviderMessageID string     `bson:"providerMessageId,omitempty" json:"providerMessageId,omitempty"`
	ErrorMessage      string     `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`
	SentAt            *time.Time `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
}

// Log statuses.
const (
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)
