package models

import "time"

// Booking statuses as stored in the bookings collection.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a salon appointment record.
type Booking struct {
	ID                 string     `bson:"id" json:"id"`
	ClientID           string     `bson:"clientId" json:"clientId"`
	TreatmentName      string     `bson:"treatmentName" json:"treatmentName"`
	StaffName          string     `bson:"staffName" json:"staffName"`
	BookingDate        time.Time  `bson:"bookingDate" json:"bookingDate"`
	StartTime          time.Time  `bson:"startTime" json:"startTime"`
	DurationMinutes    int        `bson:"durationMinutes" json:"durationMinutes"`
	Status             string     `bson:"status" json:"status"`
	ConfirmationSentAt *time.Time `bson:"confirmationSentAt,omitempty" json:"confirmationSentAt,omitempty"`
	ReminderSentAt     *time.Time `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`
	CreatedAt          time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// BookingDetails is the denormalized view used by notification activities:
// the booking joined with its client's contact fields.
type BookingDetails struct {
	BookingID       string `json:"bookingId"`
	ClientID        string `json:"clientId"`
	ClientName      string `json:"clientName"`
	ClientPhone     string `json:"clientPhone"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	TreatmentName   string `json:"treatmentName"`
	StaffName       string `json:"staffName"`
	Status          string `json:"status"`
}

// IsActive reports whether the booking should still receive reminders.
func (b *BookingDetails) IsActive() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusPending
}
