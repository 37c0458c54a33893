package bookingRepo

import (
	"time"

	"salonnotify/models"
)

// BookingRepository defines the data access contract for bookings as seen by
// the notification activities.
type BookingRepository interface {
	// GetDetails fetches a booking joined with its client's contact fields.
	// Returns ErrBookingNotFound when no booking matches.
	GetDetails(bookingID string) (*models.BookingDetails, error)

	// GetAppointmentEnd computes the appointment's end instant from its date,
	// start time and duration. A missing duration defaults to 60 minutes.
	GetAppointmentEnd(bookingID string) (time.Time, error)

	// MarkConfirmed stamps confirmationSentAt on the booking.
	MarkConfirmed(bookingID string) error

	// MarkReminded stamps reminderSentAt on the booking.
	MarkReminded(bookingID string) error
}
