package activities

import (
	"context"
	"errors"
	"time"

	bookingRepo "salonnotify/database/repository/booking"
	clientRepo "salonnotify/database/repository/client"
	notificationlogRepo "salonnotify/database/repository/notificationlog"
	"salonnotify/models"
	"salonnotify/services/templates"
	"salonnotify/services/whatsapp"
	"salonnotify/utils"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"
)

// Application error types surfaced to workflows. Both are registered as
// non-retryable so they never consume retry budget.
const (
	ErrTypeBookingNotFound = "BookingNotFound"
	ErrTypeInvalidInput    = "InvalidInput"
)

// Reason codes for eligibility rejections. These are stage results, not
// errors; the owning workflow advances past them.
const (
	ReasonClientPreferences       = "client_preferences"
	ReasonBookingNotActive        = "booking_not_active"
	ReasonAppointmentNotCompleted = "appointment_not_completed"
)

// Defaults carries the configuration an activity needs, captured explicitly
// at construction instead of read from process-global state.
type Defaults struct {
	CountryCode   string
	RecencyDays   int
	SalonLocation string
}

// NotificationActivities bundles every external interaction: database reads,
// WhatsApp sends and notification log writes.
type NotificationActivities struct {
	bookings  bookingRepo.BookingRepository
	clients   clientRepo.ClientRepository
	logs      notificationlogRepo.NotificationLogRepository
	provider  whatsapp.Provider
	templates *templates.MessageTemplates
	defaults  Defaults
	logger    *zap.Logger
}

// NewNotificationActivities wires the activity dependencies.
func NewNotificationActivities(
	bookings bookingRepo.BookingRepository,
	clients clientRepo.ClientRepository,
	logs notificationlogRepo.NotificationLogRepository,
	provider whatsapp.Provider,
	msgTemplates *templates.MessageTemplates,
	defaults Defaults,
	logger *zap.Logger,
) *NotificationActivities {
	return &NotificationActivities{
		bookings:  bookings,
		clients:   clients,
		logs:      logs,
		provider:  provider,
		templates: msgTemplates,
		defaults:  defaults,
		logger:    logger,
	}
}

// getBookingDetails loads a booking or converts a missing booking into the
// fatal non-retryable fault class.
func (a *NotificationActivities) getBookingDetails(bookingID string) (*models.BookingDetails, error) {
	details, err := a.bookings.GetDetails(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			a.logger.Error("booking not found", zap.String("bookingId", bookingID))
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeBookingNotFound, err)
		}
		return nil, err
	}
	return details, nil
}

// formatPhone normalizes a phone number; an empty number is a fatal input
// fault for the invocation.
func (a *NotificationActivities) formatPhone(phone string) (string, error) {
	formatted, err := utils.FormatPhoneNumber(phone, a.defaults.CountryCode)
	if err != nil {
		return "", temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	}
	return formatted, nil
}

// logNotification records a send attempt. Failures here are logged and
// swallowed; they never affect stage control flow.
func (a *NotificationActivities) logNotification(bookingID, clientID, phone, messageType, content, status, providerMessageID, errMessage string) {
	entry := &models.NotificationLog{
		BookingID:         bookingID,
		ClientID:          clientID,
		PhoneNumber:       phone,
		MessageType:       messageType,
		MessageContent:    content,
		Status:            status,
		ProviderMessageID: providerMessageID,
		ErrorMessage:      errMessage,
	}
	if status == models.NotificationStatusSent {
		now := time.Now()
		entry.SentAt = &now
	}
	if err := a.logs.Insert(entry); err != nil {
		a.logger.Error("failed to log notification",
			zap.String("bookingId", bookingID),
			zap.String("messageType", messageType),
			zap.Error(err),
		)
	}
}

// canSendToClient checks messaging eligibility; repository errors are
// retryable, a missing or blocked client is a rejection.
func (a *NotificationActivities) canSendToClient(ctx context.Context, clientID string) (bool, error) {
	canSend, err := a.clients.CanReceiveMessages(clientID)
	if err != nil {
		return false, err
	}
	if !canSend {
		a.logger.Info("client cannot receive messages", zap.String("clientId", clientID))
	}
	return canSend, nil
}
