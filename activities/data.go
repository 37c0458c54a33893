package activities

import (
	"context"
	"errors"
	"time"

	bookingRepo "salonnotify/database/repository/booking"
	"salonnotify/models"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"
)

// GetAppointmentEndTime computes the appointment's end instant from the
// stored date, start time and duration. A missing booking is fatal.
func (a *NotificationActivities) GetAppointmentEndTime(ctx context.Context, bookingID string) (time.Time, error) {
	end, err := a.bookings.GetAppointmentEnd(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			a.logger.Error("booking not found for end time calculation", zap.String("bookingId", bookingID))
			return time.Time{}, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeBookingNotFound, err)
		}
		return time.Time{}, err
	}

	a.logger.Info("appointment end time calculated",
		zap.String("bookingId", bookingID),
		zap.Time("endTime", end),
	)
	return end, nil
}

// GetEligibleClients returns the clients a marketing campaign may target.
func (a *NotificationActivities) GetEligibleClients(ctx context.Context, campaignID string) ([]models.CampaignClient, error) {
	a.logger.Info("fetching eligible clients", zap.String("campaignId", campaignID))

	clients, err := a.clients.GetEligibleClients(a.defaults.RecencyDays)
	if err != nil {
		return nil, err
	}

	a.logger.Info("eligible clients found",
		zap.String("campaignId", campaignID),
		zap.Int("count", len(clients)),
	)
	return clients, nil
}
