package activities

import (
	"context"

	"salonnotify/models"
	"salonnotify/services/templates"

	"go.uber.org/zap"
)

// stageOpts controls the shared send pipeline for one booking stage.
type stageOpts struct {
	messageType      string
	requireActive    bool
	requireCompleted bool
	markConfirmed    bool
	markReminded     bool
}

// SendConfirmation sends the booking confirmation message and stamps the
// booking's confirmation timestamp on success.
func (a *NotificationActivities) SendConfirmation(ctx context.Context, input models.BookingWorkflowInput) (models.StageResult, error) {
	return a.sendBookingMessage(ctx, input.BookingID, stageOpts{
		messageType:   models.MessageTypeConfirmation,
		markConfirmed: true,
	}, func(d *models.BookingDetails) templates.Message {
		return a.templates.Confirmation(d.ClientName, d.AppointmentDate, d.AppointmentTime, d.TreatmentName, d.StaffName, a.defaults.SalonLocation)
	})
}

// Send24hReminder sends the 24-hour reminder. The booking must still be
// active; otherwise the stage is rejected without a send.
func (a *NotificationActivities) Send24hReminder(ctx context.Context, input models.BookingWorkflowInput) (models.StageResult, error) {
	return a.sendBookingMessage(ctx, input.BookingID, stageOpts{
		messageType:   models.MessageTypeReminder24h,
		requireActive: true,
		markReminded:  true,
	}, func(d *models.BookingDetails) templates.Message {
		return a.templates.Reminder24h(d.ClientName, d.AppointmentDate, d.AppointmentTime, d.TreatmentName, d.StaffName)
	})
}

// Send1hReminder sends the 1-hour reminder.
func (a *NotificationActivities) Send1hReminder(ctx context.Context, input models.BookingWorkflowInput) (models.StageResult, error) {
	return a.sendBookingMessage(ctx, input.BookingID, stageOpts{
		messageType:   models.MessageTypeReminder1h,
		requireActive: true,
	}, func(d *models.BookingDetails) templates.Message {
		return a.templates.Reminder1h(d.ClientName, d.AppointmentTime, d.TreatmentName)
	})
}

// SendAftercare sends the aftercare message. It only goes out once the
// appointment is marked completed in the store.
func (a *NotificationActivities) SendAftercare(ctx context.Context, input models.BookingWorkflowInput) (models.StageResult, error) {
	return a.sendBookingMessage(ctx, input.BookingID, stageOpts{
		messageType:      models.MessageTypeAftercare,
		requireCompleted: true,
	}, func(d *models.BookingDetails) templates.Message {
		return a.templates.Aftercare(d.ClientName, d.TreatmentName)
	})
}

// SendCancellation sends the cancellation notice for a booking.
func (a *NotificationActivities) SendCancellation(ctx context.Context, input models.CancellationInput) (models.StageResult, error) {
	return a.sendBookingMessage(ctx, input.BookingID, stageOpts{
		messageType: models.MessageTypeCancellation,
	}, func(d *models.BookingDetails) templates.Message {
		return a.templates.Cancellation(d.ClientName, d.AppointmentDate, d.AppointmentTime, input.CancellationReason)
	})
}

// SendReschedule sends the reschedule notice. The store already carries the
// new slot, so the rendered message uses the booking's current date and time.
func (a *NotificationActivities) SendReschedule(ctx context.Context, input models.RescheduleInput) (models.StageResult, error) {
	return a.sendBookingMessage(ctx, input.BookingID, stageOpts{
		messageType: models.MessageTypeReschedule,
	}, func(d *models.BookingDetails) templates.Message {
		return a.templates.Reschedule(d.ClientName, d.AppointmentDate, d.AppointmentTime, d.TreatmentName)
	})
}

// sendBookingMessage is the shared pipeline for all booking-bound stages:
// load booking, check eligibility, normalize the phone number, send, log the
// outcome and stamp booking timestamps.
func (a *NotificationActivities) sendBookingMessage(
	ctx context.Context,
	bookingID string,
	opts stageOpts,
	render func(*models.BookingDetails) templates.Message,
) (models.StageResult, error) {
	a.logger.Info("sending notification",
		zap.String("bookingId", bookingID),
		zap.String("messageType", opts.messageType),
	)

	details, err := a.getBookingDetails(bookingID)
	if err != nil {
		return models.StageResult{}, err
	}

	if opts.requireActive && !details.IsActive() {
		a.logger.Warn("booking is not active, skipping send",
			zap.String("bookingId", bookingID),
			zap.String("status", details.Status),
		)
		return models.FailedStage(opts.messageType, ReasonBookingNotActive), nil
	}
	if opts.requireCompleted && details.Status != models.BookingStatusCompleted {
		a.logger.Warn("booking not completed, skipping send",
			zap.String("bookingId", bookingID),
			zap.String("status", details.Status),
		)
		return models.FailedStage(opts.messageType, ReasonAppointmentNotCompleted), nil
	}

	canSend, err := a.canSendToClient(ctx, details.ClientID)
	if err != nil {
		return models.StageResult{}, err
	}
	if !canSend {
		return models.FailedStage(opts.messageType, ReasonClientPreferences), nil
	}

	phone, err := a.formatPhone(details.ClientPhone)
	if err != nil {
		return models.StageResult{}, err
	}

	msg := render(details)

	result, sendErr := a.provider.SendMessage(ctx, phone, msg.Text, msg.TemplateName, msg.Parameters)
	if sendErr != nil {
		a.logger.Error("failed to send notification",
			zap.String("bookingId", bookingID),
			zap.String("messageType", opts.messageType),
			zap.Error(sendErr),
		)
		a.logNotification(bookingID, details.ClientID, phone, opts.messageType, msg.Text,
			models.NotificationStatusFailed, "", sendErr.Error())
		return models.StageResult{}, sendErr
	}

	a.logger.Info("notification sent",
		zap.String("bookingId", bookingID),
		zap.String("messageType", opts.messageType),
		zap.String("messageId", result.MessageID),
	)
	a.logNotification(bookingID, details.ClientID, phone, opts.messageType, msg.Text,
		models.NotificationStatusSent, result.MessageID, "")

	// Timestamp writes are fire-and-forget persistence; failures never abort
	// the stage.
	if opts.markConfirmed {
		if err := a.bookings.MarkConfirmed(bookingID); err != nil {
			a.logger.Error("failed to stamp confirmation timestamp",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	if opts.markReminded {
		if err := a.bookings.MarkReminded(bookingID); err != nil {
			a.logger.Error("failed to stamp reminder timestamp",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}

	return models.SucceededStage(opts.messageType, result.MessageID), nil
}
