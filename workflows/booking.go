package workflows

import (
	"context"
	"errors"
	"time"

	"salonnotify/activities"
	"salonnotify/models"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RescheduleSignal is the payload of the reschedule signal.
type RescheduleSignal struct {
	NewAppointmentTime time.Time `json:"newAppointmentTime"`
}

// processState is owned by one running booking workflow. It is mutated only
// by the signal consumer goroutine and read at suspension points, so the
// cooperative scheduling of the workflow runtime keeps it race-free.
type processState struct {
	cancelled          bool
	rescheduled        bool
	newAppointmentTime *time.Time
}

// consumeSignals drains the cancel and reschedule channels for the lifetime
// of the workflow. Signals only take effect at the next suspension point.
func (s *processState) consumeSignals(ctx workflow.Context) {
	cancelCh := workflow.GetSignalChannel(ctx, SignalCancel)
	rescheduleCh := workflow.GetSignalChannel(ctx, SignalReschedule)

	workflow.Go(ctx, func(gctx workflow.Context) {
		for {
			selector := workflow.NewSelector(gctx)
			selector.AddReceive(cancelCh, func(c workflow.ReceiveChannel, more bool) {
				c.Receive(gctx, nil)
				s.cancelled = true
				workflow.GetLogger(gctx).Info("cancellation signal received")
			})
			selector.AddReceive(rescheduleCh, func(c workflow.ReceiveChannel, more bool) {
				var sig RescheduleSignal
				c.Receive(gctx, &sig)
				s.rescheduled = true
				s.newAppointmentTime = &sig.NewAppointmentTime
				// Rescheduling cancels the current timeline; the control
				// surface starts a fresh workflow for the new instant.
				s.cancelled = true
				workflow.GetLogger(gctx).Info("reschedule signal received",
					"newAppointmentTime", sig.NewAppointmentTime)
			})
			selector.Select(gctx)
		}
	})
}

// AppointmentBookingWorkflow manages all notifications for a single booking.
//
// Timeline:
//  1. Immediate: confirmation message
//  2. Wait until 24h before the appointment: 24h reminder
//  3. Wait until 1h before the appointment: 1h reminder
//  4. Wait until the appointment ends
//  5. Wait the aftercare delay, then send the aftercare message
//
// Cancel and reschedule signals terminate the timeline at the next wait
// check. A failed send is recorded and the timeline advances; only a missing
// booking aborts the whole workflow.
func AppointmentBookingWorkflow(ctx workflow.Context, input models.BookingWorkflowInput) (*models.BookingWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)

	state := &processState{}
	state.consumeSignals(ctx)

	if err := workflow.SetQueryHandler(ctx, QueryStatus, func() (models.WorkflowStatus, error) {
		return models.WorkflowStatus{
			Cancelled:          state.cancelled,
			Rescheduled:        state.rescheduled,
			NewAppointmentTime: state.newAppointmentTime,
			CurrentTime:        workflow.Now(ctx),
		}, nil
	}); err != nil {
		return nil, err
	}

	var a *activities.NotificationActivities
	actx := workflow.WithActivityOptions(ctx, notificationActivityOptions())

	var stages []models.StageResult

	// Step 1: immediate confirmation.
	confirmation, err := runStage(actx, models.MessageTypeConfirmation, a.SendConfirmation, input)
	if err != nil {
		return nil, err
	}
	stages = append(stages, confirmation)
	logger.Info("confirmation stage finished",
		"bookingId", input.BookingID, "succeeded", confirmation.Succeeded)

	// Step 2: wait until 24 hours before the appointment.
	if input.Timeline.Reminder24hEnabled {
		if waitUntil(ctx, state, input.AppointmentTime.Add(-24*time.Hour)) {
			return cancelledResult(input.BookingID, models.StageBefore24hReminder, stages), nil
		}

		reminder24h, err := runStage(actx, models.MessageTypeReminder24h, a.Send24hReminder, input)
		if err != nil {
			return nil, err
		}
		stages = append(stages, reminder24h)
		logger.Info("24h reminder stage finished",
			"bookingId", input.BookingID, "succeeded", reminder24h.Succeeded)
	}

	// Step 3: wait until 1 hour before the appointment.
	if input.Timeline.Reminder1hEnabled {
		if waitUntil(ctx, state, input.AppointmentTime.Add(-time.Hour)) {
			return cancelledResult(input.BookingID, models.StageBefore1hReminder, stages), nil
		}

		reminder1h, err := runStage(actx, models.MessageTypeReminder1h, a.Send1hReminder, input)
		if err != nil {
			return nil, err
		}
		stages = append(stages, reminder1h)
		logger.Info("1h reminder stage finished",
			"bookingId", input.BookingID, "succeeded", reminder1h.Succeeded)
	}

	// Step 4: wait until the appointment ends. The end instant is duration
	// aware, so the aftercare delay anchors to actual completion rather than
	// the scheduled start.
	dctx := workflow.WithActivityOptions(ctx, dataQueryActivityOptions())
	var appointmentEnd time.Time
	if err := workflow.ExecuteActivity(dctx, a.GetAppointmentEndTime, input.BookingID).Get(ctx, &appointmentEnd); err != nil {
		return nil, err
	}

	if waitUntil(ctx, state, appointmentEnd) {
		return cancelledResult(input.BookingID, models.StageBeforeAftercare, stages), nil
	}

	// Step 5: wait the aftercare delay, then send the aftercare message.
	aftercareDelay := input.Timeline.AftercareDelay
	if aftercareDelay <= 0 {
		aftercareDelay = 24 * time.Hour
	}
	if waitUntil(ctx, state, appointmentEnd.Add(aftercareDelay)) {
		return cancelledResult(input.BookingID, models.StageBeforeAftercare, stages), nil
	}

	aftercare, err := runStage(actx, models.MessageTypeAftercare, a.SendAftercare, input)
	if err != nil {
		return nil, err
	}
	stages = append(stages, aftercare)
	logger.Info("aftercare stage finished",
		"bookingId", input.BookingID, "succeeded", aftercare.Succeeded)

	return &models.BookingWorkflowResult{
		Status:    models.WorkflowStatusCompleted,
		BookingID: input.BookingID,
		Stages:    stages,
	}, nil
}

// runStage executes one notification stage under the activity retry
// contract. Exhausted retries degrade to a failed stage result; only the
// missing-booking fault class propagates and aborts the workflow.
func runStage[T any](ctx workflow.Context, stage string, fn func(context.Context, T) (models.StageResult, error), input T) (models.StageResult, error) {
	var result models.StageResult
	err := workflow.ExecuteActivity(ctx, fn, input).Get(ctx, &result)
	if err != nil {
		if isBookingNotFound(err) {
			return models.StageResult{}, err
		}
		return models.FailedStage(stage, err.Error()), nil
	}
	if result.Stage == "" {
		result.Stage = stage
	}
	return result, nil
}

// isBookingNotFound unwraps activity errors down to the fatal fault class.
func isBookingNotFound(err error) bool {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Type() == activities.ErrTypeBookingNotFound
	}
	return false
}

func cancelledResult(bookingID, stage string, stages []models.StageResult) *models.BookingWorkflowResult {
	return &models.BookingWorkflowResult{
		Status:      models.WorkflowStatusCancelled,
		BookingID:   bookingID,
		CancelledAt: stage,
		Stages:      stages,
	}
}
