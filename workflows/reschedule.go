package workflows

import (
	"salonnotify/activities"
	"salonnotify/models"

	"go.temporal.io/sdk/workflow"
)

// RescheduleWorkflow sends the reschedule notification. The previous timeline
// workflow is cancelled and the replacement booking workflow started by the
// control surface, not here.
func RescheduleWorkflow(ctx workflow.Context, input models.RescheduleInput) (*models.StageResult, error) {
	var a *activities.NotificationActivities
	actx := workflow.WithActivityOptions(ctx, notificationActivityOptions())

	result, err := runStage(actx, models.MessageTypeReschedule, a.SendReschedule, input)
	if err != nil {
		return nil, err
	}

	workflow.GetLogger(ctx).Info("reschedule notification finished",
		"bookingId", input.BookingID, "succeeded", result.Succeeded)
	return &result, nil
}
