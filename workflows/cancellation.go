package workflows

import (
	"salonnotify/activities"
	"salonnotify/models"

	"go.temporal.io/sdk/workflow"
)

// CancellationWorkflow sends the immediate cancellation notification for a
// booking whose timeline workflow has been signalled to stop.
func CancellationWorkflow(ctx workflow.Context, input models.CancellationInput) (*models.StageResult, error) {
	var a *activities.NotificationActivities
	actx := workflow.WithActivityOptions(ctx, notificationActivityOptions())

	result, err := runStage(actx, models.MessageTypeCancellation, a.SendCancellation, input)
	if err != nil {
		return nil, err
	}

	workflow.GetLogger(ctx).Info("cancellation notification finished",
		"bookingId", input.BookingID, "succeeded", result.Succeeded)
	return &result, nil
}
