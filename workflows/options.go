package workflows

import (
	"time"

	"salonnotify/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// Signal and query names exposed by the booking workflow.
const (
	SignalCancel     = "cancel"
	SignalReschedule = "reschedule"
	QueryStatus      = "status"
)

// notificationActivityOptions is the retry contract for every notification
// send: a send may legitimately take minutes before being judged failed, and
// transient transport faults are retried with exponential backoff.
func notificationActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Minute,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				activities.ErrTypeBookingNotFound,
				activities.ErrTypeInvalidInput,
			},
		},
	}
}

// campaignSendActivityOptions is the tighter contract for bulk promotional
// sends: shorter timeout, fewer attempts, so one bad number cannot stall the
// dispatcher for long.
func campaignSendActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    2 * time.Minute,
			MaximumAttempts:    3,
			NonRetryableErrorTypes: []string{
				activities.ErrTypeInvalidInput,
			},
		},
	}
}

// dataQueryActivityOptions covers read-only collaborator queries. The booking
// timeline cannot proceed without them, so attempts are unbounded; only the
// missing-booking fault class short-circuits.
func dataQueryActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Minute,
			NonRetryableErrorTypes: []string{
				activities.ErrTypeBookingNotFound,
			},
		},
	}
}
