package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"
)

// maxWaitChunk bounds a single suspension so the cancellation flag is
// re-evaluated at least hourly even across multi-day waits.
const maxWaitChunk = time.Hour

// waitUntil suspends the workflow until the target instant is reached or the
// cancellation flag is raised, whichever comes first. It returns true when
// interrupted by cancellation and false when the deadline was reached
// normally. A target already in the past returns the current flag without
// blocking.
func waitUntil(ctx workflow.Context, state *processState, target time.Time) bool {
	now := workflow.Now(ctx)
	if !target.After(now) {
		return state.cancelled
	}

	for {
		remaining := target.Sub(workflow.Now(ctx))
		if remaining <= 0 {
			return false
		}

		chunk := remaining
		if chunk > maxWaitChunk {
			chunk = maxWaitChunk
		}

		if _, err := workflow.AwaitWithTimeout(ctx, chunk, func() bool {
			return state.cancelled
		}); err != nil {
			// Workflow context cancelled out from under us; report the flag.
			return state.cancelled
		}

		if state.cancelled {
			workflow.GetLogger(ctx).Info("workflow cancelled during wait")
			return true
		}
	}
}
