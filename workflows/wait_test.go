package workflows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"
)

// waitProbeWorkflow exercises the interruptible wait in isolation. It settles
// for a fixed duration first so signals sent by the test are consumed before
// the wait begins.
func waitProbeWorkflow(ctx workflow.Context, target time.Time, settle time.Duration) (bool, error) {
	state := &processState{}
	state.consumeSignals(ctx)

	if settle > 0 {
		if err := workflow.Sleep(ctx, settle); err != nil {
			return false, err
		}
	}
	return waitUntil(ctx, state, target), nil
}

type WaitTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
}

func TestWaitTestSuite(t *testing.T) {
	suite.Run(t, new(WaitTestSuite))
}

func (s *WaitTestSuite) TestPastDeadlineReturnsWithoutBlocking() {
	env := s.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(waitProbeWorkflow)
	start := time.Now()
	env.SetStartTime(start)

	env.ExecuteWorkflow(waitProbeWorkflow, start.Add(-time.Hour), time.Duration(0))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var interrupted bool
	s.NoError(env.GetWorkflowResult(&interrupted))
	s.False(interrupted)
}

func (s *WaitTestSuite) TestPastDeadlineReportsExistingCancellation() {
	env := s.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(waitProbeWorkflow)
	start := time.Now()
	env.SetStartTime(start)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(SignalCancel, nil)
	}, time.Second)

	env.ExecuteWorkflow(waitProbeWorkflow, start.Add(-time.Hour), time.Minute)

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var interrupted bool
	s.NoError(env.GetWorkflowResult(&interrupted))
	s.True(interrupted)
}

func (s *WaitTestSuite) TestCancellationInterruptsBeforeDeadline() {
	env := s.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(waitProbeWorkflow)
	start := time.Now()
	env.SetStartTime(start)

	target := start.Add(72 * time.Hour)
	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(SignalCancel, nil)
	}, 90*time.Minute)

	env.ExecuteWorkflow(waitProbeWorkflow, target, time.Duration(0))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var interrupted bool
	s.NoError(env.GetWorkflowResult(&interrupted))
	s.True(interrupted)

	// The wait woke at the cancellation, not the deadline three days out.
	s.True(env.Now().Before(target))
}

func (s *WaitTestSuite) TestDeadlineReachedAcrossManyChunks() {
	env := s.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(waitProbeWorkflow)
	start := time.Now()
	env.SetStartTime(start)

	target := start.Add(30 * time.Hour)
	env.ExecuteWorkflow(waitProbeWorkflow, target, time.Duration(0))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var interrupted bool
	s.NoError(env.GetWorkflowResult(&interrupted))
	s.False(interrupted)
	s.False(env.Now().Before(target))
}
