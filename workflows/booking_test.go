package workflows

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonnotify/activities"
	"salonnotify/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

type BookingWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
}

func TestBookingWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(BookingWorkflowTestSuite))
}

func (s *BookingWorkflowTestSuite) newEnv() *testsuite.TestWorkflowEnvironment {
	env := s.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(AppointmentBookingWorkflow)
	return env
}

func bookingInput(appointment time.Time) models.BookingWorkflowInput {
	return models.BookingWorkflowInput{
		BookingID:       "bk-100",
		ClientID:        "cl-200",
		AppointmentTime: appointment,
		ClientPhone:     "0821234567",
		ClientName:      "Rudo Moyo",
		TreatmentName:   "Gel Manicure",
		StaffName:       "Tari",
		Timeline: models.TimelineConfig{
			Reminder24hEnabled: true,
			Reminder1hEnabled:  true,
			AftercareDelay:     24 * time.Hour,
		},
	}
}

func (s *BookingWorkflowTestSuite) TestHappyPathSendsAllFourStages() {
	env := s.newEnv()
	start := time.Now()
	env.SetStartTime(start)

	appointment := start.Add(48 * time.Hour)
	appointmentEnd := appointment.Add(time.Hour)

	var a *activities.NotificationActivities
	env.OnActivity(a.SendConfirmation, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeConfirmation, "msg-1"), nil).Once()
	env.OnActivity(a.Send24hReminder, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeReminder24h, "msg-2"), nil).Once()
	env.OnActivity(a.Send1hReminder, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeReminder1h, "msg-3"), nil).Once()
	env.OnActivity(a.GetAppointmentEndTime, mock.Anything, "bk-100").
		Return(appointmentEnd, nil).Once()
	env.OnActivity(a.SendAftercare, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeAftercare, "msg-4"), nil).Once()

	env.ExecuteWorkflow(AppointmentBookingWorkflow, bookingInput(appointment))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var result models.BookingWorkflowResult
	s.NoError(env.GetWorkflowResult(&result))
	s.Equal(models.WorkflowStatusCompleted, result.Status)
	s.Len(result.Stages, 4)
	s.Equal(models.MessageTypeConfirmation, result.Stages[0].Stage)
	s.Equal(models.MessageTypeReminder24h, result.Stages[1].Stage)
	s.Equal(models.MessageTypeReminder1h, result.Stages[2].Stage)
	s.Equal(models.MessageTypeAftercare, result.Stages[3].Stage)
	for _, stage := range result.Stages {
		s.True(stage.Succeeded)
	}

	env.AssertExpectations(s.T())
}

func (s *BookingWorkflowTestSuite) TestCancelDuringWaitSkipsRemainingStages() {
	env := s.newEnv()
	start := time.Now()
	env.SetStartTime(start)

	appointment := start.Add(48 * time.Hour)

	var a *activities.NotificationActivities
	env.OnActivity(a.SendConfirmation, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeConfirmation, "msg-1"), nil).Once()

	// Cancel two hours in, well before the 24h-reminder deadline.
	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(SignalCancel, nil)
	}, 2*time.Hour)

	env.ExecuteWorkflow(AppointmentBookingWorkflow, bookingInput(appointment))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var result models.BookingWorkflowResult
	s.NoError(env.GetWorkflowResult(&result))
	s.Equal(models.WorkflowStatusCancelled, result.Status)
	s.Equal(models.StageBefore24hReminder, result.CancelledAt)
	s.Len(result.Stages, 1)

	env.AssertNotCalled(s.T(), "Send24hReminder", mock.Anything, mock.Anything)
	env.AssertNotCalled(s.T(), "Send1hReminder", mock.Anything, mock.Anything)
	env.AssertNotCalled(s.T(), "SendAftercare", mock.Anything, mock.Anything)
}

func (s *BookingWorkflowTestSuite) TestBookingNotFoundAbortsWorkflow() {
	env := s.newEnv()
	start := time.Now()
	env.SetStartTime(start)

	appointment := start.Add(48 * time.Hour)

	var a *activities.NotificationActivities
	env.OnActivity(a.SendConfirmation, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeConfirmation, "msg-1"), nil).Once()
	env.OnActivity(a.Send24hReminder, mock.Anything, mock.Anything).
		Return(models.StageResult{}, temporal.NewNonRetryableApplicationError(
			"booking bk-100 not found", activities.ErrTypeBookingNotFound, nil)).Once()

	env.ExecuteWorkflow(AppointmentBookingWorkflow, bookingInput(appointment))

	s.True(env.IsWorkflowCompleted())
	s.Error(env.GetWorkflowError())

	env.AssertNotCalled(s.T(), "Send1hReminder", mock.Anything, mock.Anything)
	env.AssertNotCalled(s.T(), "SendAftercare", mock.Anything, mock.Anything)
}

func (s *BookingWorkflowTestSuite) TestFailedSendStillAdvancesTimeline() {
	env := s.newEnv()
	start := time.Now()
	env.SetStartTime(start)

	appointment := start.Add(48 * time.Hour)
	appointmentEnd := appointment.Add(time.Hour)

	var a *activities.NotificationActivities
	// Transport fault on every confirmation attempt; the retry budget is
	// consumed and the timeline still advances.
	env.OnActivity(a.SendConfirmation, mock.Anything, mock.Anything).
		Return(models.StageResult{}, errors.New("chakra API returned HTTP 503"))
	env.OnActivity(a.Send24hReminder, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeReminder24h, "msg-2"), nil).Once()
	env.OnActivity(a.Send1hReminder, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeReminder1h, "msg-3"), nil).Once()
	env.OnActivity(a.GetAppointmentEndTime, mock.Anything, "bk-100").
		Return(appointmentEnd, nil).Once()
	env.OnActivity(a.SendAftercare, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeAftercare, "msg-4"), nil).Once()

	env.ExecuteWorkflow(AppointmentBookingWorkflow, bookingInput(appointment))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var result models.BookingWorkflowResult
	s.NoError(env.GetWorkflowResult(&result))
	s.Equal(models.WorkflowStatusCompleted, result.Status)
	s.Len(result.Stages, 4)
	s.False(result.Stages[0].Succeeded)
	s.NotEmpty(result.Stages[0].Reason)
	s.True(result.Stages[1].Succeeded)
}

func (s *BookingWorkflowTestSuite) TestRetryableFailureSucceedsOnFifthAttempt() {
	env := s.newEnv()
	start := time.Now()
	env.SetStartTime(start)

	appointment := start.Add(48 * time.Hour)
	appointmentEnd := appointment.Add(time.Hour)

	attempts := 0
	var a *activities.NotificationActivities
	env.OnActivity(a.SendConfirmation, mock.Anything, mock.Anything).
		Return(func(ctx context.Context, input models.BookingWorkflowInput) (models.StageResult, error) {
			attempts++
			if attempts < 5 {
				return models.StageResult{}, errors.New("chakra request failed: connection reset")
			}
			return models.SucceededStage(models.MessageTypeConfirmation, "msg-1"), nil
		})
	env.OnActivity(a.Send24hReminder, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeReminder24h, "msg-2"), nil).Once()
	env.OnActivity(a.Send1hReminder, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeReminder1h, "msg-3"), nil).Once()
	env.OnActivity(a.GetAppointmentEndTime, mock.Anything, "bk-100").
		Return(appointmentEnd, nil).Once()
	env.OnActivity(a.SendAftercare, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeAftercare, "msg-4"), nil).Once()

	env.ExecuteWorkflow(AppointmentBookingWorkflow, bookingInput(appointment))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var result models.BookingWorkflowResult
	s.NoError(env.GetWorkflowResult(&result))
	s.Equal(5, attempts)
	s.Equal(models.WorkflowStatusCompleted, result.Status)
	s.True(result.Stages[0].Succeeded)
}

func (s *BookingWorkflowTestSuite) TestRescheduleSignalCancelsTimeline() {
	env := s.newEnv()
	start := time.Now()
	env.SetStartTime(start)

	appointment := start.Add(48 * time.Hour)
	newAppointment := start.Add(96 * time.Hour)

	var a *activities.NotificationActivities
	env.OnActivity(a.SendConfirmation, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeConfirmation, "msg-1"), nil).Once()

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(SignalReschedule, RescheduleSignal{NewAppointmentTime: newAppointment})
	}, 3*time.Hour)

	env.ExecuteWorkflow(AppointmentBookingWorkflow, bookingInput(appointment))

	s.True(env.IsWorkflowCompleted())
	s.NoError(env.GetWorkflowError())

	var result models.BookingWorkflowResult
	s.NoError(env.GetWorkflowResult(&result))
	s.Equal(models.WorkflowStatusCancelled, result.Status)
	s.Equal(models.StageBefore24hReminder, result.CancelledAt)
}

func (s *BookingWorkflowTestSuite) TestStatusQueryReflectsCancellation() {
	env := s.newEnv()
	start := time.Now()
	env.SetStartTime(start)

	appointment := start.Add(48 * time.Hour)

	var a *activities.NotificationActivities
	env.OnActivity(a.SendConfirmation, mock.Anything, mock.Anything).
		Return(models.SucceededStage(models.MessageTypeConfirmation, "msg-1"), nil).Once()

	env.RegisterDelayedCallback(func() {
		response, err := env.QueryWorkflow(QueryStatus)
		s.NoError(err)
		var status models.WorkflowStatus
		s.NoError(response.Get(&status))
		s.False(status.Cancelled)
		s.False(status.Rescheduled)
	}, time.Hour)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(SignalCancel, nil)
	}, 2*time.Hour)

	env.ExecuteWorkflow(AppointmentBookingWorkflow, bookingInput(appointment))

	s.True(env.IsWorkflowCompleted())

	response, err := env.QueryWorkflow(QueryStatus)
	s.NoError(err)
	var status models.WorkflowStatus
	s.NoError(response.Get(&status))
	s.True(status.Cancelled)
}
