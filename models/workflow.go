package models

import "time"

// TimelineConfig carries the notification timing knobs into a workflow run.
// It is captured once at start so a config change never rewrites the
// timeline of an in-flight booking.
type TimelineConfig struct {
	Reminder24hEnabled bool          `json:"reminder24hEnabled"`
	Reminder1hEnabled  bool          `json:"reminder1hEnabled"`
	AftercareDelay     time.Duration `json:"aftercareDelay"`
}

// BookingWorkflowInput starts an AppointmentBookingWorkflow. Immutable for
// the lifetime of the run; every stage receives the same value.
type BookingWorkflowInput struct {
	BookingID       string         `json:"bookingId"`
	ClientID        string         `json:"clientId"`
	AppointmentTime time.Time      `json:"appointmentTime"`
	ClientPhone     string         `json:"clientPhone"`
	ClientName      string         `json:"clientName"`
	TreatmentName   string         `json:"treatmentName"`
	StaffName       string         `json:"staffName"`
	Timeline        TimelineConfig `json:"timeline"`
}

// CancellationInput starts a CancellationWorkflow.
type CancellationInput struct {
	BookingID          string    `json:"bookingId"`
	ClientPhone        string    `json:"clientPhone"`
	ClientName         string    `json:"clientName"`
	AppointmentTime    time.Time `json:"appointmentTime"`
	CancellationReason string    `json:"cancellationReason,omitempty"`
}

// RescheduleInput starts a RescheduleWorkflow.
type RescheduleInput struct {
	BookingID          string    `json:"bookingId"`
	OldWorkflowID      string    `json:"oldWorkflowId"`
	NewAppointmentTime time.Time `json:"newAppointmentTime"`
	ClientPhone        string    `json:"clientPhone"`
	ClientName         string    `json:"clientName"`
	TreatmentName      string    `json:"treatmentName"`
	StaffName          string    `json:"staffName"`
}

// Booking workflow stages, in timeline order.
const (
	StageConfirmation      = "confirmation"
	StageBefore24hReminder = "before_24h_reminder"
	StageBefore1hReminder  = "before_1h_reminder"
	StageBeforeAftercare   = "before_aftercare"
)

// StageResult is the outcome of one side-effecting stage.
type StageResult struct {
	Stage     string `json:"stage"`
	Succeeded bool   `json:"succeeded"`
	MessageID string `json:"messageId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// SucceededStage builds a successful stage result.
func SucceededStage(stage, messageID string) StageResult {
	return StageResult{Stage: stage, Succeeded: true, MessageID: messageID}
}

// FailedStage builds a failed stage result with a reason code or error text.
func FailedStage(stage, reason string) StageResult {
	return StageResult{Stage: stage, Succeeded: false, Reason: reason}
}

// Booking workflow terminal statuses.
const (
	WorkflowStatusCompleted = "completed"
	WorkflowStatusCancelled = "cancelled"
)

// BookingWorkflowResult summarizes a finished booking timeline.
type BookingWorkflowResult struct {
	Status      string        `json:"status"`
	BookingID   string        `json:"bookingId"`
	CancelledAt string        `json:"cancelledAt,omitempty"`
	Stages      []StageResult `json:"stages"`
}

// WorkflowStatus answers the status query on a running booking workflow.
type WorkflowStatus struct {
	Cancelled          bool       `json:"cancelled"`
	Rescheduled        bool       `json:"rescheduled"`
	NewAppointmentTime *time.Time `json:"newAppointmentTime,omitempty"`
	CurrentTime        time.Time  `json:"currentTime"`
}
