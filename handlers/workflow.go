package handlers

import (
	"fmt"
	"net/http"
	"time"

	"salonnotify/config"
	bookingRepo "salonnotify/database/repository/booking"
	"salonnotify/models"
	"salonnotify/utils"
	"salonnotify/workflows"

	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

// WorkflowHandler exposes the notification workflow control surface.
type WorkflowHandler struct {
	temporal client.Client
	bookings bookingRepo.BookingRepository
	logger   *zap.Logger
}

// NewWorkflowHandler creates a workflow control handler.
func NewWorkflowHandler(temporalClient client.Client, bookings bookingRepo.BookingRepository, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		temporal: temporalClient,
		bookings: bookings,
		logger:   logger,
	}
}

// timelineConfig captures the notification timing knobs at workflow start.
func timelineConfig() models.TimelineConfig {
	return models.TimelineConfig{
		Reminder24hEnabled: config.AppConfig.Reminder24hEnabled,
		Reminder1hEnabled:  config.AppConfig.Reminder1hEnabled,
		AftercareDelay:     config.AftercareDelay(),
	}
}

// StartBookingRequest starts a booking notification timeline.
type StartBookingRequest struct {
	BookingID       string    `json:"bookingId" binding:"required"`
	ClientID        string    `json:"clientId" binding:"required"`
	AppointmentTime time.Time `json:"appointmentTime" binding:"required"`
	ClientPhone     string    `json:"clientPhone"`
	ClientName      string    `json:"clientName"`
	TreatmentName   string    `json:"treatmentName"`
	StaffName       string    `json:"staffName"`
}

// StartBookingWorkflow starts a new appointment notification workflow. The
// confirmation goes out immediately; reminders and aftercare are scheduled
// relative to the appointment time.
func (h *WorkflowHandler) StartBookingWorkflow(c *gin.Context) {
	var req StartBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.TreatmentName == "" {
		req.TreatmentName = "Treatment"
	}
	if req.StaffName == "" {
		req.StaffName = "Staff"
	}

	workflowID := fmt.Sprintf("booking-%s-%d", req.BookingID, time.Now().Unix())

	input := models.BookingWorkflowInput{
		BookingID:       req.BookingID,
		ClientID:        req.ClientID,
		AppointmentTime: req.AppointmentTime,
		ClientPhone:     req.ClientPhone,
		ClientName:      req.ClientName,
		TreatmentName:   req.TreatmentName,
		StaffName:       req.StaffName,
		Timeline:        timelineConfig(),
	}

	// No execution timeout: the workflow legitimately lives for the whole
	// appointment-plus-aftercare horizon.
	_, err := h.temporal.ExecuteWorkflow(c.Request.Context(), client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: config.AppConfig.TemporalTaskQueue,
	}, workflows.AppointmentBookingWorkflow, input)
	if err != nil {
		h.logger.Error("failed to start booking workflow",
			zap.String("bookingId", req.BookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start workflow", err.Error())
		return
	}

	if err := utils.SetActiveWorkflow(c.Request.Context(), req.BookingID, workflowID); err != nil {
		h.logger.Warn("failed to register workflow", zap.Error(err))
	}

	h.logger.Info("started booking workflow",
		zap.String("workflowId", workflowID), zap.String("bookingId", req.BookingID))

	c.JSON(http.StatusOK, gin.H{
		"workflowId": workflowID,
		"status":     "started",
	})
}

// CancelBookingRequest cancels a running booking timeline.
type CancelBookingRequest struct {
	BookingID          string `json:"bookingId" binding:"required"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// CancelBookingWorkflow signals the running workflow to stop and starts a
// one-shot cancellation notification workflow.
func (h *WorkflowHandler) CancelBookingWorkflow(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()

	workflowID, err := utils.GetActiveWorkflow(ctx, req.BookingID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "no active workflow for booking", req.BookingID)
		return
	}

	if err := h.temporal.SignalWorkflow(ctx, workflowID, "", workflows.SignalCancel, nil); err != nil {
		h.logger.Error("failed to signal cancellation",
			zap.String("workflowId", workflowID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel workflow", err.Error())
		return
	}
	utils.ClearActiveWorkflow(ctx, req.BookingID)

	// Build the cancellation notice from the store so the message carries the
	// real appointment slot.
	cancellationInput := models.CancellationInput{
		BookingID:          req.BookingID,
		CancellationReason: req.CancellationReason,
	}
	if details, derr := h.bookings.GetDetails(req.BookingID); derr == nil {
		cancellationInput.ClientPhone = details.ClientPhone
		cancellationInput.ClientName = details.ClientName
	} else {
		h.logger.Warn("could not load booking for cancellation notice",
			zap.String("bookingId", req.BookingID), zap.Error(derr))
	}

	cancellationWorkflowID := fmt.Sprintf("cancellation-%s-%d", req.BookingID, time.Now().Unix())
	_, err = h.temporal.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        cancellationWorkflowID,
		TaskQueue: config.AppConfig.TemporalTaskQueue,
	}, workflows.CancellationWorkflow, cancellationInput)
	if err != nil {
		h.logger.Error("failed to start cancellation workflow",
			zap.String("bookingId", req.BookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start cancellation notification", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                 "cancelled",
		"bookingWorkflowId":      workflowID,
		"cancellationWorkflowId": cancellationWorkflowID,
	})
}

// RescheduleBookingRequest moves a booking to a new appointment time.
type RescheduleBookingRequest struct {
	BookingID          string    `json:"bookingId" binding:"required"`
	NewAppointmentTime time.Time `json:"newAppointmentTime" binding:"required"`
	ClientID           string    `json:"clientId"`
	ClientPhone        string    `json:"clientPhone"`
	ClientName         string    `json:"clientName"`
	TreatmentName      string    `json:"treatmentName"`
	StaffName          string    `json:"staffName"`
}

// RescheduleBookingWorkflow cancels the old timeline via the reschedule
// signal, sends the reschedule notice, and starts a fresh timeline for the
// new appointment time.
func (h *WorkflowHandler) RescheduleBookingWorkflow(c *gin.Context) {
	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	now := time.Now().Unix()

	oldWorkflowID, err := utils.GetActiveWorkflow(ctx, req.BookingID)
	if err == nil {
		signal := workflows.RescheduleSignal{NewAppointmentTime: req.NewAppointmentTime}
		if err := h.temporal.SignalWorkflow(ctx, oldWorkflowID, "", workflows.SignalReschedule, signal); err != nil {
			h.logger.Warn("failed to signal old workflow",
				zap.String("workflowId", oldWorkflowID), zap.Error(err))
		}
	} else {
		h.logger.Info("no active workflow to reschedule", zap.String("bookingId", req.BookingID))
	}

	rescheduleWorkflowID := fmt.Sprintf("reschedule-%s-%d", req.BookingID, now)
	_, err = h.temporal.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        rescheduleWorkflowID,
		TaskQueue: config.AppConfig.TemporalTaskQueue,
	}, workflows.RescheduleWorkflow, models.RescheduleInput{
		BookingID:          req.BookingID,
		OldWorkflowID:      oldWorkflowID,
		NewAppointmentTime: req.NewAppointmentTime,
		ClientPhone:        req.ClientPhone,
		ClientName:         req.ClientName,
		TreatmentName:      req.TreatmentName,
		StaffName:          req.StaffName,
	})
	if err != nil {
		h.logger.Error("failed to start reschedule workflow",
			zap.String("bookingId", req.BookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start reschedule notification", err.Error())
		return
	}

	newWorkflowID := fmt.Sprintf("booking-%s-%d", req.BookingID, now)
	_, err = h.temporal.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        newWorkflowID,
		TaskQueue: config.AppConfig.TemporalTaskQueue,
	}, workflows.AppointmentBookingWorkflow, models.BookingWorkflowInput{
		BookingID:       req.BookingID,
		ClientID:        req.ClientID,
		AppointmentTime: req.NewAppointmentTime,
		ClientPhone:     req.ClientPhone,
		ClientName:      req.ClientName,
		TreatmentName:   req.TreatmentName,
		StaffName:       req.StaffName,
		Timeline:        timelineConfig(),
	})
	if err != nil {
		h.logger.Error("failed to start replacement booking workflow",
			zap.String("bookingId", req.BookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start new booking workflow", err.Error())
		return
	}

	if err := utils.SetActiveWorkflow(ctx, req.BookingID, newWorkflowID); err != nil {
		h.logger.Warn("failed to register replacement workflow", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":               "rescheduled",
		"oldWorkflowId":        oldWorkflowID,
		"rescheduleWorkflowId": rescheduleWorkflowID,
		"newWorkflowId":        newWorkflowID,
	})
}

// GetWorkflowStatus answers the status query for a booking's workflow.
func (h *WorkflowHandler) GetWorkflowStatus(c *gin.Context) {
	bookingID := c.Param("bookingID")

	ctx := c.Request.Context()

	workflowID, err := utils.GetActiveWorkflow(ctx, bookingID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "no active workflow for booking", bookingID)
		return
	}

	response, err := h.temporal.QueryWorkflow(ctx, workflowID, "", workflows.QueryStatus)
	if err != nil {
		h.logger.Error("failed to query workflow",
			zap.String("workflowId", workflowID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to query workflow", err.Error())
		return
	}

	var status models.WorkflowStatus
	if err := response.Get(&status); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to decode workflow status", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workflowId": workflowID,
		"status":     status,
	})
}
