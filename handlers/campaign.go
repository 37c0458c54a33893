package handlers

import (
	"fmt"
	"net/http"
	"time"

	"salonnotify/config"
	"salonnotify/models"
	"salonnotify/utils"
	"salonnotify/workflows"

	"github.com/gin-gonic/gin"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

// StartCampaignRequest starts a marketing campaign dispatch.
type StartCampaignRequest struct {
	CampaignID      string `json:"campaignId" binding:"required"`
	MessageTemplate string `json:"messageTemplate" binding:"required"`
}

// StartMarketingCampaign starts a rate-limited promotional dispatch to every
// eligible client.
func (h *WorkflowHandler) StartMarketingCampaign(c *gin.Context) {
	var req StartCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	workflowID := fmt.Sprintf("marketing-campaign-%s-%d", req.CampaignID, time.Now().Unix())

	_, err := h.temporal.ExecuteWorkflow(c.Request.Context(), client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: config.AppConfig.TemporalTaskQueue,
	}, workflows.MarketingCampaignWorkflow, models.CampaignInput{
		CampaignID:      req.CampaignID,
		MessageTemplate: req.MessageTemplate,
	})
	if err != nil {
		h.logger.Error("failed to start campaign workflow",
			zap.String("campaignId", req.CampaignID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start campaign", err.Error())
		return
	}

	h.logger.Info("started marketing campaign workflow",
		zap.String("workflowId", workflowID), zap.String("campaignId", req.CampaignID))

	c.JSON(http.StatusOK, gin.H{
		"workflowId": workflowID,
		"status":     "started",
	})
}
