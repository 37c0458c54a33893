package workflows

import (
	"time"

	"salonnotify/activities"
	"salonnotify/models"

	"go.temporal.io/sdk/workflow"
)

// Campaign rate limiting: bursts of up to sendBatchSize are allowed, then the
// dispatcher stalls for batchPause before continuing.
const (
	sendBatchSize = 60
	batchPause    = time.Minute
)

// MarketingCampaignWorkflow delivers a promotional message to every eligible
// client of a campaign under the batch-then-pause throughput cap. Per-item
// failures are counted and never abort the batch.
func MarketingCampaignWorkflow(ctx workflow.Context, input models.CampaignInput) (*models.CampaignResult, error) {
	logger := workflow.GetLogger(ctx)

	var a *activities.NotificationActivities

	dctx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
	})
	var clients []models.CampaignClient
	if err := workflow.ExecuteActivity(dctx, a.GetEligibleClients, input.CampaignID).Get(ctx, &clients); err != nil {
		return nil, err
	}

	logger.Info("eligible clients fetched",
		"campaignId", input.CampaignID, "count", len(clients))

	sctx := workflow.WithActivityOptions(ctx, campaignSendActivityOptions())

	sent := 0
	failed := 0

	for i, client := range clients {
		if i > 0 && i%sendBatchSize == 0 {
			if err := workflow.Sleep(ctx, batchPause); err != nil {
				return nil, err
			}
		}

		var result models.StageResult
		err := workflow.ExecuteActivity(sctx, a.SendMarketingMessage, models.MarketingSendInput{
			CampaignID:      input.CampaignID,
			ClientID:        client.ID,
			Name:            client.Name,
			Phone:           client.Phone,
			MessageTemplate: input.MessageTemplate,
		}).Get(ctx, &result)
		if err != nil {
			logger.Error("failed to send marketing message",
				"campaignId", input.CampaignID, "clientId", client.ID, "error", err)
			failed++
			continue
		}

		if result.Succeeded {
			sent++
		} else {
			failed++
		}
	}

	return &models.CampaignResult{
		Status:       models.WorkflowStatusCompleted,
		CampaignID:   input.CampaignID,
		TotalClients: len(clients),
		Sent:         sent,
		Failed:       failed,
	}, nil
}
