package activities

import (
	"context"

	"salonnotify/models"

	"go.uber.org/zap"
)

// SendMarketingMessage sends one promotional message for a campaign. Unlike
// booking stages there is no booking to load; the dispatcher already carries
// the client's name and phone.
func (a *NotificationActivities) SendMarketingMessage(ctx context.Context, input models.MarketingSendInput) (models.StageResult, error) {
	a.logger.Info("sending marketing message",
		zap.String("campaignId", input.CampaignID),
		zap.String("clientId", input.ClientID),
	)

	phone, err := a.formatPhone(input.Phone)
	if err != nil {
		return models.StageResult{}, err
	}

	msg := a.templates.Marketing(input.Name, input.MessageTemplate)

	result, sendErr := a.provider.SendMessage(ctx, phone, msg.Text, msg.TemplateName, msg.Parameters)
	if sendErr != nil {
		a.logger.Error("failed to send marketing message",
			zap.String("campaignId", input.CampaignID),
			zap.String("clientId", input.ClientID),
			zap.Error(sendErr),
		)
		a.logNotification("", input.ClientID, phone, models.MessageTypeMarketing, msg.Text,
			models.NotificationStatusFailed, "", sendErr.Error())
		return models.StageResult{}, sendErr
	}

	a.logNotification("", input.ClientID, phone, models.MessageTypeMarketing, msg.Text,
		models.NotificationStatusSent, result.MessageID, "")

	return models.SucceededStage(models.MessageTypeMarketing, result.MessageID), nil
}
