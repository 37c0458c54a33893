package models

// CampaignInput starts a MarketingCampaignWorkflow.
type CampaignInput struct {
	CampaignID      string `json:"campaignId"`
	MessageTemplate string `json:"messageTemplate"`
}

// MarketingSendInput is one dispatcher item: a single promotional send.
type MarketingSendInput struct {
	CampaignID      string `json:"campaignId"`
	ClientID        string `json:"clientId"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	MessageTemplate string `json:"messageTemplate"`
}

// CampaignResult is the final tally of a campaign dispatch.
type CampaignResult struct {
	Status       string `json:"status"`
	CampaignID   string `json:"campaignId"`
	TotalClients int    `json:"totalClients"`
	Sent         int    `json:"sent"`
	Failed       int    `json:"failed"`
}
