package models

import "time"

// Client is a salon client record.
type Client struct {
	ID               string     `bson:"id" json:"id"`
	FirstName        string     `bson:"firstName" json:"firstName"`
	LastName         string     `bson:"lastName" json:"lastName"`
	Phone            string     `bson:"phone,omitempty" json:"phone,omitempty"`
	WhatsApp         string     `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	Status           string     `bson:"status" json:"status"`
	IsActive         bool       `bson:"isActive" json:"isActive"`
	MarketingConsent bool       `bson:"marketingConsent" json:"marketingConsent"`
	LastVisitDate    *time.Time `bson:"lastVisitDate,omitempty" json:"lastVisitDate,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ClientStatusBlocked marks clients that must never receive messages.
const ClientStatusBlocked = "blocked"

// FullName returns the client's display name.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// BestPhone prefers the WhatsApp-registered number over the general one.
func (c *Client) BestPhone() string {
	if c.WhatsApp != "" {
		return c.WhatsApp
	}
	return c.Phone
}

// CampaignClient is the read-only slice of a client handed to the
// marketing campaign dispatcher.
type CampaignClient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
