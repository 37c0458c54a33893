package clientRepo

import "salonnotify/models"

// ClientRepository defines the data access contract for salon clients.
type ClientRepository interface {
	// CanReceiveMessages reports whether a client is active and not blocked.
	// A missing client cannot receive messages.
	CanReceiveMessages(clientID string) (bool, error)

	// GetEligibleClients returns clients eligible for a marketing campaign:
	// marketing consent granted, active, not blocked, no visit within
	// recencyDays (or never visited), and a usable phone number present.
	GetEligibleClients(recencyDays int) ([]models.CampaignClient, error)
}
