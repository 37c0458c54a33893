package whatsapp

import "context"

// SendResult is the provider's answer to a successful API call.
type SendResult struct {
	MessageID string `json:"messageId"`
}

// Provider defines the outbound WhatsApp messaging contract. Implementations
// return an error for transport faults (timeouts, network errors, non-2xx
// responses); callers decide retry behavior.
type Provider interface {
	SendMessage(ctx context.Context, to, message, templateName string, parameters map[string]string) (*SendResult, error)
}
