package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ChakraHQProvider sends WhatsApp messages through the ChakraHQ API.
// Refer to: https://apidocs.chakrahq.com/api-11312774
type ChakraHQProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewChakraHQProvider creates a ChakraHQ provider with a 30s request timeout.
func NewChakraHQProvider(apiKey, baseURL string, logger *zap.Logger) *ChakraHQProvider {
	return &ChakraHQProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

type templateLanguage struct {
	Policy string `json:"policy"`
	Code   string `json:"code"`
}

type templateParameter struct {
	Type          string `json:"type"`
	ParameterName string `json:"parameter_name,omitempty"`
	Text          string `json:"text"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templatePayload struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components"`
}

type sendMessageRequest struct {
	MessagingProduct string          `json:"messaging_product"`
	RecipientType    string          `json:"recipient_type"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         templatePayload `json:"template"`
}

type sendMessageResponse struct {
	ID string `json:"id"`
}

// SendMessage sends a template message. Any transport fault or non-2xx
// response surfaces as an error so the caller's retry policy applies.
func (p *ChakraHQProvider) SendMessage(ctx context.Context, to, message, templateName string, parameters map[string]string) (*SendResult, error) {
	params := make([]templateParameter, 0, len(parameters))
	for name, value := range parameters {
		params = append(params, templateParameter{
			Type:          "text",
			ParameterName: name,
			Text:          value,
		})
	}
	if len(params) == 0 {
		params = append(params, templateParameter{Type: "text", Text: message})
	}

	payload := sendMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "template",
		Template: templatePayload{
			Name:     templateName,
			Language: templateLanguage{Policy: "deterministic", Code: "en"},
			Components: []templateComponent{
				{Type: "body", Parameters: params},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chakra request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Error("ChakraHQ API error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, fmt.Errorf("chakra API returned HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed sendMessageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse chakra response: %w", err)
	}

	return &SendResult{MessageID: parsed.ID}, nil
}
