// Package voiceagent talks to the ElevenLabs conversational AI API:
// registering the dealership agent, starting sessions, and polling
// conversation status.
package voiceagent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const defaultBaseURL = "https://api.elevenlabs.io/v1"

// Client is a thin ElevenLabs REST client. Transient failures (5xx,
// network errors) are retried with exponential backoff; 4xx responses
// fail immediately.
type Client struct {
	apiKey     string
	agentID    string
	webhookURL string
	baseURL    string
	http       *http.Client
	maxElapsed time.Duration
}

func NewClient(apiKey, agentID, webhookURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		agentID:    agentID,
		webhookURL: webhookURL,
		baseURL:    defaultBaseURL,
		http:       &http.Client{Timeout: 30 * time.Second},
		maxElapsed: 2 * time.Minute,
	}
}

// SetBaseURL points the client at a different API host. Test hook.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("voiceagent: elevenlabs returned %d: %s", e.StatusCode, e.Body)
}

// SetupAgent registers (or re-registers) the dealership assistant with
// its system prompt, voice, tools, and post-call webhooks.
func (c *Client) SetupAgent(ctx context.Context, dealerName string) (Agent, error) {
	def := AgentDefinition{
		Name:         "Dealer Logic Assistant",
		SystemPrompt: systemPrompt(dealerName),
		Voice: VoiceSettings{
			VoiceID:         "rachel",
			Stability:       0.8,
			SimilarityBoost: 0.75,
		},
		Tools: DealershipTools(c.webhookURL),
		Webhooks: Webhooks{
			PostCallTranscription: c.webhookURL + "/transcription",
			PostCallAudio:         c.webhookURL + "/audio",
		},
	}

	var agent Agent
	err := c.do(ctx, http.MethodPost, "/conversational-ai/agents", def, &agent)
	if err != nil {
		return Agent{}, err
	}
	return agent, nil
}

// StartConversation opens a new session against the registered agent.
func (c *Client) StartConversation(ctx context.Context, metadata map[string]any) (Conversation, error) {
	body := map[string]any{"agent_id": c.agentID}
	for k, v := range metadata {
		body[k] = v
	}

	var conv Conversation
	if err := c.do(ctx, http.MethodPost, "/conversational-ai/conversations", body, &conv); err != nil {
		return Conversation{}, err
	}
	return conv, nil
}

// ConversationStatus fetches the current state of a session.
func (c *Client) ConversationStatus(ctx context.Context, conversationID string) (Conversation, error) {
	var conv Conversation
	path := "/conversational-ai/conversations/" + conversationID
	if err := c.do(ctx, http.MethodGet, path, nil, &conv); err != nil {
		return Conversation{}, err
	}
	return conv, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("voiceagent: encode request: %w", err)
		}
	}

	operation := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("xi-api-key", c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 {
			return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Body: string(raw)})
		}
		if out != nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return backoff.Permanent(fmt.Errorf("voiceagent: decode response: %w", err))
			}
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsed
	return backoff.Retry(operation, backoff.WithContext(bo, ctx))
}

// DealershipTools returns the webhook tool registrations sent with the
// agent definition. The webhook handlers bind exactly these parameter
// names; their tests post payloads built from this schema.
func DealershipTools(webhookURL string) []Tool {
	return []Tool{
		{
			Name:        "inventory_search",
			Description: "Search available vehicle inventory",
			Type:        "webhook",
			WebhookURL:  webhookURL + "/tools/inventory",
			Parameters: map[string]ToolParam{
				"make":      {Type: "string", Description: "Vehicle manufacturer"},
				"model":     {Type: "string", Description: "Vehicle model"},
				"year":      {Type: "number", Description: "Model year"},
				"price_max": {Type: "number", Description: "Maximum price"},
				"type":      {Type: "string", Description: "Vehicle type (SUV, Sedan, Truck, etc.)"},
			},
		},
		{
			Name:        "schedule_service",
			Description: "Schedule a service appointment",
			Type:        "webhook",
			WebhookURL:  webhookURL + "/tools/service",
			Parameters: map[string]ToolParam{
				"service_type":   {Type: "string", Description: "Type of service needed"},
				"preferred_date": {Type: "string", Description: "Preferred appointment date"},
				"vehicle_info":   {Type: "string", Description: "Vehicle year, make, and model"},
				"customer_name":  {Type: "string", Description: "Customer name"},
				"phone":          {Type: "string", Description: "Contact phone number"},
			},
		},
		{
			Name:        "check_trade_value",
			Description: "Estimate trade-in value for a vehicle",
			Type:        "webhook",
			WebhookURL:  webhookURL + "/tools/trade",
			Parameters: map[string]ToolParam{
				"year":      {Type: "number", Description: "Vehicle year"},
				"make":      {Type: "string", Description: "Vehicle manufacturer"},
				"model":     {Type: "string", Description: "Vehicle model"},
				"mileage":   {Type: "number", Description: "Current mileage"},
				"condition": {Type: "string", Description: "Vehicle condition (excellent, good, fair)"},
			},
		},
		{
			Name:        "transfer_to_human",
			Description: "Transfer call to human representative",
			Type:        "webhook",
			WebhookURL:  webhookURL + "/tools/transfer",
			Parameters: map[string]ToolParam{
				"department":    {Type: "string", Description: "Department to transfer to"},
				"reason":        {Type: "string", Description: "Reason for transfer"},
				"customer_info": {Type: "object", Description: "Customer information collected"},
			},
		},
	}
}

func systemPrompt(dealerName string) string {
	return fmt.Sprintf(`You are a professional automotive dealership assistant for %s.

## Your Role
- Greet customers warmly and professionally
- Help with vehicle inventory inquiries
- Schedule service appointments
- Provide trade-in estimates
- Connect customers with the right department

## Guidelines
- Always be helpful and courteous
- If unsure, offer to connect with a human specialist
- Collect customer contact info for follow-up
- Mention current promotions when relevant

## Tools Available
- inventory_search: Search available vehicles
- schedule_service: Book service appointments
- check_trade_value: Estimate trade-in values
- transfer_to_human: Connect to sales/service team`, dealerName)
}
