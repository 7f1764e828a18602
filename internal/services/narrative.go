package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"

	DefaultAnthropicTemperature = 0.7
	DefaultAnthropicMaxTokens   = 2048
)

const outcomeSystemPrompt = `You are the royal chronicler of a kingdom council game. ` +
	`Given an issue before the council, the choice the players made, and the current ` +
	`kingdom state, write a short narrative outcome and propose state changes. ` +
	`Respond with a single JSON object with fields: "narrative" (string), ` +
	`"variable_changes" (object of variable id to signed integer delta), ` +
	`"regional_changes" (object of region id to object of variable name to delta), ` +
	`"attitude_changes" (object of attitude id to delta) and ` +
	`"trait_changes" (object of npc id to object of trait name to delta). ` +
	`Keep deltas small, between -20 and 20. Do not include any text outside the JSON object.`

// AnthropicNarrative implements sim.Narrative using Anthropic Claude.
type AnthropicNarrative struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure AnthropicNarrative implements sim.Narrative
var _ sim.Narrative = (*AnthropicNarrative)(nil)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicChatRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

type anthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicChatResponse struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"`
	Role       string                  `json:"role"`
	Content    []anthropicContentBlock `json:"content"`
	Model      string                  `json:"model"`
	StopReason string                  `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewAnthropicNarrative(apiKey string, modelName string, logger *slog.Logger) *AnthropicNarrative {
	return &AnthropicNarrative{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   anthropicBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

// GenerateOutcome asks the model for a narrative and proposed state
// deltas for a resolved issue. The engine clamps everything the model
// proposes, so a generous response cannot break game invariants.
func (a *AnthropicNarrative) GenerateOutcome(ctx context.Context, issue *kingdom.Issue, choice string, snap sim.StateSnapshot) (*sim.Outcome, error) {
	userMsg, err := buildOutcomePrompt(issue, choice, snap)
	if err != nil {
		return nil, err
	}

	content, err := a.chatCompletion(ctx, outcomeSystemPrompt, userMsg)
	if err != nil {
		return nil, err
	}

	outcome, err := parseOutcomeResponse(content)
	if err != nil {
		a.logger.Error("Failed to parse outcome response", "error", err, "issue_id", issue.IssueID)
		return nil, err
	}

	return outcome, nil
}

func buildOutcomePrompt(issue *kingdom.Issue, choice string, snap sim.StateSnapshot) (string, error) {
	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state snapshot: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ISSUE: %s\n%s\n\n", issue.Title, issue.Description)
	for _, r := range issue.Resolutions {
		fmt.Fprintf(&sb, "OPTION %s: %s\n", r.ChoiceID, r.Label)
	}
	fmt.Fprintf(&sb, "\nTHE COUNCIL CHOSE: %s\n\nKINGDOM STATE:\n%s\n", choice, snapJSON)
	return sb.String(), nil
}

func (a *AnthropicNarrative) chatCompletion(ctx context.Context, systemPrompt, userMsg string) (string, error) {
	temperature := DefaultAnthropicTemperature
	anthropicReq := anthropicChatRequest{
		Model:       a.modelName,
		MaxTokens:   DefaultAnthropicMaxTokens,
		Temperature: &temperature,
		System:      systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userMsg},
		},
		Stream: false,
	}

	reqBody, err := json.Marshal(anthropicReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/messages", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set required Anthropic headers
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var anthropicResp anthropicChatResponse
	if err := json.Unmarshal(body, &anthropicResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if anthropicResp.Error != nil {
		return "", fmt.Errorf("API error: %s", anthropicResp.Error.Message)
	}

	var responseText string
	for _, content := range anthropicResp.Content {
		if content.Type == "text" {
			responseText += content.Text
		}
	}

	return responseText, nil
}

// parseOutcomeResponse extracts the outcome JSON from the model's
// text. Models sometimes wrap the object in prose or code fences, so
// everything outside the outermost braces is discarded.
func parseOutcomeResponse(content string) (*sim.Outcome, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in outcome response")
	}

	var outcome sim.Outcome
	if err := json.Unmarshal([]byte(content[start:end+1]), &outcome); err != nil {
		return nil, fmt.Errorf("failed to parse outcome JSON: %w", err)
	}
	if outcome.Narrative == "" {
		return nil, fmt.Errorf("outcome response missing narrative")
	}
	return &outcome, nil
}
