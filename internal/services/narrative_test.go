package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

func testIssue() *kingdom.Issue {
	return &kingdom.Issue{
		IssueID:     "tax_revolt_issue",
		Title:       "Tax Revolt",
		Description: "Mobs gather outside the counting houses.",
		Resolutions: []kingdom.Resolution{
			{ChoiceID: "lower_taxes", Label: "Lower taxes"},
		},
	}
}

func TestParseOutcomeResponse(t *testing.T) {
	content := `{"narrative":"The levy is lowered.","variable_changes":{"treasury":-5},"attitude_changes":{"populism":8}}`

	outcome, err := parseOutcomeResponse(content)
	require.NoError(t, err)
	assert.Equal(t, "The levy is lowered.", outcome.Narrative)
	assert.Equal(t, -5, outcome.VariableChanges["treasury"])
	assert.Equal(t, 8, outcome.AttitudeChanges["populism"])
}

func TestParseOutcomeResponse_WrappedInProse(t *testing.T) {
	content := "Here is the outcome:\n```json\n" +
		`{"narrative":"The crowds disperse.","regional_changes":{"port_city":{"unrest":-10}}}` +
		"\n```\nLet me know if you need anything else."

	outcome, err := parseOutcomeResponse(content)
	require.NoError(t, err)
	assert.Equal(t, "The crowds disperse.", outcome.Narrative)
	assert.Equal(t, -10, outcome.RegionalChanges["port_city"]["unrest"])
}

func TestParseOutcomeResponse_Errors(t *testing.T) {
	_, err := parseOutcomeResponse("no json here")
	assert.Error(t, err)

	_, err = parseOutcomeResponse(`{"variable_changes":{"treasury":-5}}`)
	assert.Error(t, err, "missing narrative")

	_, err = parseOutcomeResponse(`{"narrative": broken}`)
	assert.Error(t, err)
}

func TestBuildOutcomePrompt(t *testing.T) {
	snap := sim.StateSnapshot{
		Round:     3,
		Variables: map[string]int{"treasury": 10},
	}

	prompt, err := buildOutcomePrompt(testIssue(), "lower_taxes", snap)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Tax Revolt")
	assert.Contains(t, prompt, "OPTION lower_taxes")
	assert.Contains(t, prompt, "THE COUNCIL CHOSE: lower_taxes")
	assert.Contains(t, prompt, `"treasury":10`)
}

func TestAnthropicNarrative_GenerateOutcome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		body, _ := io.ReadAll(r.Body)
		var req anthropicChatRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.NotEmpty(t, req.System)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Tax Revolt")

		resp := anthropicChatResponse{
			Content: []anthropicContentBlock{
				{Type: "text", Text: `{"narrative":"The levy is lowered.","variable_changes":{"treasury":-5}}`},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewAnthropicNarrative("test-key", "test-model", logger)
	svc.baseURL = server.URL

	outcome, err := svc.GenerateOutcome(context.Background(), testIssue(), "lower_taxes", sim.StateSnapshot{Round: 1})
	require.NoError(t, err)
	assert.Equal(t, "The levy is lowered.", outcome.Narrative)
	assert.Equal(t, -5, outcome.VariableChanges["treasury"])
}

func TestAnthropicNarrative_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"type":"overloaded_error","message":"try later"}}`))
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewAnthropicNarrative("test-key", "test-model", logger)
	svc.baseURL = server.URL

	_, err := svc.GenerateOutcome(context.Background(), testIssue(), "lower_taxes", sim.StateSnapshot{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
