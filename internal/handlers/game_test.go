package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/kingdom-council/internal/services"
	"github.com/jwebster45206/kingdom-council/internal/storage"
	"github.com/jwebster45206/kingdom-council/pkg/condition"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

func intPtr(n int) *int { return &n }

// handlerContent seeds a kingdom where the tax revolt fires on the
// opening scan, so every freshly created game has an active issue.
func handlerContent() *kingdom.Content {
	return &kingdom.Content{
		Variables: []kingdom.Variable{
			{VariableID: "treasury", CurrentValue: 10, MinValue: intPtr(0), MaxValue: intPtr(100)},
			{VariableID: "unrest", CurrentValue: 60, MinValue: intPtr(0), MaxValue: intPtr(100)},
		},
		Regions: []kingdom.Region{
			{RegionID: "port_city", Name: "Port City", Happiness: 60, Unrest: 20, MilitaryPower: 50},
		},
		NPCs: []kingdom.NPC{
			{
				NPCID: "general_thorne", Name: "General Thorne",
				CurrentRegionID: "port_city",
				Militaristic:    90, Religious: 20, Diplomatic: 30,
				IsAlive: true, CanMove: true,
			},
		},
		Attitudes: []kingdom.Attitude{
			{AttitudeID: "populism", CurrentValue: 55, Volatility: 12},
		},
		Triggers: []kingdom.Trigger{
			{
				TriggerID:        "tax_revolt",
				TriggeredIssueID: "tax_revolt_issue",
				Conditions: condition.Expr{
					"treasury": {Operator: condition.OpLess, Value: 20},
					"unrest":   {Operator: condition.OpGreater, Value: 50},
				},
				Priority:       15,
				CooldownRounds: 10,
				IsActive:       true,
			},
		},
		Actions: []kingdom.PlayerAction{
			{
				ActionID: "levy_taxes", RoleID: kingdom.RoleTreasurer,
				Name:           "Levy Taxes",
				Effect:         kingdom.Effect{Type: kingdom.EffectModifyVariable, Variable: "treasury", Change: 10},
				CooldownRounds: 1, IsActive: true,
			},
			{
				ActionID: "deploy_troops", RoleID: kingdom.RoleGeneral,
				Name:           "Deploy Troops",
				Effect:         kingdom.Effect{Type: kingdom.EffectModifyRegionalVariable, Variable: "militaryPower", Change: 15},
				CooldownRounds: 2, IsActive: true,
			},
		},
		Issues: []kingdom.Issue{
			{
				IssueID: "tax_revolt_issue", Title: "Tax Revolt",
				Resolutions: []kingdom.Resolution{
					{ChoiceID: "lower_taxes", Label: "Lower the tax rate"},
					{ChoiceID: "send_troops", Label: "Send in the garrison"},
				},
			},
		},
		RoleInfo: []kingdom.RegionRoleInfo{
			{RegionID: "port_city", RoleID: kingdom.RoleTreasurer, Title: "Harbor Ledgers", Information: "Tariff receipts are down.", Priority: 5},
		},
	}
}

func setupHandler(t *testing.T) (*GameHandler, *services.MockNarrative) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMockStorage()
	narrative := services.NewMockNarrative()
	engine := sim.NewEngine(handlerContent(), narrative, logger)
	runner := services.NewGameRunner(store, engine, rdb, logger, "test-handler")

	return NewGameHandler(runner, logger), narrative
}

// createGame drives the create endpoint and returns the new game view.
func createGame(t *testing.T, handler *GameHandler) *GameView {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/games", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var view GameView
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	return &view
}

func TestGameHandler_Create(t *testing.T) {
	handler, _ := setupHandler(t)

	view := createGame(t, handler)
	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, sim.StatusActive, view.Status)
	assert.Equal(t, 1, view.Round)

	// The opening scan already raised the tax revolt.
	require.NotNil(t, view.CurrentIssue)
	assert.Equal(t, "tax_revolt_issue", view.CurrentIssue.IssueID)

	// The view exposes only variable values and visible NPC fields.
	assert.Equal(t, 10, view.Variables["treasury"])
	require.Len(t, view.NPCs, 1)
	assert.Equal(t, "general_thorne", view.NPCs[0].NPCID)
}

func TestGameHandler_Read(t *testing.T) {
	handler, _ := setupHandler(t)
	created := createGame(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+created.ID.String(), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view GameView
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.Equal(t, created.ID, view.ID)

	// Hidden traits must not appear anywhere in the payload.
	assert.NotContains(t, rr.Body.String(), "militaristic")
}

func TestGameHandler_ReadNotFound(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameHandler_InvalidGameID(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/not-a-uuid", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameHandler_Patch(t *testing.T) {
	handler, _ := setupHandler(t)
	created := createGame(t, handler)

	req := httptest.NewRequest(http.MethodPatch, "/v1/games/"+created.ID.String(),
		strings.NewReader(`{"status":"paused"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var view GameView
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.Equal(t, sim.StatusPaused, view.Status)

	// Unknown status values are a client error.
	req = httptest.NewRequest(http.MethodPatch, "/v1/games/"+created.ID.String(),
		strings.NewReader(`{"status":"hibernating"}`))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGameHandler_Delete(t *testing.T) {
	handler, _ := setupHandler(t)
	created := createGame(t, handler)

	req := httptest.NewRequest(http.MethodDelete, "/v1/games/"+created.ID.String(), nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/games/"+created.ID.String(), nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameHandler_MethodNotAllowed(t *testing.T) {
	handler, _ := setupHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestGameHandler_UnknownResource(t *testing.T) {
	handler, _ := setupHandler(t)
	created := createGame(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/"+created.ID.String()+"/oracle", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
