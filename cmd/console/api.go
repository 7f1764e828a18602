package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/kingdom-council/internal/handlers"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/v1/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// doJSON runs one request against the API and decodes the response
// into out. A non-2xx status is surfaced as the API's error message.
func doJSON(client *http.Client, method, url, role string, reqBody interface{}, expectStatus int, out interface{}) error {
	var body io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(handlers.RoleHeader, role)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != expectStatus {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("%s", errorResp.Error)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func createGame(client *http.Client, baseURL string) (*handlers.GameView, error) {
	var view handlers.GameView
	if err := doJSON(client, http.MethodPost, baseURL+"/v1/games", "", nil, http.StatusCreated, &view); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &view, nil
}

func getGame(client *http.Client, baseURL string, gameID uuid.UUID) (*handlers.GameView, error) {
	var view handlers.GameView
	url := fmt.Sprintf("%s/v1/games/%s", baseURL, gameID)
	if err := doJSON(client, http.MethodGet, url, "", nil, http.StatusOK, &view); err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &view, nil
}

func getIssue(client *http.Client, baseURL string, gameID uuid.UUID) (*handlers.IssueView, error) {
	var view handlers.IssueView
	url := fmt.Sprintf("%s/v1/games/%s/issue", baseURL, gameID)
	if err := doJSON(client, http.MethodGet, url, "", nil, http.StatusOK, &view); err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}
	return &view, nil
}

func resolveIssue(client *http.Client, baseURL string, gameID uuid.UUID, role, issueID, choice string) (*sim.ResolveResult, error) {
	var res sim.ResolveResult
	url := fmt.Sprintf("%s/v1/games/%s/issue/resolve", baseURL, gameID)
	req := handlers.ResolveIssueRequest{IssueID: issueID, Choice: choice}
	if err := doJSON(client, http.MethodPost, url, role, req, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func invokeAction(client *http.Client, baseURL string, gameID uuid.UUID, role, actionID, regionID string) (*sim.ActionResult, error) {
	var res sim.ActionResult
	url := fmt.Sprintf("%s/v1/games/%s/actions", baseURL, gameID)
	req := handlers.InvokeActionRequest{ActionID: actionID, RegionID: regionID}
	if err := doJSON(client, http.MethodPost, url, role, req, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func getRegion(client *http.Client, baseURL string, gameID uuid.UUID, role, regionID string) (*kingdom.RegionView, error) {
	var view kingdom.RegionView
	url := fmt.Sprintf("%s/v1/games/%s/regions/%s", baseURL, gameID, regionID)
	if err := doJSON(client, http.MethodGet, url, role, nil, http.StatusOK, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func advanceRound(client *http.Client, baseURL string, gameID uuid.UUID) (*sim.ResolveResult, error) {
	var res sim.ResolveResult
	url := fmt.Sprintf("%s/v1/games/%s/advance", baseURL, gameID)
	if err := doJSON(client, http.MethodPost, url, "", nil, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func sendNote(client *http.Client, baseURL string, gameID uuid.UUID, role, recipient, content string) (*kingdom.Note, error) {
	var note kingdom.Note
	url := fmt.Sprintf("%s/v1/games/%s/notes", baseURL, gameID)
	req := handlers.SendNoteRequest{RecipientRole: recipient, Content: content}
	if err := doJSON(client, http.MethodPost, url, role, req, http.StatusCreated, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func listNotes(client *http.Client, baseURL string, gameID uuid.UUID, role string) ([]kingdom.Note, error) {
	var notes []kingdom.Note
	url := fmt.Sprintf("%s/v1/games/%s/notes", baseURL, gameID)
	if err := doJSON(client, http.MethodGet, url, role, nil, http.StatusOK, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
