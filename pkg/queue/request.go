package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RequestType identifies the type of request in the queue.
type RequestType string

const (
	// RequestTypeAdvanceRound asks the worker to advance a game one
	// round: mobility pass plus trigger scan.
	RequestTypeAdvanceRound RequestType = "advance_round"

	// RequestTypeResolveIssue asks the worker to resolve the active
	// issue with a submitted choice.
	RequestTypeResolveIssue RequestType = "resolve_issue"
)

// Request is a unit of background work for one game.
type Request struct {
	RequestID string      `json:"request_id"`
	Type      RequestType `json:"type"`
	GameID    uuid.UUID   `json:"game_id"`

	// Resolve-specific fields.
	IssueID string `json:"issue_id,omitempty"`
	RoleID  string `json:"role_id,omitempty"`
	Choice  string `json:"choice,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewAdvanceRound builds an advance_round request for a game.
func NewAdvanceRound(gameID uuid.UUID) *Request {
	return &Request{
		RequestID:  uuid.NewString(),
		Type:       RequestTypeAdvanceRound,
		GameID:     gameID,
		EnqueuedAt: time.Now(),
	}
}

// NewResolveIssue builds a resolve_issue request.
func NewResolveIssue(gameID uuid.UUID, issueID, roleID, choice string) *Request {
	return &Request{
		RequestID:  uuid.NewString(),
		Type:       RequestTypeResolveIssue,
		GameID:     gameID,
		IssueID:    issueID,
		RoleID:     roleID,
		Choice:     choice,
		EnqueuedAt: time.Now(),
	}
}

// ToJSON converts the request to JSON bytes for Redis.
func (r *Request) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// FromJSON parses a request from JSON bytes.
func FromJSON(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
