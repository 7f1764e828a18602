package kingdom

import "time"

// HistoryEntry records one issue resolution: who resolved what, the
// narrative text supplied by the collaborator, and the structured
// state changes that were applied. Entries are append-only.
type HistoryEntry struct {
	IssueID          string         `json:"issue_id"`
	PlayerRole       string         `json:"player_role"`
	ResolutionChoice string         `json:"resolution_choice"`
	NarrativeOutcome string         `json:"narrative_outcome"`
	StateChanges     map[string]int `json:"state_changes,omitempty"`
	Round            int            `json:"round"`
	CreatedAt        time.Time      `json:"created_at"`
}

// ActionRecord logs one player action invocation and its outcome.
type ActionRecord struct {
	ActionID  string    `json:"action_id"`
	RoleID    string    `json:"role_id"`
	Round     int       `json:"round"`
	Result    string    `json:"result,omitempty"`
	RegionID  string    `json:"region_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Movement logs one NPC relocation with a human-readable reason.
type Movement struct {
	NPCID        string    `json:"npc_id"`
	FromRegionID string    `json:"from_region_id,omitempty"`
	ToRegionID   string    `json:"to_region_id"`
	Reason       string    `json:"reason,omitempty"`
	Round        int       `json:"round"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoricalEvent is a world event shown on the map's history layer.
// Seed rows use negative rounds for events before the game begins;
// the engine appends new entries as issues resolve.
type HistoricalEvent struct {
	EventID  string `json:"event_id"`
	RegionID string `json:"region_id,omitempty"` // empty = kingdom-wide

	Title       string `json:"title"`
	Description string `json:"description"`
	EventType   string `json:"event_type,omitempty"`

	Round      int  `json:"round"`
	Importance int  `json:"importance"`
	IsVisible  bool `json:"is_visible"`
}
