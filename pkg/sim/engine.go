package sim

import (
	"context"
	"log/slog"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// Outcome is what the narrative collaborator returns for a resolved
// issue: prose plus proposed state deltas. All deltas are proposals;
// the engine clamps them against variable bounds and attitude
// volatility before applying.
type Outcome struct {
	Narrative string `json:"narrative"`

	// VariableChanges are deltas to global variables, keyed by
	// variable ID.
	VariableChanges map[string]int `json:"variable_changes,omitempty"`

	// RegionalChanges are deltas to regional variables, keyed by
	// region ID then variable name.
	RegionalChanges map[string]map[string]int `json:"regional_changes,omitempty"`

	// AttitudeChanges are deltas to kingdom attitudes, keyed by
	// attitude ID. Each is clamped to the attitude's volatility.
	AttitudeChanges map[string]int `json:"attitude_changes,omitempty"`

	// TraitChanges are deltas to hidden NPC traits, keyed by NPC ID
	// then trait name.
	TraitChanges map[string]map[string]int `json:"trait_changes,omitempty"`
}

// Narrative generates the story outcome of a council decision. The
// engine treats any error as retryable and leaves game state
// untouched.
type Narrative interface {
	GenerateOutcome(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error)
}

// Engine runs the simulation rules against a game document. It holds
// no mutable state of its own; callers are responsible for serializing
// writes to any one game.
type Engine struct {
	content   *kingdom.Content
	narrative Narrative
	logger    *slog.Logger
}

// NewEngine creates an engine over a validated content bundle.
func NewEngine(content *kingdom.Content, narrative Narrative, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		content:   content,
		narrative: narrative,
		logger:    logger,
	}
}

// Content exposes the static definitions the engine was built with.
func (e *Engine) Content() *kingdom.Content {
	return e.content
}
