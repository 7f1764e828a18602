package kingdom

import (
	"github.com/jwebster45206/kingdom-council/pkg/condition"
)

// Trigger is a rule that spawns an issue when its conditions hold.
// Global and regional conditions are ANDed; either may be empty.
// Definitions are static seed content; the per-game firing counters
// (times triggered, last triggered round) live on the game document.
type Trigger struct {
	TriggerID   string `json:"trigger_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	TriggeredIssueID string `json:"triggered_issue_id"`

	Conditions         condition.Expr          `json:"conditions,omitempty"`
	RegionalConditions *condition.RegionalExpr `json:"regional_conditions,omitempty"`

	Priority                int  `json:"priority"`
	CanTriggerMultipleTimes bool `json:"can_trigger_multiple_times"`
	CooldownRounds          int  `json:"cooldown_rounds"`

	IsActive bool `json:"is_active"`
}
