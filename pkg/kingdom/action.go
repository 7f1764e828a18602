package kingdom

import (
	"encoding/json"
	"fmt"
)

// Effect types a player action may carry.
const (
	EffectRevealInfo             = "reveal_info"
	EffectModifyVariable         = "modify_variable"
	EffectModifyRegionalVariable = "modify_regional_variable"
)

// Effect is the structured consequence of invoking a player action.
// reveal_info surfaces role intelligence and mutates nothing;
// the modify effects add a signed delta to a global or regional
// variable through the clamped mutation path.
type Effect struct {
	Type     string `json:"type"`
	Variable string `json:"variable,omitempty"` // modify_* effects
	Change   int    `json:"change,omitempty"`   // signed delta
	InfoType string `json:"infoType,omitempty"` // reveal_info effects
}

// UnmarshalJSON validates the effect type at load time so a bad seed
// row cannot reach the action processor.
func (e *Effect) UnmarshalJSON(data []byte) error {
	type alias Effect
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case EffectRevealInfo:
	case EffectModifyVariable, EffectModifyRegionalVariable:
		if raw.Variable == "" {
			return fmt.Errorf("effect %q: missing variable", raw.Type)
		}
	default:
		return fmt.Errorf("unknown effect type %q", raw.Type)
	}
	*e = Effect(raw)
	return nil
}

// PlayerAction is a role-scoped capability. UsesPerGame of nil means
// unlimited; cooldown and usage counters are tracked per game and
// per role on the game document.
type PlayerAction struct {
	ActionID string `json:"action_id"`
	RoleID   string `json:"role_id"`

	Name        string `json:"name"`
	Description string `json:"description"`
	ButtonLabel string `json:"button_label,omitempty"`

	Effect Effect `json:"effects"`

	CooldownRounds int  `json:"cooldown_rounds"`
	UsesPerGame    *int `json:"uses_per_game,omitempty"`

	IsActive bool `json:"is_active"`
}
