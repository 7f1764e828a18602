package kingdom

// Variable is a named global scalar tracked per game instance,
// e.g. treasury or unrest. Bounds are optional; when set, every
// mutation clamps the value back into [MinValue, MaxValue].
type Variable struct {
	VariableID   string `json:"variable_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CurrentValue int    `json:"current_value"`
	MinValue     *int   `json:"min_value,omitempty"`
	MaxValue     *int   `json:"max_value,omitempty"`
}

// Apply adds delta to the current value and clamps into bounds.
// Returns the resulting value.
func (v *Variable) Apply(delta int) int {
	v.CurrentValue += delta
	if v.MinValue != nil && v.CurrentValue < *v.MinValue {
		v.CurrentValue = *v.MinValue
	}
	if v.MaxValue != nil && v.CurrentValue > *v.MaxValue {
		v.CurrentValue = *v.MaxValue
	}
	return v.CurrentValue
}

// ClampPercent clamps n into the standard [0,100] scale used by
// regional variables, NPC traits and regent attitudes.
func ClampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
