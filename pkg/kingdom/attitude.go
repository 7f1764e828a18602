package kingdom

// Attitude is one of the Regent's hidden preferences. Values are
// never serialized to players; they only weight narrative outcomes.
// Volatility caps how far the value may shift per resolution.
type Attitude struct {
	AttitudeID  string `json:"attitude_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	CurrentValue int    `json:"current_value"`
	Volatility   int    `json:"volatility"`
	Category     string `json:"category,omitempty"`
}

// Drift applies a single bounded delta: the magnitude is clamped to
// ±Volatility, and the resulting value to [0,100]. Returns the delta
// actually applied.
func (a *Attitude) Drift(delta int) int {
	if delta > a.Volatility {
		delta = a.Volatility
	}
	if delta < -a.Volatility {
		delta = -a.Volatility
	}
	before := a.CurrentValue
	a.CurrentValue = ClampPercent(a.CurrentValue + delta)
	return a.CurrentValue - before
}
