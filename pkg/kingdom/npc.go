package kingdom

// Agenda describes what an NPC wants and what it fears. Narrative
// generation and mobility reasons draw on these lists.
type Agenda struct {
	Goals []string `json:"goals,omitempty"`
	Fears []string `json:"fears,omitempty"`
}

// NPC is a named actor in the game world. Loyalty, influence and
// wealth are visible to all council roles; militaristic, religious
// and diplomatic are hidden traits that steer event weighting and
// mobility. All six are bounded [0,100].
type NPC struct {
	NPCID       string `json:"npc_id"`
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// CurrentRegionID is empty when the NPC is outside the mapped
	// kingdom (exiled, at sea, dead).
	CurrentRegionID string `json:"current_region_id,omitempty"`

	Loyalty   int `json:"loyalty"`
	Influence int `json:"influence"`
	Wealth    int `json:"wealth"`

	Militaristic int `json:"militaristic"`
	Religious    int `json:"religious"`
	Diplomatic   int `json:"diplomatic"`

	NPCType string `json:"npc_type,omitempty"`
	Agenda  Agenda `json:"agenda,omitempty"`

	IsAlive bool `json:"is_alive"`
	CanMove bool `json:"can_move"`
}

// HiddenTrait returns the named hidden trait. Unknown names return
// (0, false).
func (n *NPC) HiddenTrait(name string) (int, bool) {
	switch name {
	case "militaristic":
		return n.Militaristic, true
	case "religious":
		return n.Religious, true
	case "diplomatic":
		return n.Diplomatic, true
	}
	return 0, false
}

// DriftTrait adds a bounded delta to a trait, visible or hidden,
// clamping to [0,100]. Returns false for unknown trait names.
func (n *NPC) DriftTrait(name string, delta int) bool {
	switch name {
	case "loyalty":
		n.Loyalty = ClampPercent(n.Loyalty + delta)
	case "influence":
		n.Influence = ClampPercent(n.Influence + delta)
	case "wealth":
		n.Wealth = ClampPercent(n.Wealth + delta)
	case "militaristic":
		n.Militaristic = ClampPercent(n.Militaristic + delta)
	case "religious":
		n.Religious = ClampPercent(n.Religious + delta)
	case "diplomatic":
		n.Diplomatic = ClampPercent(n.Diplomatic + delta)
	default:
		return false
	}
	return true
}

// DisplayName returns the NPC's name, falling back to a titled ID.
func (n *NPC) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return TitleID(n.NPCID)
}
