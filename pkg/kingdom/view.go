package kingdom

// NPCView is the player-visible projection of an NPC. The hidden
// attitude traits are deliberately absent; there is one internal
// representation and this projection, rather than parallel fields.
type NPCView struct {
	NPCID           string `json:"npc_id"`
	Name            string `json:"name"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	CurrentRegionID string `json:"current_region_id,omitempty"`
	Loyalty         int    `json:"loyalty"`
	Influence       int    `json:"influence"`
	Wealth          int    `json:"wealth"`
	NPCType         string `json:"npc_type,omitempty"`
	IsAlive         bool   `json:"is_alive"`
}

// View projects the NPC down to its player-visible subset.
func (n *NPC) View() NPCView {
	return NPCView{
		NPCID:           n.NPCID,
		Name:            n.Name,
		Title:           n.Title,
		Description:     n.Description,
		CurrentRegionID: n.CurrentRegionID,
		Loyalty:         n.Loyalty,
		Influence:       n.Influence,
		Wealth:          n.Wealth,
		NPCType:         n.NPCType,
		IsAlive:         n.IsAlive,
	}
}

// RegionView is what one council role sees when inspecting a region:
// the public region state, the NPCs present, and the role's private
// intelligence rows.
type RegionView struct {
	Region   Region           `json:"region"`
	NPCs     []NPCView        `json:"npcs,omitempty"`
	RoleInfo []RegionRoleInfo `json:"role_info,omitempty"`
}
