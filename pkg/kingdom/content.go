package kingdom

import "fmt"

// Content is the static definition bundle for a game: everything
// loaded from seed files. Mutable per-game copies of regions, NPCs,
// variables and attitudes are instantiated onto the game document at
// creation; triggers, actions, issues and role info are read-only
// and consulted by ID during play.
type Content struct {
	Variables []Variable        `json:"variables"`
	Regions   []Region          `json:"regions"`
	NPCs      []NPC             `json:"npcs"`
	Attitudes []Attitude        `json:"attitudes"`
	Triggers  []Trigger         `json:"triggers"`
	Actions   []PlayerAction    `json:"actions"`
	Issues    []Issue           `json:"issues"`
	RoleInfo  []RegionRoleInfo  `json:"role_info,omitempty"`
	Events    []HistoricalEvent `json:"historical_events,omitempty"`
}

// Trigger returns the trigger definition by ID.
func (c *Content) Trigger(triggerID string) (*Trigger, bool) {
	for i := range c.Triggers {
		if c.Triggers[i].TriggerID == triggerID {
			return &c.Triggers[i], true
		}
	}
	return nil, false
}

// Action returns the player action definition by ID.
func (c *Content) Action(actionID string) (*PlayerAction, bool) {
	for i := range c.Actions {
		if c.Actions[i].ActionID == actionID {
			return &c.Actions[i], true
		}
	}
	return nil, false
}

// Issue returns the issue definition by ID.
func (c *Content) Issue(issueID string) (*Issue, bool) {
	for i := range c.Issues {
		if c.Issues[i].IssueID == issueID {
			return &c.Issues[i], true
		}
	}
	return nil, false
}

// RegionInfo returns the role-info rows for one region and role,
// ordered by descending priority.
func (c *Content) RegionInfo(regionID, roleID string) []RegionRoleInfo {
	var rows []RegionRoleInfo
	for _, ri := range c.RoleInfo {
		if ri.RegionID == regionID && ri.RoleID == roleID {
			rows = append(rows, ri)
		}
	}
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j].Priority > rows[j-1].Priority; j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}
	return rows
}

// Validate checks cross-references so broken seed content fails at
// load time rather than mid-round.
func (c *Content) Validate() error {
	regions := make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if r.RegionID == "" {
			return fmt.Errorf("region with empty region_id")
		}
		if regions[r.RegionID] {
			return fmt.Errorf("duplicate region %q", r.RegionID)
		}
		regions[r.RegionID] = true
	}

	issues := make(map[string]bool, len(c.Issues))
	for _, i := range c.Issues {
		if i.IssueID == "" {
			return fmt.Errorf("issue with empty issue_id")
		}
		issues[i.IssueID] = true
	}

	for _, t := range c.Triggers {
		if t.TriggerID == "" {
			return fmt.Errorf("trigger with empty trigger_id")
		}
		if !issues[t.TriggeredIssueID] {
			return fmt.Errorf("trigger %q references unknown issue %q", t.TriggerID, t.TriggeredIssueID)
		}
		if t.RegionalConditions != nil && t.RegionalConditions.RegionID != "" &&
			!regions[t.RegionalConditions.RegionID] {
			return fmt.Errorf("trigger %q references unknown region %q", t.TriggerID, t.RegionalConditions.RegionID)
		}
	}

	for _, a := range c.Actions {
		if a.ActionID == "" {
			return fmt.Errorf("action with empty action_id")
		}
		if !KnownRole(a.RoleID) {
			return fmt.Errorf("action %q references unknown role %q", a.ActionID, a.RoleID)
		}
	}

	for _, n := range c.NPCs {
		if n.CurrentRegionID != "" && !regions[n.CurrentRegionID] {
			return fmt.Errorf("npc %q starts in unknown region %q", n.NPCID, n.CurrentRegionID)
		}
	}

	return nil
}
