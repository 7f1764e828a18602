package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/kingdom-council/pkg/condition"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// Game statuses.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// TriggerState holds the per-game firing counters for one trigger.
type TriggerState struct {
	TimesTriggered     int  `json:"times_triggered"`
	LastTriggeredRound *int `json:"last_triggered_round,omitempty"`
}

// ActionUsage tracks one role's use of one action within a game.
type ActionUsage struct {
	Uses          int  `json:"uses"`
	LastUsedRound *int `json:"last_used_round,omitempty"`
}

// Game is the full mutable state of one game instance. It is stored
// as a single document and mutated only behind the per-game writer
// lock, so every load observes a consistent snapshot.
type Game struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	Round  int       `json:"round"`

	// CurrentIssueID is the single active issue, empty when the
	// council has nothing before it. CurrentIssueRegionID records
	// the region that qualified a regional trigger, for narrative
	// context.
	CurrentIssueID       string `json:"current_issue_id,omitempty"`
	CurrentIssueRegionID string `json:"current_issue_region_id,omitempty"`

	Variables map[string]*kingdom.Variable `json:"variables"`
	Regions   map[string]*kingdom.Region   `json:"regions"`
	NPCs      map[string]*kingdom.NPC      `json:"npcs"`
	Attitudes map[string]*kingdom.Attitude `json:"attitudes"`

	IssueStates   map[string]string        `json:"issue_states"`
	TriggerStates map[string]*TriggerState `json:"trigger_states"`
	ActionUses    map[string]*ActionUsage  `json:"action_uses"`

	// Append-only logs. The engine only ever appends to these.
	History   []kingdom.HistoryEntry    `json:"history,omitempty"`
	ActionLog []kingdom.ActionRecord    `json:"action_log,omitempty"`
	Movements []kingdom.Movement        `json:"movements,omitempty"`
	Events    []kingdom.HistoricalEvent `json:"events,omitempty"`
	Notes     []kingdom.Note            `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGame instantiates a fresh game from the static content bundle.
// Regions, NPCs, variables and attitudes are deep-copied so the
// bundle can seed many concurrent games.
func NewGame(content *kingdom.Content) *Game {
	g := &Game{
		ID:            uuid.New(),
		Status:        StatusActive,
		Round:         1,
		Variables:     make(map[string]*kingdom.Variable, len(content.Variables)),
		Regions:       make(map[string]*kingdom.Region, len(content.Regions)),
		NPCs:          make(map[string]*kingdom.NPC, len(content.NPCs)),
		Attitudes:     make(map[string]*kingdom.Attitude, len(content.Attitudes)),
		IssueStates:   make(map[string]string, len(content.Issues)),
		TriggerStates: make(map[string]*TriggerState, len(content.Triggers)),
		ActionUses:    make(map[string]*ActionUsage),
		CreatedAt:     time.Now(),
	}

	for _, v := range content.Variables {
		vc := v
		g.Variables[v.VariableID] = &vc
	}
	for _, r := range content.Regions {
		rc := r
		g.Regions[r.RegionID] = &rc
	}
	for _, n := range content.NPCs {
		nc := n
		g.NPCs[n.NPCID] = &nc
	}
	for _, a := range content.Attitudes {
		ac := a
		g.Attitudes[a.AttitudeID] = &ac
	}
	for _, i := range content.Issues {
		g.IssueStates[i.IssueID] = kingdom.IssueStatusPending
	}
	for _, t := range content.Triggers {
		g.TriggerStates[t.TriggerID] = &TriggerState{}
	}

	g.Events = append(g.Events, content.Events...)
	return g
}

// globalSnapshot adapts the game's global variables for condition
// evaluation.
type globalSnapshot struct{ g *Game }

func (s globalSnapshot) Value(name string) (int, bool) {
	v, ok := s.g.Variables[name]
	if !ok {
		return 0, false
	}
	return v.CurrentValue, true
}

// regionSnapshot adapts one region's variables for condition
// evaluation.
type regionSnapshot struct{ r *kingdom.Region }

func (s regionSnapshot) Value(name string) (int, bool) {
	return s.r.Var(name)
}

// GlobalSnapshot returns a condition snapshot over global variables.
func (g *Game) GlobalSnapshot() condition.Snapshot {
	return globalSnapshot{g}
}

// RegionSnapshot returns a condition snapshot over one region.
func (g *Game) RegionSnapshot(r *kingdom.Region) condition.Snapshot {
	return regionSnapshot{r}
}

// ApplyGlobal adds a clamped delta to a named global variable.
func (g *Game) ApplyGlobal(name string, delta int) (int, error) {
	v, ok := g.Variables[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	return v.Apply(delta), nil
}

// ApplyRegional adds a clamped delta to a named regional variable.
func (g *Game) ApplyRegional(regionID, name string, delta int) (int, error) {
	r, ok := g.Regions[regionID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownRegion, regionID)
	}
	if !r.Apply(name, delta) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
	}
	val, _ := r.Var(name)
	return val, nil
}

// ActivateIssue marks an issue active and records it as the current
// issue. Activating while another issue is active is an invariant
// violation: the scheduler must never double-book the council.
func (g *Game) ActivateIssue(issueID, regionID string) error {
	if g.CurrentIssueID != "" {
		return fmt.Errorf("%w: issue %s already active", ErrInvariant, g.CurrentIssueID)
	}
	g.CurrentIssueID = issueID
	g.CurrentIssueRegionID = regionID
	g.IssueStates[issueID] = kingdom.IssueStatusActive
	return nil
}

// usageKey scopes action usage counters to one role.
func usageKey(roleID, actionID string) string {
	return roleID + ":" + actionID
}

// Usage returns the usage record for a role/action pair, creating it
// on first use.
func (g *Game) Usage(roleID, actionID string) *ActionUsage {
	key := usageKey(roleID, actionID)
	u, ok := g.ActionUses[key]
	if !ok {
		u = &ActionUsage{}
		g.ActionUses[key] = u
	}
	return u
}

// StateSnapshot is the serializable view of game state handed to the
// narrative collaborator.
type StateSnapshot struct {
	Round     int                       `json:"round"`
	Variables map[string]int            `json:"variables"`
	Regions   map[string]map[string]int `json:"regions"`
}

// Snapshot builds a StateSnapshot from the current game state.
func (g *Game) Snapshot() StateSnapshot {
	snap := StateSnapshot{
		Round:     g.Round,
		Variables: make(map[string]int, len(g.Variables)),
		Regions:   make(map[string]map[string]int, len(g.Regions)),
	}
	for id, v := range g.Variables {
		snap.Variables[id] = v.CurrentValue
	}
	for id, r := range g.Regions {
		snap.Regions[id] = map[string]int{
			kingdom.RegionVarHappiness:       r.Happiness,
			kingdom.RegionVarUnrest:          r.Unrest,
			kingdom.RegionVarEconomicLevel:   r.EconomicLevel,
			kingdom.RegionVarChurchPower:     r.ChurchPower,
			kingdom.RegionVarMilitaryPower:   r.MilitaryPower,
			kingdom.RegionVarBrigandPresence: r.BrigandPresence,
		}
	}
	return snap
}
