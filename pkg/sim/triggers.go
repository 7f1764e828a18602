package sim

import (
	"sort"

	"github.com/jwebster45206/kingdom-council/pkg/condition"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// Firing records one trigger firing: which trigger won the scan, the
// issue it raised, and the region that satisfied its regional
// conditions, if any.
type Firing struct {
	TriggerID string `json:"trigger_id"`
	IssueID   string `json:"issue_id"`
	RegionID  string `json:"region_id,omitempty"`
	Round     int    `json:"round"`
}

// armed reports whether a trigger is eligible to fire this round.
// A single-fire trigger that has fired is spent. A trigger that fired
// at round R stays cooling until round R+cooldownRounds.
func (e *Engine) armed(def *kingdom.Trigger, st *TriggerState, round int) bool {
	if !def.IsActive {
		return false
	}
	if !def.CanTriggerMultipleTimes && st.TimesTriggered > 0 {
		return false
	}
	if st.LastTriggeredRound != nil && round < *st.LastTriggeredRound+def.CooldownRounds {
		return false
	}
	return true
}

// matchRegion finds the region satisfying a trigger's regional
// conditions. When the expression pins a region ID only that region is
// checked; otherwise regions are checked in ID order so the scan is
// deterministic. Returns ok=false when no region qualifies.
func (e *Engine) matchRegion(g *Game, expr *condition.RegionalExpr) (string, bool) {
	if expr.RegionID != "" {
		r, ok := g.Regions[expr.RegionID]
		if !ok {
			return "", false
		}
		return expr.RegionID, condition.Evaluate(expr.Conditions, g.RegionSnapshot(r))
	}

	ids := make([]string, 0, len(g.Regions))
	for id := range g.Regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if condition.Evaluate(expr.Conditions, g.RegionSnapshot(g.Regions[id])) {
			return id, true
		}
	}
	return "", false
}

// ScanTriggers evaluates every armed trigger against current state and
// fires at most one. Matches are ordered by priority descending, then
// trigger ID ascending, so the scan is fully determined by state. A
// scan while an issue is already active fires nothing; deferred
// triggers simply compete again on the next scan. Returns nil when
// nothing fired.
func (e *Engine) ScanTriggers(g *Game) (*Firing, error) {
	if g.CurrentIssueID != "" {
		return nil, nil
	}

	type match struct {
		def      *kingdom.Trigger
		regionID string
	}
	var matches []match

	global := g.GlobalSnapshot()
	for i := range e.content.Triggers {
		def := &e.content.Triggers[i]
		st, ok := g.TriggerStates[def.TriggerID]
		if !ok {
			st = &TriggerState{}
			g.TriggerStates[def.TriggerID] = st
		}
		if !e.armed(def, st, g.Round) {
			continue
		}
		if !condition.Evaluate(def.Conditions, global) {
			continue
		}
		regionID := ""
		if def.RegionalConditions != nil {
			var ok bool
			regionID, ok = e.matchRegion(g, def.RegionalConditions)
			if !ok {
				continue
			}
		}
		matches = append(matches, match{def: def, regionID: regionID})
	}

	if len(matches) == 0 {
		return nil, nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].def.Priority != matches[j].def.Priority {
			return matches[i].def.Priority > matches[j].def.Priority
		}
		return matches[i].def.TriggerID < matches[j].def.TriggerID
	})

	winner := matches[0]
	st := g.TriggerStates[winner.def.TriggerID]
	st.TimesTriggered++
	round := g.Round
	st.LastTriggeredRound = &round

	if err := g.ActivateIssue(winner.def.TriggeredIssueID, winner.regionID); err != nil {
		return nil, err
	}

	e.logger.Info("trigger fired",
		"trigger_id", winner.def.TriggerID,
		"issue_id", winner.def.TriggeredIssueID,
		"region_id", winner.regionID,
		"round", g.Round,
		"candidates", len(matches))

	return &Firing{
		TriggerID: winner.def.TriggerID,
		IssueID:   winner.def.TriggeredIssueID,
		RegionID:  winner.regionID,
		Round:     g.Round,
	}, nil
}
