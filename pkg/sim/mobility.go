package sim

import (
	"fmt"
	"sort"
	"time"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// Trait thresholds for mobility. An NPC only considers leaving when a
// strongly held trait is aggravated by its current region.
const (
	traitCareThreshold = 65

	distressBrigands = 60 // brigandPresence above this alarms the militaristic
	distressChurch   = 30 // churchPower below this alarms the devout
	distressUnrest   = 60 // unrest above this alarms diplomats
	distressEconomy  = 35 // economicLevel below this alarms the wealthy
)

// regionScore rates how attractive a region is to one NPC. Each trait
// the NPC holds above the midpoint weighs the matching regional
// variables; the result is comparable across regions for the same NPC
// only.
func regionScore(n *kingdom.NPC, r *kingdom.Region) int {
	score := 0
	if w := n.Militaristic - 50; w > 0 {
		score += w * (r.MilitaryPower - r.BrigandPresence)
	}
	if w := n.Religious - 50; w > 0 {
		score += w * r.ChurchPower
	}
	if w := n.Diplomatic - 50; w > 0 {
		score += w * (r.Happiness - r.Unrest)
	}
	if w := n.Wealth - 50; w > 0 {
		score += w * r.EconomicLevel
	}
	return score
}

// distress names the condition driving an NPC out of its current
// region, or "" when the NPC is content where it is.
func distress(n *kingdom.NPC, r *kingdom.Region) string {
	if n.Militaristic >= traitCareThreshold && r.BrigandPresence > distressBrigands {
		return "rising brigand activity"
	}
	if n.Religious >= traitCareThreshold && r.ChurchPower < distressChurch {
		return "waning church influence"
	}
	if n.Diplomatic >= traitCareThreshold && r.Unrest > distressUnrest {
		return "mounting unrest"
	}
	if n.Wealth >= traitCareThreshold && r.EconomicLevel < distressEconomy {
		return "a faltering economy"
	}
	return ""
}

// MoveNPCs relocates distressed NPCs, at most one move per NPC. An NPC
// moves only to a region scoring strictly better than where it stands;
// ties keep it in place. NPCs are processed in ID order so the pass is
// deterministic, and every move is recorded with its reason.
func (e *Engine) MoveNPCs(g *Game) []kingdom.Movement {
	ids := make([]string, 0, len(g.NPCs))
	for id := range g.NPCs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	regionIDs := make([]string, 0, len(g.Regions))
	for id := range g.Regions {
		regionIDs = append(regionIDs, id)
	}
	sort.Strings(regionIDs)

	var moves []kingdom.Movement
	for _, id := range ids {
		n := g.NPCs[id]
		if !n.IsAlive || !n.CanMove || n.CurrentRegionID == "" {
			continue
		}
		home, ok := g.Regions[n.CurrentRegionID]
		if !ok {
			continue
		}
		cause := distress(n, home)
		if cause == "" {
			continue
		}

		best := home
		bestScore := regionScore(n, home)
		for _, rid := range regionIDs {
			if rid == n.CurrentRegionID {
				continue
			}
			r := g.Regions[rid]
			if s := regionScore(n, r); s > bestScore {
				best, bestScore = r, s
			}
		}
		if best == home {
			continue
		}

		move := kingdom.Movement{
			NPCID:        n.NPCID,
			FromRegionID: home.RegionID,
			ToRegionID:   best.RegionID,
			Reason: fmt.Sprintf("%s left %s for %s amid %s",
				n.DisplayName(), home.DisplayName(), best.DisplayName(), cause),
			Round:     g.Round,
			CreatedAt: time.Now(),
		}
		n.CurrentRegionID = best.RegionID
		g.Movements = append(g.Movements, move)
		moves = append(moves, move)

		e.logger.Info("npc moved",
			"npc_id", n.NPCID,
			"from", move.FromRegionID,
			"to", move.ToRegionID,
			"round", g.Round,
			"cause", cause)
	}
	return moves
}
