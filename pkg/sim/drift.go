package sim

import "sort"

// applyOutcome folds a narrative outcome into game state and returns
// the flattened set of applied changes for the history entry. Global
// deltas are clamped by variable bounds, regional deltas to the
// percent scale, attitude deltas to each attitude's volatility, so at
// most one bounded shift per attitude lands per resolution. Unknown
// names are logged and skipped rather than failing the resolution.
func (e *Engine) applyOutcome(g *Game, out *Outcome) map[string]int {
	changes := make(map[string]int)

	for _, name := range sortedKeys(out.VariableChanges) {
		delta := out.VariableChanges[name]
		v, ok := g.Variables[name]
		if !ok {
			e.logger.Warn("outcome references unknown variable", "variable", name)
			continue
		}
		before := v.CurrentValue
		after := v.Apply(delta)
		changes[name] = after - before
	}

	for _, regionID := range sortedKeys(out.RegionalChanges) {
		r, ok := g.Regions[regionID]
		if !ok {
			e.logger.Warn("outcome references unknown region", "region_id", regionID)
			continue
		}
		vars := out.RegionalChanges[regionID]
		for _, name := range sortedKeys(vars) {
			before, ok := r.Var(name)
			if !ok {
				e.logger.Warn("outcome references unknown regional variable",
					"region_id", regionID, "variable", name)
				continue
			}
			r.Apply(name, vars[name])
			after, _ := r.Var(name)
			changes["region:"+regionID+":"+name] = after - before
		}
	}

	for _, id := range sortedKeys(out.AttitudeChanges) {
		a, ok := g.Attitudes[id]
		if !ok {
			e.logger.Warn("outcome references unknown attitude", "attitude_id", id)
			continue
		}
		applied := a.Drift(out.AttitudeChanges[id])
		if applied != 0 {
			changes["attitude:"+id] = applied
		}
	}

	for _, npcID := range sortedKeys(out.TraitChanges) {
		n, ok := g.NPCs[npcID]
		if !ok {
			e.logger.Warn("outcome references unknown npc", "npc_id", npcID)
			continue
		}
		traits := out.TraitChanges[npcID]
		for _, name := range sortedKeys(traits) {
			before, hasTrait := n.HiddenTrait(name)
			if !hasTrait || !n.DriftTrait(name, traits[name]) {
				e.logger.Warn("outcome references unknown npc trait",
					"npc_id", npcID, "trait", name)
				continue
			}
			after, _ := n.HiddenTrait(name)
			changes["npc:"+npcID+":"+name] = after - before
		}
	}

	return changes
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// describeChanges drops zero deltas so the history only records what
// actually moved.
func describeChanges(changes map[string]int) map[string]int {
	out := make(map[string]int, len(changes))
	for k, v := range changes {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}
