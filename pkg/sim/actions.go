package sim

import (
	"fmt"
	"time"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// ActionResult reports the outcome of an invoked action back to the
// caller. Revealed rows are only populated for reveal_info effects and
// are never persisted on the game document.
type ActionResult struct {
	Record   kingdom.ActionRecord    `json:"record"`
	Revealed []kingdom.RegionRoleInfo `json:"revealed,omitempty"`
	NewValue *int                    `json:"new_value,omitempty"`
}

// InvokeAction validates and executes one player action for one role.
// Validation is all-or-nothing: any error means no state changed and
// no usage was consumed. regionID targets regional effects and scopes
// reveal_info lookups; it may be empty for global effects.
func (e *Engine) InvokeAction(g *Game, actionID, roleID, regionID string) (*ActionResult, error) {
	if g.Status != StatusActive {
		return nil, fmt.Errorf("%w: status %s", ErrGameNotActive, g.Status)
	}
	if !kingdom.KnownRole(roleID) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrPermissionDenied, roleID)
	}

	def, ok := e.content.Action(actionID)
	if !ok || !def.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, actionID)
	}
	if def.RoleID != roleID {
		return nil, fmt.Errorf("%w: %s belongs to %s", ErrPermissionDenied, actionID, def.RoleID)
	}

	usage := g.Usage(roleID, actionID)
	if usage.LastUsedRound != nil && g.Round < *usage.LastUsedRound+def.CooldownRounds {
		ready := *usage.LastUsedRound + def.CooldownRounds
		return nil, fmt.Errorf("%w: %s ready at round %d", ErrOnCooldown, actionID, ready)
	}
	if def.UsesPerGame != nil && usage.Uses >= *def.UsesPerGame {
		return nil, fmt.Errorf("%w: %s limited to %d uses", ErrExhaustedUses, actionID, *def.UsesPerGame)
	}
	if regionID != "" {
		if _, ok := g.Regions[regionID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, regionID)
		}
	}

	result := &ActionResult{}
	var summary string
	switch def.Effect.Type {
	case kingdom.EffectRevealInfo:
		var rows []kingdom.RegionRoleInfo
		if regionID != "" {
			rows = e.content.RegionInfo(regionID, roleID)
		} else {
			for id := range g.Regions {
				rows = append(rows, e.content.RegionInfo(id, roleID)...)
			}
		}
		result.Revealed = rows
		summary = fmt.Sprintf("revealed %d %s report(s)", len(rows), def.Effect.InfoType)

	case kingdom.EffectModifyVariable:
		val, err := g.ApplyGlobal(def.Effect.Variable, def.Effect.Change)
		if err != nil {
			return nil, err
		}
		result.NewValue = &val
		summary = fmt.Sprintf("%s changed by %+d to %d", def.Effect.Variable, def.Effect.Change, val)

	case kingdom.EffectModifyRegionalVariable:
		if regionID == "" {
			return nil, fmt.Errorf("%w: %s", ErrRegionRequired, actionID)
		}
		val, err := g.ApplyRegional(regionID, def.Effect.Variable, def.Effect.Change)
		if err != nil {
			return nil, err
		}
		result.NewValue = &val
		summary = fmt.Sprintf("%s in %s changed by %+d to %d", def.Effect.Variable, regionID, def.Effect.Change, val)

	default:
		return nil, fmt.Errorf("%w: action %s has effect type %q", ErrInvariant, actionID, def.Effect.Type)
	}

	usage.Uses++
	round := g.Round
	usage.LastUsedRound = &round

	result.Record = kingdom.ActionRecord{
		ActionID:  actionID,
		RoleID:    roleID,
		Round:     g.Round,
		Result:    summary,
		RegionID:  regionID,
		CreatedAt: time.Now(),
	}
	g.ActionLog = append(g.ActionLog, result.Record)

	e.logger.Info("action invoked",
		"action_id", actionID,
		"role", roleID,
		"region_id", regionID,
		"round", g.Round,
		"uses", usage.Uses)
	return result, nil
}
