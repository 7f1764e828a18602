package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// ResolveResult bundles everything a resolution produced: the history
// entry, any NPC relocations it provoked, and the trigger firing that
// followed, if the post-resolution scan raised a new issue.
type ResolveResult struct {
	Entry     kingdom.HistoryEntry `json:"entry"`
	Movements []kingdom.Movement   `json:"movements,omitempty"`
	NextIssue *Firing              `json:"next_issue,omitempty"`
}

// Resolve settles the active issue with the given choice. The
// narrative collaborator is consulted first and any failure there
// leaves the game untouched; once an outcome is in hand the pipeline
// applies clamped state changes, archives the issue into history,
// advances the round, relocates distressed NPCs, and re-scans
// triggers. Resolving an issue that is no longer current returns
// ErrStaleResolution so a retried or duplicate request cannot apply
// twice.
func (e *Engine) Resolve(ctx context.Context, g *Game, issueID, roleID, choice string) (*ResolveResult, error) {
	if g.Status != StatusActive {
		return nil, fmt.Errorf("%w: status %s", ErrGameNotActive, g.Status)
	}
	if !kingdom.KnownRole(roleID) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrPermissionDenied, roleID)
	}
	if g.CurrentIssueID == "" {
		return nil, ErrNoActiveIssue
	}
	if issueID != g.CurrentIssueID {
		return nil, fmt.Errorf("%w: %s is not the active issue (%s is)",
			ErrStaleResolution, issueID, g.CurrentIssueID)
	}

	def, ok := e.content.Issue(issueID)
	if !ok {
		return nil, fmt.Errorf("%w: active issue %s has no definition", ErrInvariant, issueID)
	}
	if !def.HasResolution(choice) {
		return nil, fmt.Errorf("%w: %q is not a resolution of %s", ErrInvalidChoice, choice, issueID)
	}

	out, err := e.narrative.GenerateOutcome(ctx, def, choice, g.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNarrativeUnavailable, err)
	}

	changes := describeChanges(e.applyOutcome(g, out))

	entry := kingdom.HistoryEntry{
		IssueID:          issueID,
		PlayerRole:       roleID,
		ResolutionChoice: choice,
		NarrativeOutcome: out.Narrative,
		StateChanges:     changes,
		Round:            g.Round,
		CreatedAt:        time.Now(),
	}
	g.History = append(g.History, entry)

	g.Events = append(g.Events, kingdom.HistoricalEvent{
		EventID:     uuid.NewString(),
		RegionID:    g.CurrentIssueRegionID,
		Title:       def.Title,
		Description: out.Narrative,
		EventType:   def.Type,
		Round:       g.Round,
		Importance:  1,
		IsVisible:   true,
	})

	g.IssueStates[issueID] = kingdom.IssueStatusResolved
	g.CurrentIssueID = ""
	g.CurrentIssueRegionID = ""
	g.Round++

	moves := e.MoveNPCs(g)
	firing, err := e.ScanTriggers(g)
	if err != nil {
		return nil, err
	}

	e.logger.Info("issue resolved",
		"issue_id", issueID,
		"role", roleID,
		"choice", choice,
		"round", g.Round,
		"changes", len(changes),
		"movements", len(moves))

	return &ResolveResult{
		Entry:     entry,
		Movements: moves,
		NextIssue: firing,
	}, nil
}

// AdvanceRound moves the game forward one round without resolving an
// issue: round counter, NPC mobility, then a trigger scan. Used by the
// background worker to keep idle games moving.
func (e *Engine) AdvanceRound(g *Game) (*ResolveResult, error) {
	if g.Status != StatusActive {
		return nil, fmt.Errorf("%w: status %s", ErrGameNotActive, g.Status)
	}

	g.Round++
	moves := e.MoveNPCs(g)
	firing, err := e.ScanTriggers(g)
	if err != nil {
		return nil, err
	}

	e.logger.Info("round advanced",
		"round", g.Round,
		"movements", len(moves),
		"fired", firing != nil)

	return &ResolveResult{Movements: moves, NextIssue: firing}, nil
}

// RegionView assembles the role-scoped view of one region: public
// region state, the NPCs currently there, and the caller's private
// intelligence rows.
func (e *Engine) RegionView(g *Game, regionID, roleID string) (*kingdom.RegionView, error) {
	if !kingdom.KnownRole(roleID) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrPermissionDenied, roleID)
	}
	r, ok := g.Regions[regionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, regionID)
	}

	view := &kingdom.RegionView{
		Region:   *r,
		RoleInfo: e.content.RegionInfo(regionID, roleID),
	}
	for _, id := range sortedKeys(g.NPCs) {
		n := g.NPCs[id]
		if n.CurrentRegionID == regionID && n.IsAlive {
			view.NPCs = append(view.NPCs, n.View())
		}
	}
	return view, nil
}
