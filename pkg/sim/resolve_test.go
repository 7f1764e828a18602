package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

// activateTaxRevolt drives the game into the tax revolt issue.
func activateTaxRevolt(t *testing.T, eng *Engine, g *Game) {
	t.Helper()
	g.Variables["treasury"].CurrentValue = 10
	g.Variables["unrest"].CurrentValue = 60
	g.Regions["western_provinces"].BrigandPresence = 0

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	require.Equal(t, "tax_revolt_issue", firing.IssueID)
}

func TestResolve_HappyPath(t *testing.T) {
	eng, g, mock := testEngine()
	activateTaxRevolt(t, eng, g)

	mock.GenerateOutcomeFunc = func(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error) {
		assert.Equal(t, "tax_revolt_issue", issue.IssueID)
		assert.Equal(t, "lower_taxes", choice)
		assert.Equal(t, 10, snap.Variables["treasury"])
		return &Outcome{
			Narrative:       "The Regent lowers the levy and the mobs disperse.",
			VariableChanges: map[string]int{"treasury": -5, "unrest": -20},
			RegionalChanges: map[string]map[string]int{
				"port_city": {"happiness": 10},
			},
			AttitudeChanges: map[string]int{"populism": 8},
		}, nil
	}

	res, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	require.NoError(t, err)

	assert.Equal(t, 5, g.Variables["treasury"].CurrentValue)
	assert.Equal(t, 40, g.Variables["unrest"].CurrentValue)
	assert.Equal(t, 70, g.Regions["port_city"].Happiness)
	assert.Equal(t, 63, g.Attitudes["populism"].CurrentValue)

	assert.Equal(t, 2, g.Round)
	assert.Empty(t, g.CurrentIssueID)
	assert.Equal(t, kingdom.IssueStatusResolved, g.IssueStates["tax_revolt_issue"])

	require.Len(t, g.History, 1)
	entry := g.History[0]
	assert.Equal(t, "tax_revolt_issue", entry.IssueID)
	assert.Equal(t, kingdom.RoleRegent, entry.PlayerRole)
	assert.Equal(t, "lower_taxes", entry.ResolutionChoice)
	assert.Equal(t, 1, entry.Round)
	assert.Equal(t, -5, entry.StateChanges["treasury"])
	assert.Equal(t, 10, entry.StateChanges["region:port_city:happiness"])
	assert.Equal(t, 8, entry.StateChanges["attitude:populism"])
	assert.Equal(t, entry, res.Entry)

	// The resolution leaves a visible historical event behind.
	require.NotEmpty(t, g.Events)
	last := g.Events[len(g.Events)-1]
	assert.Equal(t, "Tax Revolt", last.Title)
	assert.True(t, last.IsVisible)
}

func TestResolve_AttitudeDriftClampedToVolatility(t *testing.T) {
	eng, g, mock := testEngine()
	activateTaxRevolt(t, eng, g)

	mock.GenerateOutcomeFunc = func(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error) {
		return &Outcome{
			Narrative: "A sweeping reversal of policy.",
			// Volatility 5 caps this to +5; populism's 12 passes -9.
			AttitudeChanges: map[string]int{"fiscal_conservatism": 40, "populism": -9},
		}, nil
	}

	_, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	require.NoError(t, err)
	assert.Equal(t, 80, g.Attitudes["fiscal_conservatism"].CurrentValue)
	assert.Equal(t, 46, g.Attitudes["populism"].CurrentValue)
}

func TestResolve_StaleResolution(t *testing.T) {
	eng, g, mock := testEngine()
	activateTaxRevolt(t, eng, g)

	_, err := eng.Resolve(context.Background(), g, "bandit_uprising", kingdom.RoleRegent, "lower_taxes")
	assert.ErrorIs(t, err, ErrStaleResolution)
	assert.Equal(t, 0, mock.Calls)
	assert.Equal(t, 1, g.Round)
	assert.Empty(t, g.History)
}

func TestResolve_DuplicateSubmission(t *testing.T) {
	eng, g, _ := testEngine()
	activateTaxRevolt(t, eng, g)

	_, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	require.NoError(t, err)

	// The retry arrives after the issue resolved. It must not apply
	// twice.
	_, err = eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	assert.ErrorIs(t, err, ErrStaleResolution)
	assert.Len(t, g.History, 1)
	assert.Equal(t, 2, g.Round)
}

func TestResolve_NoActiveIssue(t *testing.T) {
	eng, g, _ := testEngine()
	g.Regions["western_provinces"].BrigandPresence = 0

	_, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	assert.ErrorIs(t, err, ErrNoActiveIssue)
}

func TestResolve_InvalidChoice(t *testing.T) {
	eng, g, mock := testEngine()
	activateTaxRevolt(t, eng, g)

	_, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "burn_it_down")
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Equal(t, 0, mock.Calls)
}

func TestResolve_NarrativeFailureLeavesStateUntouched(t *testing.T) {
	eng, g, mock := testEngine()
	activateTaxRevolt(t, eng, g)

	mock.GenerateOutcomeFunc = func(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error) {
		return nil, errors.New("upstream timeout")
	}

	_, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	require.ErrorIs(t, err, ErrNarrativeUnavailable)

	// Fully retryable: issue still active, nothing applied.
	assert.Equal(t, "tax_revolt_issue", g.CurrentIssueID)
	assert.Equal(t, 1, g.Round)
	assert.Equal(t, 10, g.Variables["treasury"].CurrentValue)
	assert.Empty(t, g.History)

	// And the retry succeeds.
	mock.GenerateOutcomeFunc = nil
	_, err = eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	assert.NoError(t, err)
	assert.Len(t, g.History, 1)
}

func TestResolve_UnknownNamesSkippedNotFatal(t *testing.T) {
	eng, g, mock := testEngine()
	activateTaxRevolt(t, eng, g)

	mock.GenerateOutcomeFunc = func(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error) {
		return &Outcome{
			Narrative:       "The scribes record a confused decree.",
			VariableChanges: map[string]int{"treasury": 5, "prosperity": 99},
			AttitudeChanges: map[string]int{"wanderlust": 3},
		}, nil
	}

	_, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	require.NoError(t, err)
	assert.Equal(t, 15, g.Variables["treasury"].CurrentValue)
	require.Len(t, g.History, 1)
	assert.NotContains(t, g.History[0].StateChanges, "prosperity")
}

func TestResolve_RescanActivatesNextIssue(t *testing.T) {
	eng, g, mock := testEngine()
	activateTaxRevolt(t, eng, g)

	// The outcome stirs up the western provinces enough to qualify
	// the bandit trigger on the post-resolution scan.
	mock.GenerateOutcomeFunc = func(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error) {
		return &Outcome{
			Narrative: "Troops march west, leaving the roads unguarded.",
			RegionalChanges: map[string]map[string]int{
				"western_provinces": {"brigandPresence": 70},
			},
		}, nil
	}

	res, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "send_troops")
	require.NoError(t, err)
	require.NotNil(t, res.NextIssue)
	assert.Equal(t, "bandit_crisis", res.NextIssue.TriggerID)
	assert.Equal(t, "bandit_uprising", g.CurrentIssueID)
	assert.Equal(t, 2, res.NextIssue.Round)
}

func TestResolve_FreeFormIssueAcceptsAnyChoice(t *testing.T) {
	eng, g, _ := testEngine()

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	require.Equal(t, "bandit_uprising", firing.IssueID)

	_, err = eng.Resolve(context.Background(), g, "bandit_uprising", kingdom.RoleGeneral, "hire mercenaries")
	assert.NoError(t, err)
}

func TestResolve_GameNotActive(t *testing.T) {
	eng, g, _ := testEngine()
	activateTaxRevolt(t, eng, g)
	g.Status = StatusCompleted

	_, err := eng.Resolve(context.Background(), g, "tax_revolt_issue", kingdom.RoleRegent, "lower_taxes")
	assert.ErrorIs(t, err, ErrGameNotActive)
}

func TestAdvanceRound(t *testing.T) {
	eng, g, _ := testEngine()
	g.Regions["western_provinces"].BrigandPresence = 0

	res, err := eng.AdvanceRound(g)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Round)
	assert.Nil(t, res.NextIssue)

	// Conditions ripen; the next advance raises the issue.
	g.Regions["western_provinces"].BrigandPresence = 80
	res, err = eng.AdvanceRound(g)
	require.NoError(t, err)
	require.NotNil(t, res.NextIssue)
	assert.Equal(t, "bandit_crisis", res.NextIssue.TriggerID)
}

func TestRegionView(t *testing.T) {
	eng, g, _ := testEngine()

	view, err := eng.RegionView(g, "port_city", kingdom.RoleTreasurer)
	require.NoError(t, err)
	assert.Equal(t, "port_city", view.Region.RegionID)
	require.Len(t, view.NPCs, 1)
	assert.Equal(t, "general_thorne", view.NPCs[0].NPCID)
	assert.Len(t, view.RoleInfo, 2)

	// Other roles see the same region but none of the treasurer's
	// intelligence.
	view, err = eng.RegionView(g, "port_city", kingdom.RoleGeneral)
	require.NoError(t, err)
	assert.Empty(t, view.RoleInfo)

	_, err = eng.RegionView(g, "atlantis", kingdom.RoleGeneral)
	assert.ErrorIs(t, err, ErrUnknownRegion)
}
