package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jwebster45206/kingdom-council/pkg/condition"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

func TestScanTriggers_RegionalMatch(t *testing.T) {
	eng, g, _ := testEngine()

	// Western provinces start with brigandPresence 70 and
	// militaryPower 30, so the bandit trigger matches there.
	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	assert.Equal(t, "bandit_crisis", firing.TriggerID)
	assert.Equal(t, "bandit_uprising", firing.IssueID)
	assert.Equal(t, "western_provinces", firing.RegionID)

	assert.Equal(t, "bandit_uprising", g.CurrentIssueID)
	assert.Equal(t, "western_provinces", g.CurrentIssueRegionID)
	assert.Equal(t, kingdom.IssueStatusActive, g.IssueStates["bandit_uprising"])

	st := g.TriggerStates["bandit_crisis"]
	assert.Equal(t, 1, st.TimesTriggered)
	require.NotNil(t, st.LastTriggeredRound)
	assert.Equal(t, 1, *st.LastTriggeredRound)
}

func TestScanTriggers_NoMatch(t *testing.T) {
	eng, g, _ := testEngine()
	g.Regions["western_provinces"].BrigandPresence = 10

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	assert.Nil(t, firing)
	assert.Empty(t, g.CurrentIssueID)
	assert.Equal(t, 0, g.TriggerStates["bandit_crisis"].TimesTriggered)
}

func TestScanTriggers_OneIssueAtATime(t *testing.T) {
	eng, g, _ := testEngine()

	// Make both triggers eligible. Tax revolt has higher priority.
	g.Variables["treasury"].CurrentValue = 10
	g.Variables["unrest"].CurrentValue = 60

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	assert.Equal(t, "tax_revolt", firing.TriggerID)

	// The bandit trigger still matches but the council slot is
	// occupied; a second scan fires nothing and consumes nothing.
	firing, err = eng.ScanTriggers(g)
	require.NoError(t, err)
	assert.Nil(t, firing)
	assert.Equal(t, 0, g.TriggerStates["bandit_crisis"].TimesTriggered)
}

func TestScanTriggers_PriorityThenIDOrdering(t *testing.T) {
	content := testContent()
	// Two triggers at equal priority; the lower trigger ID wins.
	content.Triggers = []kingdom.Trigger{
		{
			TriggerID:        "beta_event",
			TriggeredIssueID: "tax_revolt_issue",
			Conditions:       condition.Expr{"unrest": {Operator: condition.OpGreater, Value: 0}},
			Priority:         10,
			IsActive:         true,
		},
		{
			TriggerID:        "alpha_event",
			TriggeredIssueID: "bandit_uprising",
			Conditions:       condition.Expr{"unrest": {Operator: condition.OpGreater, Value: 0}},
			Priority:         10,
			IsActive:         true,
		},
	}
	eng := NewEngine(content, &mockNarrative{}, testLogger())
	g := NewGame(content)

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	assert.Equal(t, "alpha_event", firing.TriggerID)
}

func TestScanTriggers_Cooldown(t *testing.T) {
	eng, g, _ := testEngine()

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	require.Equal(t, "bandit_crisis", firing.TriggerID)

	// Resolve the slot by hand and keep the conditions true. With a
	// 5 round cooldown from round 1, the trigger is armed again at
	// round 6 and not before.
	g.CurrentIssueID = ""
	g.CurrentIssueRegionID = ""

	for round := 2; round <= 5; round++ {
		g.Round = round
		firing, err = eng.ScanTriggers(g)
		require.NoError(t, err)
		assert.Nilf(t, firing, "round %d still cooling", round)
	}

	g.Round = 6
	firing, err = eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	assert.Equal(t, "bandit_crisis", firing.TriggerID)
	assert.Equal(t, 2, g.TriggerStates["bandit_crisis"].TimesTriggered)
}

func TestScanTriggers_SingleFireSpent(t *testing.T) {
	eng, g, _ := testEngine()
	g.Variables["treasury"].CurrentValue = 10
	g.Variables["unrest"].CurrentValue = 60
	g.Regions["western_provinces"].BrigandPresence = 0 // keep bandits quiet

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	require.Equal(t, "tax_revolt", firing.TriggerID)

	// Well past the cooldown, conditions still true: a single fire
	// trigger never rearms.
	g.CurrentIssueID = ""
	g.Round = 50
	firing, err = eng.ScanTriggers(g)
	require.NoError(t, err)
	assert.Nil(t, firing)
	assert.Equal(t, 1, g.TriggerStates["tax_revolt"].TimesTriggered)
}

func TestScanTriggers_PinnedRegion(t *testing.T) {
	content := testContent()
	content.Triggers = append(content.Triggers, kingdom.Trigger{
		TriggerID:        "port_unrest",
		TriggeredIssueID: "tax_revolt_issue",
		RegionalConditions: &condition.RegionalExpr{
			RegionID:   "port_city",
			Conditions: condition.Expr{"unrest": {Operator: condition.OpGreater, Value: 50}},
		},
		Priority: 99,
		IsActive: true,
	})
	eng := NewEngine(content, &mockNarrative{}, testLogger())
	g := NewGame(content)

	// Unrest is high in the west, but the trigger only watches the
	// port. The bandit trigger wins instead.
	g.Regions["western_provinces"].Unrest = 90
	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	require.NotNil(t, firing)
	assert.Equal(t, "bandit_crisis", firing.TriggerID)
}

func TestScanTriggers_UnknownVariableFailsClosed(t *testing.T) {
	content := testContent()
	content.Triggers = []kingdom.Trigger{{
		TriggerID:        "ghost_event",
		TriggeredIssueID: "tax_revolt_issue",
		Conditions:       condition.Expr{"prosperity": {Operator: condition.OpGreater, Value: 0}},
		Priority:         1,
		IsActive:         true,
	}}
	eng := NewEngine(content, &mockNarrative{}, testLogger())
	g := NewGame(content)

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	assert.Nil(t, firing)
}

func TestScanTriggers_InactiveDefinition(t *testing.T) {
	content := testContent()
	for i := range content.Triggers {
		content.Triggers[i].IsActive = false
	}
	eng := NewEngine(content, &mockNarrative{}, testLogger())
	g := NewGame(content)

	firing, err := eng.ScanTriggers(g)
	require.NoError(t, err)
	assert.Nil(t, firing)
}
