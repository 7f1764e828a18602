package sim

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/jwebster45206/kingdom-council/pkg/condition"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
)

func intPtr(n int) *int { return &n }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockNarrative implements Narrative for tests. Set GenerateOutcomeFunc
// to control behavior; the default returns an empty outcome.
type mockNarrative struct {
	mu                  sync.Mutex
	GenerateOutcomeFunc func(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error)
	Calls               int
}

func (m *mockNarrative) GenerateOutcome(ctx context.Context, issue *kingdom.Issue, choice string, snap StateSnapshot) (*Outcome, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.GenerateOutcomeFunc != nil {
		return m.GenerateOutcomeFunc(ctx, issue, choice, snap)
	}
	return &Outcome{Narrative: "The council's decision echoes through the halls."}, nil
}

// testContent builds a small bundle with two triggers, three actions
// and two issues. Initial state fires neither trigger globally, but
// the western provinces already satisfy the bandit conditions.
func testContent() *kingdom.Content {
	return &kingdom.Content{
		Variables: []kingdom.Variable{
			{VariableID: "treasury", Name: "Treasury", CurrentValue: 50, MinValue: intPtr(0), MaxValue: intPtr(100)},
			{VariableID: "unrest", Name: "Unrest", CurrentValue: 30, MinValue: intPtr(0), MaxValue: intPtr(100)},
		},
		Regions: []kingdom.Region{
			{
				RegionID: "port_city", Name: "Port City",
				Happiness: 60, Unrest: 20, EconomicLevel: 80,
				ChurchPower: 30, MilitaryPower: 50, BrigandPresence: 10,
			},
			{
				RegionID: "western_provinces", Name: "Western Provinces",
				Happiness: 40, Unrest: 50, EconomicLevel: 40,
				ChurchPower: 40, MilitaryPower: 30, BrigandPresence: 70,
			},
		},
		NPCs: []kingdom.NPC{
			{
				NPCID: "duke_alaric", Name: "Duke Alaric",
				CurrentRegionID: "western_provinces",
				Loyalty:         60, Influence: 70, Wealth: 80,
				Militaristic: 30, Religious: 40, Diplomatic: 70,
				IsAlive: true, CanMove: true,
			},
			{
				NPCID: "general_thorne", Name: "General Thorne",
				CurrentRegionID: "port_city",
				Loyalty:         80, Influence: 60, Wealth: 40,
				Militaristic: 90, Religious: 20, Diplomatic: 30,
				IsAlive: true, CanMove: true,
			},
		},
		Attitudes: []kingdom.Attitude{
			{AttitudeID: "populism", Name: "Populism", CurrentValue: 55, Volatility: 12},
			{AttitudeID: "fiscal_conservatism", Name: "Fiscal Conservatism", CurrentValue: 75, Volatility: 5},
		},
		Triggers: []kingdom.Trigger{
			{
				TriggerID:        "tax_revolt",
				Name:             "Tax Revolt",
				TriggeredIssueID: "tax_revolt_issue",
				Conditions: condition.Expr{
					"treasury": {Operator: condition.OpLess, Value: 20},
					"unrest":   {Operator: condition.OpGreater, Value: 50},
				},
				Priority:       15,
				CooldownRounds: 10,
				IsActive:       true,
			},
			{
				TriggerID:        "bandit_crisis",
				Name:             "Bandit Crisis",
				TriggeredIssueID: "bandit_uprising",
				RegionalConditions: &condition.RegionalExpr{
					Conditions: condition.Expr{
						"brigandPresence": {Operator: condition.OpGreater, Value: 60},
						"militaryPower":   {Operator: condition.OpLess, Value: 40},
					},
				},
				Priority:                10,
				CanTriggerMultipleTimes: true,
				CooldownRounds:          5,
				IsActive:                true,
			},
		},
		Actions: []kingdom.PlayerAction{
			{
				ActionID: "audit_treasury", RoleID: kingdom.RoleTreasurer,
				Name:   "Audit the Treasury",
				Effect: kingdom.Effect{Type: kingdom.EffectRevealInfo, InfoType: "hidden_expenses"},
				CooldownRounds: 3, UsesPerGame: intPtr(3), IsActive: true,
			},
			{
				ActionID: "deploy_troops", RoleID: kingdom.RoleGeneral,
				Name:   "Deploy Troops",
				Effect: kingdom.Effect{Type: kingdom.EffectModifyRegionalVariable, Variable: "militaryPower", Change: 15},
				CooldownRounds: 2, IsActive: true,
			},
			{
				ActionID: "levy_taxes", RoleID: kingdom.RoleTreasurer,
				Name:   "Levy Taxes",
				Effect: kingdom.Effect{Type: kingdom.EffectModifyVariable, Variable: "treasury", Change: 10},
				CooldownRounds: 1, IsActive: true,
			},
		},
		Issues: []kingdom.Issue{
			{
				IssueID: "tax_revolt_issue", Title: "Tax Revolt", Type: "crisis",
				Resolutions: []kingdom.Resolution{
					{ChoiceID: "lower_taxes", Label: "Lower taxes"},
					{ChoiceID: "send_troops", Label: "Send troops"},
				},
			},
			{IssueID: "bandit_uprising", Title: "Bandit Uprising", Type: "crisis"},
		},
		RoleInfo: []kingdom.RegionRoleInfo{
			{RegionID: "port_city", RoleID: kingdom.RoleTreasurer, Title: "Harbor Ledgers", Information: "Tariff receipts run light.", Priority: 2},
			{RegionID: "port_city", RoleID: kingdom.RoleTreasurer, Title: "Smuggling", Information: "Night shipments avoid the customs house.", Priority: 5},
			{RegionID: "western_provinces", RoleID: kingdom.RoleSpymaster, Title: "Brigand Camps", Information: "Three camps in the hills.", Priority: 4},
		},
	}
}

func testEngine() (*Engine, *Game, *mockNarrative) {
	content := testContent()
	mock := &mockNarrative{}
	eng := NewEngine(content, mock, testLogger())
	return eng, NewGame(content), mock
}
