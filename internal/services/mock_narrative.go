package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

// MockNarrative is a mock implementation of sim.Narrative for testing
type MockNarrative struct {
	GenerateOutcomeFunc func(ctx context.Context, issue *kingdom.Issue, choice string, snap sim.StateSnapshot) (*sim.Outcome, error)

	// Track calls for testing
	GenerateOutcomeCalls []GenerateOutcomeCall

	mu sync.Mutex // protects all fields above
}

type GenerateOutcomeCall struct {
	IssueID string
	Choice  string
}

// Ensure MockNarrative implements sim.Narrative
var _ sim.Narrative = (*MockNarrative)(nil)

// NewMockNarrative creates a new mock narrative service
func NewMockNarrative() *MockNarrative {
	return &MockNarrative{
		GenerateOutcomeCalls: make([]GenerateOutcomeCall, 0),
	}
}

// GenerateOutcome mocks outcome generation
func (m *MockNarrative) GenerateOutcome(ctx context.Context, issue *kingdom.Issue, choice string, snap sim.StateSnapshot) (*sim.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateOutcomeCalls = append(m.GenerateOutcomeCalls, GenerateOutcomeCall{
		IssueID: issue.IssueID,
		Choice:  choice,
	})

	if m.GenerateOutcomeFunc != nil {
		return m.GenerateOutcomeFunc(ctx, issue, choice, snap)
	}

	// Default behavior - a neutral outcome with no state changes
	return &sim.Outcome{
		Narrative: "The council's decision is carried out without incident.",
	}, nil
}

// CallCount returns the number of GenerateOutcome calls
func (m *MockNarrative) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateOutcomeCalls)
}
