package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/kingdom-council/pkg/kingdom"
	"github.com/jwebster45206/kingdom-council/pkg/sim"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	games     map[uuid.UUID]*sim.Game
	content   *kingdom.Content
	pingError error

	SaveGameError    error
	LoadGameError    error
	LoadContentError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		games: make(map[uuid.UUID]*sim.Game),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveGame mocks saving a game
func (m *MockStorage) SaveGame(ctx context.Context, id uuid.UUID, g *sim.Game) error {
	if m.SaveGameError != nil {
		return m.SaveGameError
	}
	if g == nil {
		return errors.New("game cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = g
	return nil
}

// LoadGame mocks loading a game
func (m *MockStorage) LoadGame(ctx context.Context, id uuid.UUID) (*sim.Game, error) {
	if m.LoadGameError != nil {
		return nil, m.LoadGameError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, exists := m.games[id]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return g, nil
}

// DeleteGame mocks deleting a game
func (m *MockStorage) DeleteGame(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// LoadContent mocks loading the seed bundle
func (m *MockStorage) LoadContent(ctx context.Context) (*kingdom.Content, error) {
	if m.LoadContentError != nil {
		return nil, m.LoadContentError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.content == nil {
		return nil, errors.New("no content configured")
	}
	return m.content, nil
}

// SetContent configures the bundle returned by LoadContent (for testing)
func (m *MockStorage) SetContent(c *kingdom.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = c
}
