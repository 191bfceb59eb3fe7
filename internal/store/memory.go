// apps/go-server/internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for ephemeral sessions, in development/testing, or when durability is
// not required.
//
// Characteristics:
//   - Holds a snapshot per game, so callers never share a *game.Game with
//     the store or with each other.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Remembers insertion order for All().
//   - State is lost when the process restarts.

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/robalobadob/codenames/apps/go-server/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex             // guards games and order
	games map[string]game.Snapshot // keyed by Game.ID()
	order []string
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.Snapshot)}
}

func (m *memory) Add(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, g.ID())
	}
	m.games[g.ID()] = g.Snapshot()
	m.order = append(m.order, g.ID())
	return nil
}

// Get returns a fresh copy of the stored game.
func (m *memory) Get(_ context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	snap, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return game.Restore(snap)
}

func (m *memory) Update(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID()]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, g.ID())
	}
	m.games[g.ID()] = g.Snapshot()
	return nil
}

func (m *memory) All(_ context.Context) ([]*game.Game, error) {
	m.mu.RLock()
	snaps := make([]game.Snapshot, 0, len(m.order))
	for _, id := range m.order {
		snaps = append(snaps, m.games[id])
	}
	m.mu.RUnlock()

	out := make([]*game.Game, 0, len(snaps))
	for _, s := range snaps {
		g, err := game.Restore(s)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}
