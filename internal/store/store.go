// apps/go-server/internal/store/store.go
//
// Persistence contract for games.
//
// Implementations:
//   - memory.go: process-local map (default, STORE_DRIVER=memory).
//   - sqlite.go: snapshot rows in SQLite (STORE_DRIVER=sqlite).
//
// Every implementation guarantees read-your-writes for a single id and
// rejects Add for an id it already holds.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/codenames/apps/go-server/internal/game"
)

var (
	ErrNotFound  = errors.New("store: game not found")
	ErrDuplicate = errors.New("store: duplicate game id")
)

// Store defines the persistence interface for games.
type Store interface {
	// Add persists a new game. Returns ErrDuplicate if the id is taken.
	Add(ctx context.Context, g *game.Game) error

	// Get retrieves a game by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update replaces a stored game, or returns ErrNotFound.
	Update(ctx context.Context, g *game.Game) error

	// All returns every game in creation order.
	All(ctx context.Context) ([]*game.Game, error)
}
