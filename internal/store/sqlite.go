// apps/go-server/internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
//
// Each game is one row in `games` holding its JSON snapshot, plus the phase
// and winner columns for ad-hoc queries. Rows come back in rowid order,
// which is creation order.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/robalobadob/codenames/apps/go-server/internal/game"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store over db. The schema must already be
// migrated (OpenDB does this).
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db}
}

func (s *sqliteStore) Add(ctx context.Context, g *game.Game) error {
	raw, err := json.Marshal(g.Snapshot())
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", g.ID(), err)
	}
	winner, _ := g.Winner()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games(id, snapshot, phase, winner) VALUES (?, ?, ?, ?)`,
		g.ID(), string(raw), string(g.Phase()), string(winner),
	)
	if isPrimaryKeyViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, g.ID())
	}
	if err != nil {
		return fmt.Errorf("store: insert %s: %w", g.ID(), err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*game.Game, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM games WHERE id=?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: select %s: %w", id, err)
	}
	return decode(raw)
}

func (s *sqliteStore) Update(ctx context.Context, g *game.Game) error {
	raw, err := json.Marshal(g.Snapshot())
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", g.ID(), err)
	}
	winner, _ := g.Winner()
	res, err := s.db.ExecContext(ctx, `
        UPDATE games
        SET snapshot=?, phase=?, winner=?, updated_at=CURRENT_TIMESTAMP
        WHERE id=?`,
		string(raw), string(g.Phase()), string(winner), g.ID(),
	)
	if err != nil {
		return fmt.Errorf("store: update %s: %w", g.ID(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, g.ID())
	}
	return nil
}

func (s *sqliteStore) All(ctx context.Context) ([]*game.Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT snapshot FROM games ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*game.Game
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		g, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func decode(raw string) (*game.Game, error) {
	var snap game.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrCorruptSnapshot, err)
	}
	return game.Restore(snap)
}

func isPrimaryKeyViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
