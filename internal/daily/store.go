package daily

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/robalobadob/codenames/apps/go-server/internal/game"
)

// Result is the outcome of one finished daily game.
type Result struct {
	GameID   string    `json:"gameId"`
	Date     string    `json:"date"`
	Winner   game.Team `json:"winner"`
	Assassin bool      `json:"assassin"`
	Turns    int       `json:"turns"`
}

// ResultFor derives the Result of g. ok is false while g is still in play.
func ResultFor(g *game.Game, date string) (r Result, ok bool) {
	winner, done := g.Winner()
	if !done {
		return Result{}, false
	}
	history := g.TurnHistory()
	assassin := false
	if n := len(history); n > 0 {
		if gs := history[n-1].Guesses; len(gs) > 0 {
			assassin = gs[len(gs)-1].Outcome == game.OutcomeAssassin
		}
	}
	return Result{
		GameID:   g.ID(),
		Date:     date,
		Winner:   winner,
		Assassin: assassin,
		Turns:    len(history),
	}, true
}

// Summary aggregates the finished daily games of one date.
type Summary struct {
	Date            string  `json:"date"`
	Games           int     `json:"games"`
	Completed       int     `json:"completed"`
	RedWins         int     `json:"redWins"`
	BlueWins        int     `json:"blueWins"`
	AssassinEndings int     `json:"assassinEndings"`
	AverageTurns    float64 `json:"averageTurns"`
}

// Store is the daily ledger over the daily_games/daily_results tables.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Register marks gameID as the daily game of date.
func (s *Store) Register(ctx context.Context, gameID, date string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_games(game_id, date) VALUES (?, ?)`, gameID, date,
	)
	return err
}

// IsDaily reports whether gameID is a registered daily game and for which date.
func (s *Store) IsDaily(ctx context.Context, gameID string) (string, bool, error) {
	var date string
	err := s.db.QueryRowContext(ctx,
		`SELECT date FROM daily_games WHERE game_id=?`, gameID,
	).Scan(&date)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return date, true, nil
}

// RecordResult stores r. A game's first recorded result wins.
func (s *Store) RecordResult(ctx context.Context, r Result) error {
	if !r.Winner.Valid() {
		return fmt.Errorf("daily: result for %s has no winner", r.GameID)
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results
            (game_id, date, winner, assassin, turns)
        VALUES (?, ?, ?, ?, ?)`,
		r.GameID, r.Date, string(r.Winner), r.Assassin, r.Turns,
	)
	return err
}

// Summary aggregates the daily games of date.
func (s *Store) Summary(ctx context.Context, date string) (Summary, error) {
	out := Summary{Date: date}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_games WHERE date=?`, date,
	).Scan(&out.Games); err != nil {
		return Summary{}, err
	}

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(CASE WHEN winner='Red' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN winner='Blue' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(assassin), 0),
               AVG(turns)
        FROM daily_results
        WHERE date=?`, date,
	).Scan(&out.Completed, &out.RedWins, &out.BlueWins, &out.AssassinEndings, &avg); err != nil {
		return Summary{}, err
	}
	out.AverageTurns = avg.Float64
	return out, nil
}
