// apps/go-server/internal/game/service.go
//
// Game service: the only sanctioned way to change a Game.
//
// Responsibilities:
//   - Create games from generated boards.
//   - SubmitClue, MakeGuess, EndTurn with guards checked in order:
//     phase → team → clue rules / guess cap → mutation.
//
// Notes:
//   - A rejected call leaves the Game exactly as it was.
//   - No locking here; callers serialise access to one Game (see store.Locks).

package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const guessCapReason = "Maximum guesses for this clue already taken"

var errNilGame = errors.New("game: nil game")

// Service orchestrates game actions.
type Service struct {
	gen          *BoardGenerator
	validator    ClueValidator
	now          func() time.Time
	newID        func() string
	log          zerolog.Logger
	startingTeam Team
}

// Option configures a Service.
type Option func(*Service)

// WithClueValidator replaces the basic clue rules.
func WithClueValidator(v ClueValidator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithClock sets the time source used for clue and guess timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the game id source.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) {
		if f != nil {
			s.newID = f
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithStartingTeam sets the team used when CreateNewGame is given NoTeam.
func WithStartingTeam(t Team) Option {
	return func(s *Service) {
		if t.Valid() {
			s.startingTeam = t
		}
	}
}

// NewService returns a Service generating boards with gen.
func NewService(gen *BoardGenerator, opts ...Option) (*Service, error) {
	if gen == nil {
		return nil, errors.New("game: nil board generator")
	}
	s := &Service{
		gen:          gen,
		validator:    BasicClueValidator{},
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
		log:          zerolog.Nop(),
		startingTeam: Red,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StartingTeam is the team used when CreateNewGame is given NoTeam.
func (s *Service) StartingTeam() Team { return s.startingTeam }

// CreateNewGame generates a board and returns a game awaiting the first clue.
func (s *Service) CreateNewGame(startingTeam Team, seed *int64) (*Game, error) {
	if startingTeam == NoTeam {
		startingTeam = s.startingTeam
	}
	if !startingTeam.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTeam, startingTeam)
	}

	board, err := s.gen.Generate(startingTeam, seed)
	if err != nil {
		return nil, err
	}

	g := newGame(s.newID(), startingTeam)
	g.start(board, board.Count(RedAgent), board.Count(BlueAgent))

	s.log.Debug().
		Str("game_id", g.id).
		Str("phase", g.phase.String()).
		Str("team", string(g.currentTeam)).
		Bool("seeded", seed != nil).
		Msg("game created")
	return g, nil
}

// SubmitClue gives a clue for team and opens its guessing turn.
func (s *Service) SubmitClue(g *Game, team Team, text string, declaredCount int) error {
	if g == nil {
		return errNilGame
	}
	if g.phase != PhaseAwaitingClue {
		return &PhaseError{Action: "SubmitClue", Expected: PhaseAwaitingClue, Actual: g.phase}
	}
	if team != g.currentTeam {
		return &TeamError{Action: "submit clue", Team: team, Current: g.currentTeam}
	}
	if err := s.validator.Validate(g, text, declaredCount); err != nil {
		if errors.Is(err, ErrClueValidation) {
			return err
		}
		return &ClueError{Reason: err.Error()}
	}

	g.addClue(Clue{Text: text, DeclaredCount: declaredCount, Team: team, Timestamp: s.now()})

	s.log.Debug().
		Str("game_id", g.id).
		Str("phase", g.phase.String()).
		Str("team", string(team)).
		Str("clue", text).
		Int("count", declaredCount).
		Msg("clue submitted")
	return nil
}

// MakeGuess reveals the card at position for team.
func (s *Service) MakeGuess(g *Game, team Team, position int) (GuessResult, error) {
	if g == nil {
		return GuessResult{}, errNilGame
	}
	if g.phase != PhaseAwaitingGuesses {
		// A turn closed by the cap reports the cap, not the phase.
		if g.phase == PhaseAwaitingClue && g.lastTurnExhausted(team) {
			return GuessResult{}, &GuessError{Reason: guessCapReason}
		}
		return GuessResult{}, &PhaseError{Action: "MakeGuess", Expected: PhaseAwaitingGuesses, Actual: g.phase}
	}
	if team != g.currentTeam {
		return GuessResult{}, &TeamError{Action: "guess", Team: team, Current: g.currentTeam}
	}
	maxGuesses := g.current.Clue.MaxGuesses()
	if g.current.GuessCount() >= maxGuesses {
		return GuessResult{}, &GuessError{Reason: guessCapReason}
	}

	ct, turnEnds, gameEnded, winner, err := g.reveal(position, team)
	if err != nil {
		return GuessResult{}, err
	}

	outcome := OutcomeFor(ct, team)
	g.recordGuess(GuessEvent{Position: position, Outcome: outcome, CardType: ct, Timestamp: s.now()})

	if !turnEnds && !gameEnded && g.current.GuessCount() >= maxGuesses {
		turnEnds = true
		g.passTurn(team.Opponent())
	}
	if turnEnds || gameEnded {
		g.finalizeTurn(false)
	}

	s.log.Debug().
		Str("game_id", g.id).
		Str("phase", g.phase.String()).
		Str("team", string(team)).
		Int("position", position).
		Str("outcome", string(outcome)).
		Bool("turn_ends", turnEnds).
		Bool("game_ended", gameEnded).
		Msg("guess made")

	return GuessResult{
		Position:     position,
		Outcome:      outcome,
		GuessingTeam: team,
		TurnEnds:     turnEnds,
		GameEnded:    gameEnded,
		Winner:       winner,
	}, nil
}

// EndTurn ends team's guessing turn voluntarily.
func (s *Service) EndTurn(g *Game, team Team) error {
	if g == nil {
		return errNilGame
	}
	if g.phase != PhaseAwaitingGuesses {
		return &PhaseError{Action: "EndTurn", Expected: PhaseAwaitingGuesses, Actual: g.phase}
	}
	if team != g.currentTeam {
		return &TeamError{Action: "end turn", Team: team, Current: g.currentTeam}
	}

	g.passTurn(team.Opponent())
	g.finalizeTurn(true)

	s.log.Debug().
		Str("game_id", g.id).
		Str("phase", g.phase.String()).
		Str("team", string(team)).
		Msg("turn ended")
	return nil
}
