package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPhase   = errors.New("invalid phase")
	ErrTeamMismatch   = errors.New("team mismatch")
	ErrClueValidation = errors.New("invalid clue")
	ErrInvalidGuess   = errors.New("invalid guess")
	ErrInvalidTeam    = errors.New("invalid team")

	// ErrDistributionInvariant means the card distribution constants do not
	// fill a board. It indicates a programming error, not bad input.
	ErrDistributionInvariant = errors.New("card distribution does not match board size")

	ErrCorruptSnapshot = errors.New("corrupt game snapshot")
)

// PhaseError is returned when an action is attempted outside its phase.
type PhaseError struct {
	Action   string
	Expected Phase
	Actual   Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("action %q invalid in phase %s, expected phase %s", e.Action, e.Actual, e.Expected)
}

func (e *PhaseError) Unwrap() error { return ErrInvalidPhase }

// TeamError is returned when a team acts out of turn.
type TeamError struct {
	Action  string
	Team    Team
	Current Team
}

func (e *TeamError) Error() string {
	return fmt.Sprintf("team %s cannot %s; current team is %s", e.Team, e.Action, e.Current)
}

func (e *TeamError) Unwrap() error { return ErrTeamMismatch }

// ClueError carries the reason a clue was rejected.
type ClueError struct {
	Reason string
}

func (e *ClueError) Error() string { return "invalid clue: " + e.Reason }

func (e *ClueError) Unwrap() error { return ErrClueValidation }

// GuessError carries the reason a guess was rejected.
type GuessError struct {
	Reason string
}

func (e *GuessError) Error() string { return "invalid guess: " + e.Reason }

func (e *GuessError) Unwrap() error { return ErrInvalidGuess }
