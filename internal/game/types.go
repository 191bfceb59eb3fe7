// apps/go-server/internal/game/types.go
//
// Core type definitions for the Codenames rules engine.
// Defines:
//   - Team, CardType, Phase and GuessOutcome enumerations.
//   - GameCard and GameBoard: the fixed 5x5 grid of words.
//   - Clue, GuessEvent, GuessResult: values recorded while a game is played.

package game

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// BoardRows is the number of card rows on a board.
	BoardRows = 5
	// BoardColumns is the number of card columns on a board.
	BoardColumns = 5
	// BoardSize is the total number of cards on a board.
	BoardSize = BoardRows * BoardColumns
)

// Team is one of the two competing sides.
type Team string

const (
	NoTeam Team = ""
	Red    Team = "Red"
	Blue   Team = "Blue"
)

// ParseTeam accepts "red"/"blue" in any case.
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	}
	return NoTeam, fmt.Errorf("%w: %q", ErrInvalidTeam, s)
}

// UnmarshalText lets JSON bodies and env config use any casing.
func (t *Team) UnmarshalText(b []byte) error {
	parsed, err := ParseTeam(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Valid reports whether t is Red or Blue.
func (t Team) Valid() bool { return t == Red || t == Blue }

// Opponent returns the other team. NoTeam has no opponent.
func (t Team) Opponent() Team {
	switch t {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoTeam
}

// CardType is the hidden identity of a card.
type CardType string

const (
	RedAgent  CardType = "RedAgent"
	BlueAgent CardType = "BlueAgent"
	Neutral   CardType = "Neutral"
	Assassin  CardType = "Assassin"
)

// AgentCard returns the agent card type belonging to team.
func AgentCard(team Team) CardType {
	if team == Blue {
		return BlueAgent
	}
	return RedAgent
}

// Team returns the owning team of an agent card, or NoTeam.
func (c CardType) Team() Team {
	switch c {
	case RedAgent:
		return Red
	case BlueAgent:
		return Blue
	}
	return NoTeam
}

// Phase is the position of a game in its state machine.
type Phase string

const (
	PhaseSetup           Phase = "Setup"
	PhaseAwaitingClue    Phase = "AwaitingClue"
	PhaseAwaitingGuesses Phase = "AwaitingGuesses"
	PhaseComplete        Phase = "Complete"
)

func (p Phase) String() string { return string(p) }

// GuessOutcome classifies a revealed card relative to the guessing team.
type GuessOutcome string

const (
	OutcomeFriendlyAgent   GuessOutcome = "FriendlyAgent"
	OutcomeOpponentAgent   GuessOutcome = "OpponentAgent"
	OutcomeNeutral         GuessOutcome = "Neutral"
	OutcomeAssassin        GuessOutcome = "Assassin"
	OutcomeAlreadyRevealed GuessOutcome = "AlreadyRevealed" // error case only, never recorded
)

// OutcomeFor derives the outcome of revealing a card of type ct by team.
func OutcomeFor(ct CardType, team Team) GuessOutcome {
	switch ct {
	case Assassin:
		return OutcomeAssassin
	case Neutral:
		return OutcomeNeutral
	}
	if ct.Team() == team {
		return OutcomeFriendlyAgent
	}
	return OutcomeOpponentAgent
}

// GameCard is a single card. Values are never modified in place.
type GameCard struct {
	Position int      `json:"position"`
	Word     string   `json:"word"`
	Type     CardType `json:"type"`
	Revealed bool     `json:"revealed"`
}

// Reveal returns a revealed copy of c.
func (c GameCard) Reveal() GameCard {
	c.Revealed = true
	return c
}

// GameBoard is the fixed grid of cards. It is a value: copying a board copies
// every card, so a reveal produces a new board rather than editing a shared one.
type GameBoard struct {
	cards [BoardSize]GameCard
}

// NewGameBoard builds a board from exactly BoardSize cards whose positions
// match their indices.
func NewGameBoard(cards []GameCard) (GameBoard, error) {
	var b GameBoard
	if len(cards) != BoardSize {
		return b, fmt.Errorf("game: board must contain exactly %d cards, got %d", BoardSize, len(cards))
	}
	for i, c := range cards {
		if c.Position != i {
			return b, fmt.Errorf("game: card at index %d has position %d", i, c.Position)
		}
		b.cards[i] = c
	}
	return b, nil
}

// EmptyBoard returns the placeholder board a game holds while in Setup.
func EmptyBoard() GameBoard {
	var b GameBoard
	for i := range b.cards {
		b.cards[i] = GameCard{Position: i, Type: Neutral}
	}
	return b
}

// Card returns the card at position i.
func (b GameBoard) Card(i int) (GameCard, bool) {
	if i < 0 || i >= BoardSize {
		return GameCard{}, false
	}
	return b.cards[i], true
}

// Cards returns a copy of all cards in position order.
func (b GameBoard) Cards() []GameCard {
	out := make([]GameCard, BoardSize)
	copy(out, b.cards[:])
	return out
}

// Count returns how many cards have type ct.
func (b GameBoard) Count(ct CardType) int {
	n := 0
	for _, c := range b.cards {
		if c.Type == ct {
			n++
		}
	}
	return n
}

// withRevealed returns a board identical to b except that card i is revealed.
func (b GameBoard) withRevealed(i int) GameBoard {
	b.cards[i] = b.cards[i].Reveal()
	return b
}

// Clue is a hint given by the team holding the turn.
type Clue struct {
	Text          string    `json:"text"`
	DeclaredCount int       `json:"declaredCount"`
	Team          Team      `json:"team"`
	Timestamp     time.Time `json:"timestamp"`
}

// MaxGuesses is the declared count plus the bonus guess, saturating at
// math.MaxInt.
func (c Clue) MaxGuesses() int {
	if c.DeclaredCount == math.MaxInt {
		return math.MaxInt
	}
	return c.DeclaredCount + 1
}

// GuessEvent records one successful reveal.
type GuessEvent struct {
	Position  int          `json:"position"`
	Outcome   GuessOutcome `json:"outcome"`
	CardType  CardType     `json:"cardType"`
	Timestamp time.Time    `json:"timestamp"`
}

// GuessResult is returned to the caller of Service.MakeGuess.
type GuessResult struct {
	Position     int
	Outcome      GuessOutcome
	GuessingTeam Team
	TurnEnds     bool
	GameEnded    bool
	Winner       Team // NoTeam unless GameEnded
}
