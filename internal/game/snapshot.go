package game

import "fmt"

// Snapshot is the serialisable form of a Game, used by persistent stores.
type Snapshot struct {
	ID                  string        `json:"id"`
	StartingTeam        Team          `json:"startingTeam"`
	CurrentTeam         Team          `json:"currentTeam"`
	Phase               Phase         `json:"phase"`
	Cards               []GameCard    `json:"cards"`
	RedAgentsRemaining  int           `json:"redAgentsRemaining"`
	BlueAgentsRemaining int           `json:"blueAgentsRemaining"`
	Winner              Team          `json:"winner,omitempty"`
	Clues               []Clue        `json:"clueHistory"`
	CurrentTurn         *TurnSnapshot `json:"currentTurn,omitempty"`
	Turns               []TurnRecord  `json:"turnHistory"`
}

// TurnSnapshot is the serialisable form of a CurrentTurn.
type TurnSnapshot struct {
	Team    Team         `json:"team"`
	Clue    Clue         `json:"clue"`
	Guesses []GuessEvent `json:"guesses"`
}

// Snapshot captures g. The result shares no memory with g.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:                  g.id,
		StartingTeam:        g.startingTeam,
		CurrentTeam:         g.currentTeam,
		Phase:               g.phase,
		Cards:               g.board.Cards(),
		RedAgentsRemaining:  g.redRemaining,
		BlueAgentsRemaining: g.blueRemaining,
		Winner:              g.winner,
		Clues:               g.Clues(),
		Turns:               g.TurnHistory(),
	}
	if g.current != nil {
		s.CurrentTurn = &TurnSnapshot{
			Team:    g.current.Team,
			Clue:    g.current.Clue,
			Guesses: g.current.Guesses(),
		}
	}
	return s
}

// Restore rebuilds a Game from s, rejecting snapshots that break the
// aggregate's invariants.
func Restore(s Snapshot) (*Game, error) {
	if s.ID == "" {
		return nil, corrupt("missing id")
	}
	if !s.StartingTeam.Valid() || !s.CurrentTeam.Valid() {
		return nil, corrupt("invalid team")
	}
	switch s.Phase {
	case PhaseAwaitingClue, PhaseAwaitingGuesses, PhaseComplete:
	default:
		return nil, corrupt("phase %q", s.Phase)
	}

	board, err := NewGameBoard(s.Cards)
	if err != nil {
		return nil, corrupt("%v", err)
	}
	red, blue := 0, 0
	for _, c := range s.Cards {
		switch c.Type {
		case RedAgent:
			if !c.Revealed {
				red++
			}
		case BlueAgent:
			if !c.Revealed {
				blue++
			}
		case Neutral, Assassin:
		default:
			return nil, corrupt("card %d has type %q", c.Position, c.Type)
		}
	}
	if red != s.RedAgentsRemaining || blue != s.BlueAgentsRemaining {
		return nil, corrupt("agent counters %d/%d do not match board %d/%d",
			s.RedAgentsRemaining, s.BlueAgentsRemaining, red, blue)
	}

	if (s.Phase == PhaseComplete) != s.Winner.Valid() {
		return nil, corrupt("winner %q in phase %s", s.Winner, s.Phase)
	}
	if (s.Phase == PhaseAwaitingGuesses) != (s.CurrentTurn != nil) {
		return nil, corrupt("current turn presence does not match phase %s", s.Phase)
	}
	inProgress := 0
	if t := s.CurrentTurn; t != nil {
		inProgress = 1
		if t.Team != s.CurrentTeam {
			return nil, corrupt("current turn team %s, current team %s", t.Team, s.CurrentTeam)
		}
		if len(t.Guesses) >= t.Clue.MaxGuesses() {
			return nil, corrupt("%d guesses in a turn capped at %d", len(t.Guesses), t.Clue.MaxGuesses())
		}
	}
	if len(s.Turns)+inProgress != len(s.Clues) {
		return nil, corrupt("%d turns for %d clues", len(s.Turns)+inProgress, len(s.Clues))
	}

	g := newGame(s.ID, s.StartingTeam)
	g.currentTeam = s.CurrentTeam
	g.phase = s.Phase
	g.board = board
	g.redRemaining = red
	g.blueRemaining = blue
	g.winner = s.Winner
	g.clues = append(g.clues, s.Clues...)
	for _, r := range s.Turns {
		r.Guesses = cloneEvents(r.Guesses)
		g.turns = append(g.turns, r)
	}
	if s.CurrentTurn != nil {
		g.current = &CurrentTurn{
			Team:    s.CurrentTurn.Team,
			Clue:    s.CurrentTurn.Clue,
			guesses: cloneEvents(s.CurrentTurn.Guesses),
		}
	}
	return g, nil
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorruptSnapshot}, args...)...)
}
