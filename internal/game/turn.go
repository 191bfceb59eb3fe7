package game

// CurrentTurn accumulates the guesses made under the clue in play.
// A Game owns at most one, from clue submission until the turn ends.
type CurrentTurn struct {
	Team    Team
	Clue    Clue
	guesses []GuessEvent
}

// Guesses returns a copy of the guesses made so far, oldest first.
func (t *CurrentTurn) Guesses() []GuessEvent {
	return cloneEvents(t.guesses)
}

// GuessCount is the number of successful reveals this turn.
func (t *CurrentTurn) GuessCount() int { return len(t.guesses) }

func (t *CurrentTurn) record(ev GuessEvent) {
	t.guesses = append(t.guesses, ev)
}

func (t *CurrentTurn) clone() *CurrentTurn {
	return &CurrentTurn{Team: t.Team, Clue: t.Clue, guesses: cloneEvents(t.guesses)}
}

func (t *CurrentTurn) toRecord(voluntary, gameEnded bool, winner Team) TurnRecord {
	return TurnRecord{
		Team:             t.Team,
		Clue:             t.Clue,
		Guesses:          cloneEvents(t.guesses),
		EndedVoluntarily: voluntary,
		GameEnded:        gameEnded,
		Winner:           winner,
	}
}

// TurnRecord is the finished form of a CurrentTurn.
type TurnRecord struct {
	Team             Team         `json:"team"`
	Clue             Clue         `json:"clue"`
	Guesses          []GuessEvent `json:"guesses"`
	EndedVoluntarily bool         `json:"turnEndedVoluntarily"`
	GameEnded        bool         `json:"gameEnded"`
	Winner           Team         `json:"winner,omitempty"`
}

func cloneEvents(in []GuessEvent) []GuessEvent {
	out := make([]GuessEvent, len(in))
	copy(out, in)
	return out
}
