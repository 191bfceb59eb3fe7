// apps/go-server/internal/game/game.go
//
// Game aggregate for a single Codenames match.
// Responsibilities:
//   - Hold board, phase, team in turn, remaining agent counters and winner.
//   - Keep the clue history, the turn in progress and the finished turns.
//   - Apply reveals and turn changes; only this package mutates a Game.
//
// Invariants:
//   - phase == PhaseComplete exactly when a winner is set.
//   - current != nil exactly when phase == PhaseAwaitingGuesses.
//
// State transitions:
//   Setup → AwaitingClue → AwaitingGuesses → (AwaitingClue | Complete)
package game

// Game is the aggregate root. Read it through its accessors; mutate it only
// through Service.
type Game struct {
	id            string
	startingTeam  Team
	currentTeam   Team
	phase         Phase
	board         GameBoard
	redRemaining  int
	blueRemaining int
	winner        Team
	clues         []Clue
	current       *CurrentTurn
	turns         []TurnRecord
}

// newGame returns a game in Setup holding the placeholder board.
func newGame(id string, startingTeam Team) *Game {
	return &Game{
		id:           id,
		startingTeam: startingTeam,
		currentTeam:  startingTeam,
		phase:        PhaseSetup,
		board:        EmptyBoard(),
		clues:        []Clue{},
		turns:        []TurnRecord{},
	}
}

// start attaches a generated board and promotes the game to AwaitingClue.
func (g *Game) start(board GameBoard, red, blue int) {
	g.board = board
	g.redRemaining = red
	g.blueRemaining = blue
	g.phase = PhaseAwaitingClue
}

func (g *Game) ID() string { return g.id }
func (g *Game) StartingTeam() Team { return g.startingTeam }
func (g *Game) CurrentTeam() Team { return g.currentTeam }
func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Board() GameBoard { return g.board }
func (g *Game) RedAgentsRemaining() int { return g.redRemaining }
func (g *Game) BlueAgentsRemaining() int { return g.blueRemaining }

// AgentsRemaining returns the unrevealed agent count for team.
func (g *Game) AgentsRemaining(team Team) int {
	switch team {
	case Red:
		return g.redRemaining
	case Blue:
		return g.blueRemaining
	}
	return 0
}

// Winner reports the winning team once the game is complete.
func (g *Game) Winner() (Team, bool) {
	return g.winner, g.winner != NoTeam
}

// Clues returns the clue history, oldest first.
func (g *Game) Clues() []Clue {
	out := make([]Clue, len(g.clues))
	copy(out, g.clues)
	return out
}

// CurrentClue returns the most recently submitted clue.
func (g *Game) CurrentClue() (Clue, bool) {
	if len(g.clues) == 0 {
		return Clue{}, false
	}
	return g.clues[len(g.clues)-1], true
}

// CurrentTurn returns a copy of the turn in progress.
func (g *Game) CurrentTurn() (*CurrentTurn, bool) {
	if g.current == nil {
		return nil, false
	}
	return g.current.clone(), true
}

// TurnHistory returns the finished turns, oldest first.
func (g *Game) TurnHistory() []TurnRecord {
	out := make([]TurnRecord, len(g.turns))
	for i, r := range g.turns {
		r.Guesses = cloneEvents(r.Guesses)
		out[i] = r
	}
	return out
}

// CurrentClueGuesses is the number of guesses taken in the turn in progress.
func (g *Game) CurrentClueGuesses() int {
	if g.current == nil {
		return 0
	}
	return g.current.GuessCount()
}

// CurrentClueMaxGuesses is the guess cap of the most recent clue.
func (g *Game) CurrentClueMaxGuesses() (int, bool) {
	c, ok := g.CurrentClue()
	if !ok {
		return 0, false
	}
	return c.MaxGuesses(), true
}

// addClue appends c to the history and opens a turn for the current team.
func (g *Game) addClue(c Clue) {
	g.clues = append(g.clues, c)
	g.current = &CurrentTurn{Team: g.currentTeam, Clue: c}
	g.phase = PhaseAwaitingGuesses
}

// reveal turns over the card at pos on behalf of team and applies its effect
// on counters, team in turn and phase. Nothing changes when it returns an error.
func (g *Game) reveal(pos int, team Team) (ct CardType, turnEnds, gameEnded bool, winner Team, err error) {
	card, ok := g.board.Card(pos)
	if !ok {
		return "", false, false, NoTeam, &GuessError{Reason: "Position must be between 0 and 24"}
	}
	if card.Revealed {
		return "", false, false, NoTeam, &GuessError{Reason: "Card already revealed"}
	}

	g.board = g.board.withRevealed(pos)

	switch card.Type {
	case RedAgent, BlueAgent:
		owner := card.Type.Team()
		g.decrement(owner)
		if g.AgentsRemaining(owner) == 0 {
			// Last agent of a colour wins for that colour, whoever turned it over.
			g.complete(owner)
			return card.Type, owner != team, true, owner, nil
		}
		if owner != team {
			g.passTurn(owner)
			return card.Type, true, false, NoTeam, nil
		}
		return card.Type, false, false, NoTeam, nil
	case Neutral:
		g.passTurn(team.Opponent())
		return card.Type, true, false, NoTeam, nil
	case Assassin:
		w := team.Opponent()
		g.complete(w)
		return card.Type, true, true, w, nil
	}
	return card.Type, false, false, NoTeam, nil
}

func (g *Game) decrement(team Team) {
	switch team {
	case Red:
		g.redRemaining--
	case Blue:
		g.blueRemaining--
	}
}

// recordGuess appends ev to the turn in progress.
func (g *Game) recordGuess(ev GuessEvent) {
	if g.current != nil {
		g.current.record(ev)
	}
}

// passTurn hands control to next and waits for its clue.
func (g *Game) passTurn(next Team) {
	g.currentTeam = next
	g.phase = PhaseAwaitingClue
}

func (g *Game) complete(winner Team) {
	g.winner = winner
	g.phase = PhaseComplete
}

// finalizeTurn moves the turn in progress into the history.
func (g *Game) finalizeTurn(voluntary bool) {
	if g.current == nil {
		return
	}
	g.turns = append(g.turns, g.current.toRecord(voluntary, g.phase == PhaseComplete, g.winner))
	g.current = nil
}

// lastTurnExhausted reports whether the most recent clue's turn ended with
// every allowed guess used and no newer clue has been given.
func (g *Game) lastTurnExhausted(team Team) bool {
	if g.current != nil || len(g.turns) == 0 || len(g.turns) != len(g.clues) {
		return false
	}
	last := g.turns[len(g.turns)-1]
	if last.EndedVoluntarily || last.GameEnded || last.Team != team {
		return false
	}
	return len(last.Guesses) >= last.Clue.MaxGuesses()
}
