// apps/go-server/internal/httpserver/views.go
//
// Response shapes. The game core exposes its true state; everything a
// non-spymaster must not see is stripped here.
//
// Redaction rules:
//   - State views: words always shown, card types only for revealed cards
//     unless the caller asked for the spymaster view.
//   - Covered board: cards grouped Red, Blue, Neutral, Assassin; words only
//     for revealed cards.

package httpserver

import (
	"time"

	"github.com/robalobadob/codenames/apps/go-server/internal/game"
)

type cardView struct {
	Position int            `json:"position"`
	Word     string         `json:"word"`
	Type     *game.CardType `json:"type"`
	Revealed bool           `json:"revealed"`
}

type clueView struct {
	Text          string    `json:"text"`
	DeclaredCount int       `json:"declaredCount"`
	Team          game.Team `json:"team"`
	Timestamp     time.Time `json:"timestamp"`
}

type createView struct {
	GameID              string     `json:"gameId"`
	StartingTeam        game.Team  `json:"startingTeam"`
	CurrentTeam         game.Team  `json:"currentTeam"`
	Phase               game.Phase `json:"phase"`
	RedAgentsRemaining  int        `json:"redAgentsRemaining"`
	BlueAgentsRemaining int        `json:"blueAgentsRemaining"`
	Board               []cardView `json:"board"`
	Winner              *game.Team `json:"winner"`
}

type stateView struct {
	GameID                string     `json:"gameId"`
	StartingTeam          game.Team  `json:"startingTeam"`
	CurrentTeam           game.Team  `json:"currentTeam"`
	Phase                 game.Phase `json:"phase"`
	RedAgentsRemaining    int        `json:"redAgentsRemaining"`
	BlueAgentsRemaining   int        `json:"blueAgentsRemaining"`
	Winner                *game.Team `json:"winner"`
	Board                 []cardView `json:"board"`
	Clues                 []clueView `json:"clues"`
	CurrentClueGuesses    *int       `json:"currentClueGuesses"`
	CurrentClueMaxGuesses *int       `json:"currentClueMaxGuesses"`
}

type clueResponse struct {
	GameID string     `json:"gameId"`
	Clue   string     `json:"clue"`
	Count  int        `json:"count"`
	Team   game.Team  `json:"team"`
	Phase  game.Phase `json:"phase"`
}

type guessResponse struct {
	GameID              string            `json:"gameId"`
	Position            int               `json:"position"`
	Outcome             game.GuessOutcome `json:"outcome"`
	TurnEnded           bool              `json:"turnEnded"`
	GameEnded           bool              `json:"gameEnded"`
	Winner              *game.Team        `json:"winner"`
	Phase               game.Phase        `json:"phase"`
	Board               []cardView        `json:"board"`
	RedAgentsRemaining  int               `json:"redAgentsRemaining"`
	BlueAgentsRemaining int               `json:"blueAgentsRemaining"`
	CurrentClueGuesses  int               `json:"currentClueGuesses"`
	MaxGuesses          int               `json:"maxGuesses"`
}

type coveredCard struct {
	Position int     `json:"position"`
	Word     *string `json:"word"`
	Revealed bool    `json:"revealed"`
}

type coveredGroup struct {
	Category string        `json:"category"`
	Cards    []coveredCard `json:"cards"`
}

type coveredView struct {
	GameID string         `json:"gameId"`
	Groups []coveredGroup `json:"groups"`
}

func boardView(g *game.Game, spymaster bool) []cardView {
	cards := g.Board().Cards()
	out := make([]cardView, len(cards))
	for i, c := range cards {
		v := cardView{Position: c.Position, Word: c.Word, Revealed: c.Revealed}
		if spymaster || c.Revealed {
			ct := c.Type
			v.Type = &ct
		}
		out[i] = v
	}
	return out
}

func winnerOf(g *game.Game) *game.Team {
	if w, ok := g.Winner(); ok {
		return &w
	}
	return nil
}

func newCreateView(g *game.Game) createView {
	return createView{
		GameID:              g.ID(),
		StartingTeam:        g.StartingTeam(),
		CurrentTeam:         g.CurrentTeam(),
		Phase:               g.Phase(),
		RedAgentsRemaining:  g.RedAgentsRemaining(),
		BlueAgentsRemaining: g.BlueAgentsRemaining(),
		Board:               boardView(g, false),
		Winner:              winnerOf(g),
	}
}

func newStateView(g *game.Game, spymaster bool) stateView {
	v := stateView{
		GameID:              g.ID(),
		StartingTeam:        g.StartingTeam(),
		CurrentTeam:         g.CurrentTeam(),
		Phase:               g.Phase(),
		RedAgentsRemaining:  g.RedAgentsRemaining(),
		BlueAgentsRemaining: g.BlueAgentsRemaining(),
		Winner:              winnerOf(g),
		Board:               boardView(g, spymaster),
		Clues:               []clueView{},
	}
	for _, c := range g.Clues() {
		v.Clues = append(v.Clues, clueView{
			Text:          c.Text,
			DeclaredCount: c.DeclaredCount,
			Team:          c.Team,
			Timestamp:     c.Timestamp,
		})
	}
	if taken, maxGuesses, ok := clueProgress(g); ok {
		v.CurrentClueGuesses = &taken
		v.CurrentClueMaxGuesses = &maxGuesses
	}
	return v
}

// clueProgress reports guesses taken and allowed for the latest clue,
// including a turn that has already been closed.
func clueProgress(g *game.Game) (taken, maxGuesses int, ok bool) {
	maxGuesses, ok = g.CurrentClueMaxGuesses()
	if !ok {
		return 0, 0, false
	}
	if _, inTurn := g.CurrentTurn(); inTurn {
		return g.CurrentClueGuesses(), maxGuesses, true
	}
	history := g.TurnHistory()
	if len(history) == len(g.Clues()) && len(history) > 0 {
		return len(history[len(history)-1].Guesses), maxGuesses, true
	}
	return 0, maxGuesses, true
}

func newGuessResponse(g *game.Game, res game.GuessResult) guessResponse {
	taken, maxGuesses, _ := clueProgress(g)
	out := guessResponse{
		GameID:              g.ID(),
		Position:            res.Position,
		Outcome:             res.Outcome,
		TurnEnded:           res.TurnEnds,
		GameEnded:           res.GameEnded,
		Phase:               g.Phase(),
		Board:               boardView(g, false),
		RedAgentsRemaining:  g.RedAgentsRemaining(),
		BlueAgentsRemaining: g.BlueAgentsRemaining(),
		CurrentClueGuesses:  taken,
		MaxGuesses:          maxGuesses,
	}
	if res.GameEnded {
		w := res.Winner
		out.Winner = &w
	}
	return out
}

var coveredOrder = []struct {
	ct       game.CardType
	category string
}{
	{game.RedAgent, "Red"},
	{game.BlueAgent, "Blue"},
	{game.Neutral, "Neutral"},
	{game.Assassin, "Assassin"},
}

func newCoveredView(g *game.Game) coveredView {
	cards := g.Board().Cards()
	out := coveredView{GameID: g.ID(), Groups: make([]coveredGroup, 0, len(coveredOrder))}
	for _, o := range coveredOrder {
		grp := coveredGroup{Category: o.category, Cards: []coveredCard{}}
		for _, c := range cards {
			if c.Type != o.ct {
				continue
			}
			cc := coveredCard{Position: c.Position, Revealed: c.Revealed}
			if c.Revealed {
				word := c.Word
				cc.Word = &word
			}
			grp.Cards = append(grp.Cards, cc)
		}
		out.Groups = append(out.Groups, grp)
	}
	return out
}
