package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/codenames/apps/go-server/internal/words"
)

var fixedWords = [BoardSize]string{
	"APPLE", "BANANA", "CHERRY", "DRAGON", "EAGLE", "FALCON", "GIANT", "HARBOR", "ISLAND",
	"JUNGLE", "KNIGHT", "LASER", "MAGNET", "NEEDLE", "OCEAN", "PIRATE",
	"QUARTZ", "ROCKET", "SHADOW", "TIGER", "UMBRELLA", "VIOLIN", "WIZARD",
	"YACHT",
	"ZEBRA",
}

// fixedBoard lays out Red agents at 0-8, Blue at 9-16, Neutral at 17-23 and
// the Assassin at 24.
func fixedBoard(t *testing.T) GameBoard {
	t.Helper()
	cards := make([]GameCard, BoardSize)
	for i := range cards {
		ct := Neutral
		switch {
		case i < 9:
			ct = RedAgent
		case i < 17:
			ct = BlueAgent
		case i == 24:
			ct = Assassin
		}
		cards[i] = GameCard{Position: i, Word: fixedWords[i], Type: ct}
	}
	b, err := NewGameBoard(cards)
	require.NoError(t, err)
	return b
}

// fixedGame returns a Red-first game awaiting a clue on fixedBoard.
func fixedGame(t *testing.T) *Game {
	t.Helper()
	b := fixedBoard(t)
	g := newGame("fixed", Red)
	g.start(b, b.Count(RedAgent), b.Count(BlueAgent))
	return g
}

var testEpoch = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	list, err := words.Default()
	require.NoError(t, err)
	gen, err := NewBoardGenerator(list)
	require.NoError(t, err)
	opts = append([]Option{WithClock(func() time.Time { return testEpoch })}, opts...)
	svc, err := NewService(gen, opts...)
	require.NoError(t, err)
	return svc
}

func seed(v int64) *int64 { return &v }

// firstUnrevealed returns the lowest unrevealed position holding ct.
func firstUnrevealed(t *testing.T, b GameBoard, ct CardType) int {
	t.Helper()
	for _, c := range b.Cards() {
		if c.Type == ct && !c.Revealed {
			return c.Position
		}
	}
	t.Fatalf("no unrevealed %s card", ct)
	return -1
}
