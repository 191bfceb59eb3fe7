// apps/go-server/internal/game/generator.go
//
// Board generation.
//
// Responsibilities:
//   - Draw 25 words from a words.Provider.
//   - Assign 9/8/7/1 card types (starting team gets 9) in a shuffled layout.
//
// A single rng drives both the word draw and the layout shuffle, so a seed
// fully determines the board.

package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/codenames/apps/go-server/internal/words"
)

const (
	startingAgents = 9
	otherAgents    = 8
	neutralCards   = 7
	assassinCards  = 1
)

// pcgStream is the fixed PCG increment; only the seed varies between boards.
const pcgStream = 0x9e3779b97f4a7c15

// BoardGenerator builds boards from a word provider.
type BoardGenerator struct {
	words words.Provider
}

// NewBoardGenerator returns a generator drawing words from p.
func NewBoardGenerator(p words.Provider) (*BoardGenerator, error) {
	if p == nil {
		return nil, errors.New("game: nil word provider")
	}
	return &BoardGenerator{words: p}, nil
}

// Generate returns a new board for startingTeam. A non-nil seed makes the
// result reproducible across calls, generators and processes.
func (bg *BoardGenerator) Generate(startingTeam Team, seed *int64) (GameBoard, error) {
	if !startingTeam.Valid() {
		return GameBoard{}, fmt.Errorf("%w: starting team %q", ErrInvalidTeam, startingTeam)
	}

	rng, err := newRNG(seed)
	if err != nil {
		return GameBoard{}, err
	}

	ws, err := bg.words.Words(BoardSize, rng)
	if err != nil {
		return GameBoard{}, fmt.Errorf("game: draw words: %w", err)
	}
	if len(ws) < BoardSize {
		return GameBoard{}, fmt.Errorf("game: draw words: %w: got %d", words.ErrInsufficientWords, len(ws))
	}

	types, err := distribution(startingTeam)
	if err != nil {
		return GameBoard{}, err
	}
	for i := len(types) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		types[i], types[j] = types[j], types[i]
	}

	cards := make([]GameCard, BoardSize)
	for i := range cards {
		cards[i] = GameCard{Position: i, Word: ws[i], Type: types[i]}
	}
	return NewGameBoard(cards)
}

// distribution lists the card types of a board before shuffling.
func distribution(startingTeam Team) ([]CardType, error) {
	out := make([]CardType, 0, BoardSize)
	out = appendN(out, AgentCard(startingTeam), startingAgents)
	out = appendN(out, AgentCard(startingTeam.Opponent()), otherAgents)
	out = appendN(out, Neutral, neutralCards)
	out = appendN(out, Assassin, assassinCards)
	if len(out) != BoardSize {
		return nil, fmt.Errorf("%w: %d cards for %d positions", ErrDistributionInvariant, len(out), BoardSize)
	}
	return out, nil
}

func appendN(dst []CardType, ct CardType, n int) []CardType {
	for range n {
		dst = append(dst, ct)
	}
	return dst
}

func newRNG(seed *int64) (*rand.Rand, error) {
	var s uint64
	if seed != nil {
		s = uint64(*seed)
	} else {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("game: seed rng: %w", err)
		}
		s = binary.BigEndian.Uint64(b[:])
	}
	return rand.New(rand.NewPCG(s, pcgStream)), nil
}
