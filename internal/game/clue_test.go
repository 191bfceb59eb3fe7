package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicClueValidator(t *testing.T) {
	g := fixedGame(t)
	// APPLE is revealed, so it and its overlaps are allowed again.
	g.board = g.board.withRevealed(0)

	cases := []struct {
		name   string
		text   string
		count  int
		reason string
	}{
		{"valid", "fruit", 2, ""},
		{"zero count", "fruit", 0, ""},
		{"blank", "   ", 1, "clue cannot be empty"},
		{"empty", "", 1, "clue cannot be empty"},
		{"negative count", "fruit", -1, "declared count cannot be negative"},
		{"two words", "two words", 1, "must be a single word with letters only"},
		{"digits", "abc1", 1, "must be a single word with letters only"},
		{"punctuation", "sea-side", 1, "must be a single word with letters only"},
		{"exact match", "banana", 1, "matches an unrevealed board word"},
		{"exact match upper", "BANANA", 1, "matches an unrevealed board word"},
		{"substring", "ban", 1, "substring or superstring of an unrevealed word"},
		{"superstring", "tigers", 1, "substring or superstring of an unrevealed word"},
		{"revealed word", "apple", 1, ""},
		{"revealed superstring", "apples", 1, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := BasicClueValidator{}.Validate(g, tc.text, tc.count)
			if tc.reason == "" {
				assert.NoError(t, err)
				return
			}
			var ce *ClueError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.reason, ce.Reason)
			assert.ErrorIs(t, err, ErrClueValidation)
		})
	}
}

func TestRelaxedClueValidator(t *testing.T) {
	g := fixedGame(t)

	assert.NoError(t, RelaxedClueValidator{}.Validate(g, "ban", 1))
	assert.NoError(t, RelaxedClueValidator{}.Validate(g, "tigers", 1))

	err := RelaxedClueValidator{}.Validate(g, "Tiger", 1)
	assert.ErrorIs(t, err, ErrClueValidation)
	err = RelaxedClueValidator{}.Validate(g, "two words", 1)
	assert.ErrorIs(t, err, ErrClueValidation)
	err = RelaxedClueValidator{}.Validate(g, "fine", -2)
	assert.ErrorIs(t, err, ErrClueValidation)
}

func TestValidatorIsSideEffectFree(t *testing.T) {
	g := fixedGame(t)
	before := g.Snapshot()
	_ = BasicClueValidator{}.Validate(g, "banana", 1)
	_ = BasicClueValidator{}.Validate(g, "fruit", 1)
	assert.Equal(t, before, g.Snapshot())
}

func TestBlankBoardWordsAreExempt(t *testing.T) {
	g := newGame("setup", Red)
	assert.NoError(t, BasicClueValidator{}.Validate(g, "anything", 1))
}

func TestValidatorByName(t *testing.T) {
	v, err := ValidatorByName("basic")
	require.NoError(t, err)
	assert.IsType(t, BasicClueValidator{}, v)

	v, err = ValidatorByName("Relaxed")
	require.NoError(t, err)
	assert.IsType(t, RelaxedClueValidator{}, v)

	v, err = ValidatorByName("")
	require.NoError(t, err)
	assert.IsType(t, BasicClueValidator{}, v)

	_, err = ValidatorByName("strict")
	assert.Error(t, err)
}
