package game

import (
	"fmt"
	"regexp"
	"strings"
)

//go:generate go tool mockgen -destination=mocks/clue_validator_mock.go -package=mocks . ClueValidator

// ClueValidator decides whether a clue may be given on g's board.
// Implementations must not modify g. Rejections are *ClueError.
type ClueValidator interface {
	Validate(g *Game, text string, declaredCount int) error
}

var singleWord = regexp.MustCompile(`^[A-Za-z]+$`)

// BasicClueValidator is the default rule set: a single alphabetic word that
// neither equals nor overlaps any unrevealed board word.
type BasicClueValidator struct{}

func (BasicClueValidator) Validate(g *Game, text string, declaredCount int) error {
	clue, err := checkShape(text, declaredCount)
	if err != nil {
		return err
	}
	for _, w := range unrevealedWords(g) {
		if w == clue {
			return &ClueError{Reason: "matches an unrevealed board word"}
		}
	}
	for _, w := range unrevealedWords(g) {
		if strings.Contains(w, clue) || strings.Contains(clue, w) {
			return &ClueError{Reason: "substring or superstring of an unrevealed word"}
		}
	}
	return nil
}

// RelaxedClueValidator only forbids exact matches with unrevealed words, so
// clues such as STREAM are allowed next to STREAMLINE.
type RelaxedClueValidator struct{}

func (RelaxedClueValidator) Validate(g *Game, text string, declaredCount int) error {
	clue, err := checkShape(text, declaredCount)
	if err != nil {
		return err
	}
	for _, w := range unrevealedWords(g) {
		if w == clue {
			return &ClueError{Reason: "matches an unrevealed board word"}
		}
	}
	return nil
}

// ValidatorByName maps a CLUE_RULES value to a validator.
func ValidatorByName(name string) (ClueValidator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "basic":
		return BasicClueValidator{}, nil
	case "relaxed":
		return RelaxedClueValidator{}, nil
	}
	return nil, fmt.Errorf("game: unknown clue rules %q", name)
}

// checkShape applies the rules shared by every rule set and returns the
// upper-cased clue.
func checkShape(text string, declaredCount int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ClueError{Reason: "clue cannot be empty"}
	}
	if declaredCount < 0 {
		return "", &ClueError{Reason: "declared count cannot be negative"}
	}
	if !singleWord.MatchString(text) {
		return "", &ClueError{Reason: "must be a single word with letters only"}
	}
	return strings.ToUpper(text), nil
}

// unrevealedWords returns the upper-cased words still hidden on g's board.
// Blank words are skipped.
func unrevealedWords(g *Game) []string {
	if g == nil {
		return nil
	}
	out := make([]string, 0, BoardSize)
	for _, c := range g.board.cards {
		if c.Revealed || strings.TrimSpace(c.Word) == "" {
			continue
		}
		out = append(out, strings.ToUpper(c.Word))
	}
	return out
}
