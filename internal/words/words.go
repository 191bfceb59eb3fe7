// apps/go-server/internal/words/words.go
//
// Word supply for board generation.
//
// Responsibilities:
//   - Define the Provider contract consumed by the board generator.
//   - Load a vocabulary from the embedded default list or from a file (WORDS_FILE).
//   - Normalise words (trim, upper-case) and keep them unique case-insensitively.
//   - Hand out the whole pool shuffled with the caller's rng, so a seeded rng
//     always yields the same order.
//
// Word list files:
//   - One word per line; blank lines and lines starting with '#' are skipped.
//   - Words must be alphabetic; anything else is dropped on load.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/codenames/apps/go-server/assets"
)

// ErrInsufficientWords is returned when the pool cannot cover the requested count.
var ErrInsufficientWords = errors.New("words: insufficient unique words")

// Provider supplies candidate board words.
//
// Words must return at least minimum entries, unique case-insensitively. The
// result must depend only on the sequence of draws taken from rng.
type Provider interface {
	Words(minimum int, rng *rand.Rand) ([]string, error)
}

// List is a fixed in-memory vocabulary.
type List struct {
	words []string
}

var _ Provider = (*List)(nil)

// NewList builds a List from raw entries, dropping blanks and duplicates.
// The first spelling of a duplicated word wins.
func NewList(entries []string) *List {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		w := strings.ToUpper(strings.TrimSpace(e))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return &List{words: out}
}

var (
	defaultOnce sync.Once
	defaultList *List
	defaultErr  error
)

// Default returns the embedded vocabulary. It is loaded once.
func Default() (*List, error) {
	defaultOnce.Do(func() {
		entries, err := assets.WordList()
		if err != nil {
			defaultErr = fmt.Errorf("words: load embedded list: %w", err)
			return
		}
		defaultList = NewList(entries)
	})
	return defaultList, defaultErr
}

// FromFile loads one word per line from path.
func FromFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		entries = append(entries, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return NewList(entries), nil
}

// Load picks the file-backed list when path is set, the embedded one otherwise.
func Load(path string) (*List, error) {
	if path != "" {
		return FromFile(path)
	}
	return Default()
}

// Words returns the full pool shuffled with rng (Fisher-Yates).
func (l *List) Words(minimum int, rng *rand.Rand) ([]string, error) {
	if minimum < 0 {
		return nil, fmt.Errorf("words: negative count %d", minimum)
	}
	if minimum > len(l.words) {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientWords, len(l.words), minimum)
	}

	out := make([]string, len(l.words))
	copy(out, l.words)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Len reports the number of unique words in the pool.
func (l *List) Len() int { return len(l.words) }

// isAlpha reports whether s is all ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
