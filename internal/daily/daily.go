// apps/go-server/internal/daily/daily.go
//
// Daily challenge: every daily game on a given UTC date is dealt the same
// board, derived from HMAC(salt, YYYY-MM-DD).

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDateKey validates a YYYY-MM-DD key.
func ParseDateKey(s string) (string, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", err
	}
	return DateKey(t), nil
}

// Seed returns the board seed for the date of t.
func Seed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes of the MAC
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
