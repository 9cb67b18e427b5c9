// internal/daily/daily.go
//
// Date helpers for daily puzzles:
//   - DateKey:      YYYY-MM-DD in UTC, the unit of "one play per day".
//   - PuzzleNumber: 1-based day counter since a configured epoch.
//   - WordIndex:    deterministic HMAC-based pick into a list of n items.
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

// ParseDateKey parses a YYYY-MM-DD key as midnight UTC.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// PuzzleNumber returns the 1-based puzzle number of t's UTC day, counting the
// epoch day as puzzle 1. Days before the epoch return values < 1.
func PuzzleNumber(t, epoch time.Time) int {
	day := truncateDay(t)
	start := truncateDay(epoch)
	return int(day.Sub(start).Hours()/24) + 1
}

// WordIndex returns a deterministic index for a date using HMAC(key, YYYY-MM-DD) % n.
func WordIndex(date time.Time, key []byte, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, key)
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
