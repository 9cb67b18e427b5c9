// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply utility functions like RandomAnswer, IsAllowed, IsAnswer, and Stats.
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 uppercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Initialization behavior (Init):
//  1. If both paths are set, load answers from the first and allowed guesses from the second.
//  2. If only the allowed path is set, use that file for both answers and allowed guesses.
//  3. Otherwise fall back to the embedded lists in the assets package.
//
// Constraints:
//   • Words must be 5 alphabetic letters (A–Z).
//   • Lists are normalized to uppercase.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/friendle/assets"
)

// Length is the only word length the lists accept.
const Length = 5

// ErrEmptyAnswers is returned when no usable answer survives loading.
var ErrEmptyAnswers = errors.New("words: answers list is empty")

var (
	initOnce   sync.Once
	answers    []string            // canonical answers
	allowedSet map[string]struct{} // answers ∪ guesses
	answersSet map[string]struct{} // answers only
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if the answers list ends up empty.
func Init(answersPath, allowedPath string) error {
	initOnce.Do(func() {
		ansList, allowList, err := load(answersPath, allowedPath)
		if err != nil {
			initialErr = err
			return
		}

		answers = ansList
		answersSet = toSet(ansList)

		// Ensure all answers are also marked as allowed
		allowedSet = toSet(ansList)
		for _, w := range allowList {
			allowedSet[w] = struct{}{}
		}
	})
	return initialErr
}

// load resolves the answers and allowed lists according to the Init rules.
func load(answersPath, allowedPath string) (ansList, allowList []string, err error) {
	switch {
	// Case 1: both lists provided
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, nil, err
		}

	// Case 2: only allowed file provided → use for both
	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, nil, err
		}
		ansList = normalize(raw)
		raw, err = assets.AllowedList()
		if err != nil {
			return nil, nil, err
		}
		allowList = normalize(raw)
	}

	if len(ansList) == 0 {
		return nil, nil, ErrEmptyAnswers
	}
	return ansList, allowList, nil
}

// readWordFile loads one word per line from a file,
// keeping only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return normalize(lines), nil
}

// normalize upper-cases and trims each line and drops anything that is not a
// 5-letter alphabetic word.
func normalize(lines []string) []string {
	var out []string
	for _, line := range lines {
		w := strings.ToUpper(strings.TrimSpace(line))
		if len(w) == Length && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Answers returns the canonical answer list. Callers must not modify it.
func Answers() []string { return answers }

// RandomAnswer returns a cryptographically random answer from the answers list.
// If answers are not loaded yet or empty, falls back to "CRANE".
func RandomAnswer() string {
	if len(answers) == 0 {
		return "CRANE"
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(answers))))
	if err != nil {
		return answers[0]
	}
	return answers[nBig.Int64()]
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func IsAllowed(w string) bool {
	_, ok := allowedSet[strings.ToUpper(strings.TrimSpace(w))]
	return ok
}

// IsAnswer reports whether w is an answer word.
func IsAnswer(w string) bool {
	_, ok := answersSet[strings.ToUpper(strings.TrimSpace(w))]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func Stats() (answersCount int, allowedCount int) {
	return len(answers), len(allowedSet)
}
