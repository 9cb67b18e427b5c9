// internal/game/engine.go
//
// Core game engine for a single word game session.
// Responsibilities:
//   - Create new sessions with a fixed target and guess limit (default 6).
//   - Score guesses using the two-pass, consume-on-match algorithm.
//   - Apply guesses and track state transitions: in_progress → won/lost.
//
// The engine does not consult any dictionary; callers that want
// "not in word list" behavior check the words package before submitting.
package game

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DefaultLimit  = 6
	DefaultLength = 5
)

var (
	// ErrInvalidGuessLength is returned when a guess is empty or its length differs from the target.
	ErrInvalidGuessLength = errors.New("invalid guess length")
	// ErrInvalidGuess is returned when a guess of the right length contains non-letters.
	ErrInvalidGuess = errors.New("guess must contain only letters")
	// ErrGameAlreadyOver is returned for any guess submitted after the session left in_progress.
	ErrGameAlreadyOver = errors.New("game already over")
	// ErrGameInProgress is returned when a finished session is required.
	ErrGameInProgress = errors.New("game still in progress")
	// ErrInvalidTarget is returned by New for an empty or non-alphabetic target.
	ErrInvalidTarget = errors.New("invalid target word")
)

// New constructs a session for target. A limit <= 0 selects DefaultLimit.
func New(target string, limit int) (*Session, error) {
	target = Normalize(target)
	if target == "" || !isLetters(target) {
		return nil, ErrInvalidTarget
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Session{
		ID:      uuid.NewString(),
		Target:  target,
		Limit:   limit,
		History: []Guess{},
		State:   StateInProgress,
	}, nil
}

// Normalize trims surrounding whitespace and upper-cases w.
func Normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// Evaluate classifies every letter of guess against target.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count the target letters that were not matched exactly.
//
// Pass 2:
//   - For each remaining guess letter: if an unconsumed count is left for that
//     letter, mark Present and consume it; otherwise mark Absent.
//
// Repeated letters are therefore credited at most as often as they remain in
// the target. Evaluate is pure.
func Evaluate(guess, target string) ([]LetterStatus, error) {
	g := []rune(Normalize(guess))
	t := []rune(Normalize(target))
	if len(g) == 0 || len(g) != len(t) {
		return nil, ErrInvalidGuessLength
	}
	if !isLetters(string(g)) {
		return nil, ErrInvalidGuess
	}

	res := make([]LetterStatus, len(g))
	remaining := make(map[rune]int, len(t))

	for i := range g {
		if g[i] == t[i] {
			res[i] = Correct
		} else {
			remaining[t[i]]++
		}
	}

	for i := range g {
		if res[i] == Correct {
			continue
		}
		if remaining[g[i]] > 0 {
			res[i] = Present
			remaining[g[i]]--
		} else {
			res[i] = Absent
		}
	}
	return res, nil
}

// SubmitGuess validates, scores and appends guess, then advances State.
// On error the session is left untouched.
//
// State transitions:
//   - exact match             → won (regardless of guesses left)
//   - history reaches Limit    → lost
//   - otherwise                → stays in_progress
func (s *Session) SubmitGuess(guess string) ([]LetterStatus, error) {
	if s.State.Terminal() {
		return nil, ErrGameAlreadyOver
	}
	guess = Normalize(guess)
	if utf8.RuneCountInString(guess) != utf8.RuneCountInString(s.Target) {
		return nil, ErrInvalidGuessLength
	}
	statuses, err := Evaluate(guess, s.Target)
	if err != nil {
		return nil, err
	}

	s.History = append(s.History, Guess{Word: guess, Statuses: statuses})
	switch {
	case guess == s.Target:
		s.State = StateWon
	case len(s.History) >= s.Limit:
		s.State = StateLost
	}
	return statuses, nil
}

// Remaining reports how many guesses are still available.
func (s *Session) Remaining() int {
	if s.State.Terminal() {
		return 0
	}
	return s.Limit - len(s.History)
}

// isLetters reports whether every rune of w is a letter.
func isLetters(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
