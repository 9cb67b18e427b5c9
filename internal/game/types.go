// internal/game/types.go
//
// Core type definitions for the word game engine.
// Defines:
//   - LetterStatus: per-letter result of a guess (correct/present/absent).
//   - State: lifecycle of a session (in_progress → won | lost).
//   - Guess: one submitted word with its evaluation.
//   - Session: state for a single in-progress or finished game.

package game

// LetterStatus represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the answer at this exact position.
//   - "present": letter is in the answer at another, not yet consumed, position.
//   - "absent":  letter has no unconsumed occurrence left in the answer.
type LetterStatus string

const (
	Correct LetterStatus = "correct"
	Present LetterStatus = "present"
	Absent  LetterStatus = "absent"
)

// rank orders statuses so the keyboard can keep the strongest one per letter.
func (s LetterStatus) rank() int {
	switch s {
	case Correct:
		return 3
	case Present:
		return 2
	case Absent:
		return 1
	}
	return 0
}

// State is the coarse lifecycle of a Session. Won and Lost are terminal.
type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether no further guesses can be accepted.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Guess is a submitted word together with its per-letter evaluation.
type Guess struct {
	Word     string         `json:"word"`
	Statuses []LetterStatus `json:"statuses"`
}

// Session holds the state of a single word game.
type Session struct {
	ID       string  // Unique session identifier (UUID).
	Target   string  // The solution word (always uppercase).
	Limit    int     // Maximum number of guesses allowed (typically 6).
	History  []Guess // Guesses in submission order; append-only.
	State    State   // in_progress, won or lost.
	Assisted bool    // True once hints were requested.
}
