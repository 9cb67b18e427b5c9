package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	C = Correct
	P = Present
	A = Absent
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   []LetterStatus
	}{
		{"exact match", "KNOLL", "KNOLL", []LetterStatus{C, C, C, C, C}},
		{"no shared letters", "BIRDS", "KNOLL", []LetterStatus{A, A, A, A, A}},
		{"present and absent", "STARE", "KNOLL", []LetterStatus{A, A, A, A, A}},
		{"mixed", "PLANK", "KNOLL", []LetterStatus{A, P, A, P, P}},
		{"surplus letter only credited once", "SPOON", "STOCK", []LetterStatus{C, A, C, A, A}},
		// SPEED has two E's; ERASE has two E's, neither in a correct slot.
		{"duplicate letters both credited", "ERASE", "SPEED", []LetterStatus{P, A, A, P, P}},
		{"duplicate suppression after correct", "AABBB", "ABCDE", []LetterStatus{C, A, P, A, A}},
		{"lower case input", "knoll", "KNOLL", []LetterStatus{C, C, C, C, C}},
		{"correct consumes before present", "LLAMA", "KNOLL", []LetterStatus{P, P, A, A, A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.guess, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_DuplicateCountNeverExceedsTarget(t *testing.T) {
	got, err := Evaluate("EERIE", "SPEED")
	require.NoError(t, err)

	credited := 0
	for i, r := range "EERIE" {
		if r == 'E' && got[i] != Absent {
			credited++
		}
	}
	assert.Equal(t, 2, credited)
}

func TestEvaluate_NonLetters(t *testing.T) {
	tests := []struct {
		name, guess string
	}{
		{"digit", "KN0LL"},
		{"all digits", "12345"},
		{"inner space", "K LLL"},
		{"punctuation", "KNOL!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses, err := Evaluate(tt.guess, "KNOLL")
			assert.ErrorIs(t, err, ErrInvalidGuess)
			assert.Nil(t, statuses)
		})
	}
}

func TestEvaluate_InvalidLength(t *testing.T) {
	tests := []struct {
		name, guess, target string
	}{
		{"too short", "KNOL", "KNOLL"},
		{"too long", "KNOLLS", "KNOLL"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.guess, tt.target)
			assert.ErrorIs(t, err, ErrInvalidGuessLength)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	first, err := Evaluate("ERASE", "SPEED")
	require.NoError(t, err)
	second, err := Evaluate("ERASE", "SPEED")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNew(t *testing.T) {
	s, err := New(" knoll ", 0)
	require.NoError(t, err)
	assert.Equal(t, "KNOLL", s.Target)
	assert.Equal(t, DefaultLimit, s.Limit)
	assert.Equal(t, StateInProgress, s.State)
	assert.NotEmpty(t, s.ID)
	assert.Empty(t, s.History)

	_, err = New("", 6)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = New("AB1DE", 6)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestSubmitGuess_KnollScenario(t *testing.T) {
	s, err := New("KNOLL", 6)
	require.NoError(t, err)

	for _, g := range []string{"STARE", "PLANK"} {
		_, err := s.SubmitGuess(g)
		require.NoError(t, err)
		assert.Equal(t, StateInProgress, s.State)
	}

	statuses, err := s.SubmitGuess("KNOLL")
	require.NoError(t, err)
	assert.Equal(t, []LetterStatus{C, C, C, C, C}, statuses)
	assert.Equal(t, StateWon, s.State)
	assert.Len(t, s.History, 3)
	assert.Equal(t, 0, s.Remaining())
}

func TestSubmitGuess_LostExactlyAtLimit(t *testing.T) {
	s, err := New("KNOLL", 6)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := s.SubmitGuess("STARE")
		require.NoError(t, err)
		assert.Equal(t, StateInProgress, s.State, "guess %d", i+1)
		assert.Equal(t, 6-(i+1), s.Remaining())
	}
	_, err = s.SubmitGuess("PLANK")
	require.NoError(t, err)
	assert.Equal(t, StateLost, s.State)
	assert.Len(t, s.History, 6)
}

func TestSubmitGuess_WinOnLastGuess(t *testing.T) {
	s, err := New("KNOLL", 2)
	require.NoError(t, err)

	_, err = s.SubmitGuess("STARE")
	require.NoError(t, err)
	_, err = s.SubmitGuess("KNOLL")
	require.NoError(t, err)
	assert.Equal(t, StateWon, s.State)
}

func TestSubmitGuess_RejectsAfterTerminal(t *testing.T) {
	won, _ := New("KNOLL", 6)
	_, err := won.SubmitGuess("KNOLL")
	require.NoError(t, err)

	lost, _ := New("KNOLL", 1)
	_, err = lost.SubmitGuess("STARE")
	require.NoError(t, err)

	for name, s := range map[string]*Session{"won": won, "lost": lost} {
		t.Run(name, func(t *testing.T) {
			before := len(s.History)
			state := s.State
			_, err := s.SubmitGuess("PLANK")
			assert.ErrorIs(t, err, ErrGameAlreadyOver)
			assert.Len(t, s.History, before)
			assert.Equal(t, state, s.State)

			// Terminal check wins over length validation.
			_, err = s.SubmitGuess("X")
			assert.ErrorIs(t, err, ErrGameAlreadyOver)
		})
	}
}

func TestSubmitGuess_InvalidLengthLeavesSessionUntouched(t *testing.T) {
	s, err := New("KNOLL", 6)
	require.NoError(t, err)

	_, err = s.SubmitGuess("KNOLLS")
	assert.ErrorIs(t, err, ErrInvalidGuessLength)
	_, err = s.SubmitGuess("   ")
	assert.ErrorIs(t, err, ErrInvalidGuessLength)
	_, err = s.SubmitGuess("KN0LL")
	assert.ErrorIs(t, err, ErrInvalidGuess)
	_, err = s.SubmitGuess("K LLL")
	assert.ErrorIs(t, err, ErrInvalidGuess)

	assert.Empty(t, s.History)
	assert.Equal(t, StateInProgress, s.State)
	assert.Equal(t, 6, s.Remaining())
}
