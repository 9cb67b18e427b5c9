package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, target string, limit int, guesses ...string) *Session {
	t.Helper()
	s, err := New(target, limit)
	require.NoError(t, err)
	for _, g := range guesses {
		_, err := s.SubmitGuess(g)
		require.NoError(t, err)
	}
	return s
}

func TestShareText_Won(t *testing.T) {
	s := play(t, "KNOLL", 6, "STARE", "PLANK", "KNOLL")

	text, err := s.ShareText("42")
	require.NoError(t, err)

	want := "Wordle 42 3/6\n\n" +
		"⬜⬜⬜⬜⬜\n" +
		"⬜🟨⬜🟨🟨\n" +
		"🟩🟩🟩🟩🟩"
	assert.Equal(t, want, text)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "🟩🟩🟩🟩🟩", lines[len(lines)-1])
}

func TestShareText_Lost(t *testing.T) {
	s := play(t, "KNOLL", 2, "STARE", "PLANK")

	text, err := s.ShareText("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Wordle X/2\n\n"))
	assert.Equal(t, 4, len(strings.Split(text, "\n")))
}

func TestShareText_InProgress(t *testing.T) {
	s := play(t, "KNOLL", 6, "STARE")
	_, err := s.ShareText("1")
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestKeyboard(t *testing.T) {
	s := play(t, "KNOLL", 6, "PLANK", "KNOLL")
	kb := s.Keyboard()
	// L was present in PLANK and correct in KNOLL; the stronger status wins.

	assert.Equal(t, Correct, kb["K"])
	assert.Equal(t, Correct, kb["L"])
	assert.Equal(t, Absent, kb["P"])
	assert.Equal(t, Absent, kb["A"])
	_, ok := kb["Z"]
	assert.False(t, ok)
}

func TestHints(t *testing.T) {
	supplied := []string{
		"This word refers to a small hill or mound.",
		"The word starts with a consonant and has a double consonant.",
		"It can refer to a grassy mound or a small natural hill.",
	}

	t.Run("no guesses", func(t *testing.T) {
		s := play(t, "KNOLL", 6)
		assert.Equal(t, supplied[:1], s.Hints(supplied))
		assert.True(t, s.Assisted)
	})

	t.Run("letter lines after a guess", func(t *testing.T) {
		s := play(t, "KNOLL", 6, "LOCKS", "KNELT")
		got := s.Hints(supplied)
		assert.Equal(t, []string{
			supplied[0],
			"You've correctly placed: L, K, N",
			"Good letters but wrong position: O",
			supplied[1],
		}, got)
	})

	t.Run("supplied hints unlock by guess count", func(t *testing.T) {
		s := play(t, "KNOLL", 6, "STARE", "BIRDS", "CHUMP")
		got := s.Hints(supplied)
		assert.Equal(t, supplied, got)
	})

	t.Run("nothing supplied", func(t *testing.T) {
		s := play(t, "KNOLL", 6)
		assert.Empty(t, s.Hints(nil))
	})

	t.Run("finished session stays unassisted", func(t *testing.T) {
		s := play(t, "KNOLL", 6, "CRANE", "KNOLL")
		require.Equal(t, StateWon, s.State)
		assert.NotEmpty(t, s.Hints(supplied))
		assert.False(t, s.Assisted)
	})
}
