package game

import (
	"fmt"
	"strings"
)

// Glyph returns the share-grid square for a status.
func Glyph(s LetterStatus) string {
	switch s {
	case Correct:
		return "🟩"
	case Present:
		return "🟨"
	default:
		return "⬜"
	}
}

// Row renders one evaluated guess as a line of squares.
func Row(statuses []LetterStatus) string {
	var b strings.Builder
	for _, s := range statuses {
		b.WriteString(Glyph(s))
	}
	return b.String()
}

// ShareText renders a finished session as a spoiler-free grid:
//
//	Wordle 42 3/6
//
//	⬜🟨⬜⬜⬜
//	...
//
// A lost session shows X instead of the guess count. An empty puzzle label is
// left out of the header.
func (s *Session) ShareText(puzzle string) (string, error) {
	if !s.State.Terminal() {
		return "", ErrGameInProgress
	}
	score := "X"
	if s.State == StateWon {
		score = fmt.Sprint(len(s.History))
	}

	header := []string{"Wordle"}
	if p := strings.TrimSpace(puzzle); p != "" {
		header = append(header, p)
	}
	header = append(header, fmt.Sprintf("%s/%d", score, s.Limit))

	rows := make([]string, 0, len(s.History))
	for _, g := range s.History {
		rows = append(rows, Row(g.Statuses))
	}
	return strings.Join(header, " ") + "\n\n" + strings.Join(rows, "\n"), nil
}
