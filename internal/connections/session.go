package connections

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/robalobadob/friendle/internal/game"
)

const DefaultMaxMistakes = 4

var (
	ErrSelectionSize  = errors.New("select exactly four different words")
	ErrUnknownWord    = errors.New("word is not on the board")
	ErrDuplicateGuess = errors.New("already guessed")
)

// Result describes the outcome of one submitted selection.
type Result struct {
	Correct bool   `json:"correct"`
	OneAway bool   `json:"oneAway"`
	Group   *Group `json:"group,omitempty"`
}

// Session is one play-through of a puzzle.
type Session struct {
	ID          string
	Puzzle      Puzzle
	MaxMistakes int
	Mistakes    int
	Solved      []int     // group indexes in the order they were found
	Attempts    [][]Color // per attempt, the true color of each selected word
	State       game.State

	guessed map[string]bool
}

// NewSession starts p. A maxMistakes <= 0 selects DefaultMaxMistakes.
func NewSession(p Puzzle, maxMistakes int) *Session {
	if maxMistakes <= 0 {
		maxMistakes = DefaultMaxMistakes
	}
	return &Session{
		ID:          uuid.NewString(),
		Puzzle:      p,
		MaxMistakes: maxMistakes,
		State:       game.StateInProgress,
		guessed:     map[string]bool{},
	}
}

// Submit checks a selection of four words against the unsolved groups.
//
// Invalid selections (wrong size, unknown or solved words, repeats of an
// earlier attempt) return an error and cost nothing. A wrong selection costs
// one mistake and reports OneAway when three of its words share a group.
func (s *Session) Submit(words []string) (Result, error) {
	if s.State.Terminal() {
		return Result{}, game.ErrGameAlreadyOver
	}
	if len(words) != GroupSize {
		return Result{}, ErrSelectionSize
	}

	sel := make([]string, 0, len(words))
	uniq := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if uniq[w] {
			continue
		}
		uniq[w] = true
		sel = append(sel, w)
	}
	if len(sel) != GroupSize {
		return Result{}, ErrSelectionSize
	}

	owner := s.unsolvedOwners()
	for _, w := range sel {
		if _, ok := owner[w]; !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownWord, w)
		}
	}
	key := selectionKey(sel)
	if s.guessed[key] {
		return Result{}, ErrDuplicateGuess
	}
	s.guessed[key] = true

	counts := make(map[int]int, GroupCount)
	attempt := make([]Color, 0, GroupSize)
	for _, w := range sel {
		gi := owner[w]
		counts[gi]++
		attempt = append(attempt, s.Puzzle.Groups[gi].Color)
	}
	s.Attempts = append(s.Attempts, attempt)

	for gi, n := range counts {
		if n == GroupSize {
			s.Solved = append(s.Solved, gi)
			if len(s.Solved) == len(s.Puzzle.Groups) {
				s.State = game.StateWon
			}
			g := s.Puzzle.Groups[gi]
			return Result{Correct: true, Group: &g}, nil
		}
	}

	s.Mistakes++
	if s.Mistakes >= s.MaxMistakes {
		s.State = game.StateLost
	}
	oneAway := false
	for _, n := range counts {
		if n == GroupSize-1 {
			oneAway = true
		}
	}
	return Result{OneAway: oneAway}, nil
}

// Remaining lists the unsolved words in catalog order.
func (s *Session) Remaining() []string {
	var out []string
	for _, g := range s.Unsolved() {
		out = append(out, g.Words...)
	}
	return out
}

// SolvedGroups returns the found groups in the order they were found.
func (s *Session) SolvedGroups() []Group {
	out := make([]Group, 0, len(s.Solved))
	for _, gi := range s.Solved {
		out = append(out, s.Puzzle.Groups[gi])
	}
	return out
}

// Unsolved returns the groups not found yet, in catalog order.
func (s *Session) Unsolved() []Group {
	done := make(map[int]bool, len(s.Solved))
	for _, gi := range s.Solved {
		done[gi] = true
	}
	var out []Group
	for gi, g := range s.Puzzle.Groups {
		if !done[gi] {
			out = append(out, g)
		}
	}
	return out
}

// ShareText renders a finished session:
//
//	Connections
//	Puzzle #42 • 1 mistake
//
//	🟨🟨🟨🟨
//	🟩🟦🟩🟩
//	...
func (s *Session) ShareText(puzzle string) (string, error) {
	if !s.State.Terminal() {
		return "", game.ErrGameInProgress
	}
	plural := "s"
	if s.Mistakes == 1 {
		plural = ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Connections\nPuzzle #%s • %d mistake%s\n", puzzle, s.Mistakes, plural)
	for _, a := range s.Attempts {
		b.WriteString("\n")
		for _, c := range a {
			b.WriteString(c.Glyph())
		}
	}
	return b.String(), nil
}

func (s *Session) unsolvedOwners() map[string]int {
	done := make(map[int]bool, len(s.Solved))
	for _, gi := range s.Solved {
		done[gi] = true
	}
	owner := make(map[string]int, GroupCount*GroupSize)
	for gi, g := range s.Puzzle.Groups {
		if done[gi] {
			continue
		}
		for _, w := range g.Words {
			owner[w] = gi
		}
	}
	return owner
}

func selectionKey(sel []string) string {
	sorted := append([]string(nil), sel...)
	sort.Strings(sorted)
	return strings.Join(sorted, "|")
}
