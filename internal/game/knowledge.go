package game

import "strings"

// Keyboard returns the strongest status observed for every guessed letter.
// Correct beats Present beats Absent.
func (s *Session) Keyboard() map[string]LetterStatus {
	out := make(map[string]LetterStatus)
	for _, g := range s.History {
		for i, r := range []rune(g.Word) {
			k := string(r)
			if g.Statuses[i].rank() > out[k].rank() {
				out[k] = g.Statuses[i]
			}
		}
	}
	return out
}

// Hints builds the hint list shown to a player and marks the session as
// assisted. supplied[0] is always shown; supplied[k] (k >= 1) unlocks after
// k+1 guesses. Once a guess exists, lines listing placed and misplaced letters
// follow the first hint.
func (s *Session) Hints(supplied []string) []string {
	if !s.State.Terminal() {
		s.Assisted = true
	}

	var out []string
	if len(supplied) > 0 {
		out = append(out, supplied[0])
	}
	if len(s.History) == 0 {
		return out
	}

	placed, misplaced := s.letterSets()
	if len(placed) > 0 {
		out = append(out, "You've correctly placed: "+strings.Join(placed, ", "))
	}
	if len(misplaced) > 0 {
		out = append(out, "Good letters but wrong position: "+strings.Join(misplaced, ", "))
	}
	for k := 1; k < len(supplied); k++ {
		if len(s.History) >= k+1 {
			out = append(out, supplied[k])
		}
	}
	return out
}

// letterSets lists letters seen as Correct and letters only ever seen as
// Present, each in order of first appearance.
func (s *Session) letterSets() (placed, misplaced []string) {
	kb := s.Keyboard()
	seen := map[string]bool{}
	for _, g := range s.History {
		for _, r := range []rune(g.Word) {
			k := string(r)
			if seen[k] {
				continue
			}
			seen[k] = true
			switch kb[k] {
			case Correct:
				placed = append(placed, k)
			case Present:
				misplaced = append(misplaced, k)
			}
		}
	}
	return placed, misplaced
}
