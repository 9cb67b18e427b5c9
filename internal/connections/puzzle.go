// internal/connections/puzzle.go
//
// Puzzle model and catalog for the grouping game.
// A puzzle is sixteen distinct words split into four groups of four; each
// group carries a difficulty color (yellow < green < blue < purple).
package connections

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	GroupCount = 4
	GroupSize  = 4
)

// Color marks a group's difficulty.
type Color string

const (
	Yellow Color = "yellow"
	Green  Color = "green"
	Blue   Color = "blue"
	Purple Color = "purple"
)

// Glyph returns the share-grid square for c.
func (c Color) Glyph() string {
	switch c {
	case Yellow:
		return "🟨"
	case Green:
		return "🟩"
	case Blue:
		return "🟦"
	case Purple:
		return "🟪"
	}
	return "⬜"
}

func (c Color) valid() bool {
	return c == Yellow || c == Green || c == Blue || c == Purple
}

type Group struct {
	Name  string   `yaml:"name" json:"name"`
	Color Color    `yaml:"color" json:"color"`
	Words []string `yaml:"words" json:"words"`
}

type Puzzle struct {
	ID     string  `yaml:"id" json:"id"`
	Groups []Group `yaml:"groups" json:"groups"`
}

var ErrInvalidPuzzle = errors.New("invalid puzzle")

// Validate checks the puzzle shape and upper-cases its words in place.
func (p *Puzzle) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPuzzle)
	}
	if len(p.Groups) != GroupCount {
		return fmt.Errorf("%w %s: want %d groups, got %d", ErrInvalidPuzzle, p.ID, GroupCount, len(p.Groups))
	}
	seen := make(map[string]bool, GroupCount*GroupSize)
	colors := make(map[Color]bool, GroupCount)
	for gi := range p.Groups {
		g := &p.Groups[gi]
		if !g.Color.valid() || colors[g.Color] {
			return fmt.Errorf("%w %s: bad or repeated color %q", ErrInvalidPuzzle, p.ID, g.Color)
		}
		colors[g.Color] = true
		if len(g.Words) != GroupSize {
			return fmt.Errorf("%w %s: group %q has %d words", ErrInvalidPuzzle, p.ID, g.Name, len(g.Words))
		}
		for wi, w := range g.Words {
			w = strings.ToUpper(strings.TrimSpace(w))
			if w == "" || seen[w] {
				return fmt.Errorf("%w %s: empty or duplicate word %q", ErrInvalidPuzzle, p.ID, w)
			}
			seen[w] = true
			g.Words[wi] = w
		}
	}
	return nil
}

// Catalog is an ordered, validated list of puzzles.
type Catalog struct {
	Puzzles []Puzzle `yaml:"puzzles"`
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(c.Puzzles) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidPuzzle)
	}
	ids := make(map[string]bool, len(c.Puzzles))
	for i := range c.Puzzles {
		if err := c.Puzzles[i].Validate(); err != nil {
			return nil, err
		}
		if ids[c.Puzzles[i].ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidPuzzle, c.Puzzles[i].ID)
		}
		ids[c.Puzzles[i].ID] = true
	}
	return &c, nil
}

// Len reports the number of puzzles.
func (c *Catalog) Len() int { return len(c.Puzzles) }

// At returns puzzle i modulo the catalog size.
func (c *Catalog) At(i int) Puzzle {
	n := len(c.Puzzles)
	return c.Puzzles[((i%n)+n)%n]
}

// Lookup finds a puzzle by ID.
func (c *Catalog) Lookup(id string) (Puzzle, bool) {
	for _, p := range c.Puzzles {
		if p.ID == id {
			return p, true
		}
	}
	return Puzzle{}, false
}
