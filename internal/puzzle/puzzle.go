// Package puzzle manages the working set of clues for one crossword: the
// across and down entries, navigation between them, and TOML persistence of
// the annotation state alongside the clue list.
package puzzle

import (
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/cluemark/internal/annotate"
)

// Direction identifies an entry's orientation in the grid.
type Direction string

// Entry directions.
const (
	DirectionAcross Direction = "across"
	DirectionDown   Direction = "down"
)

// Entry is one clue of the puzzle together with its annotation state.
type Entry struct {
	Number    int
	Direction Direction
	Answer    string
	Length    int
	Clue      *annotate.Clue
}

// Label returns the display label for the status line, e.g. "4 across".
func (e *Entry) Label() string {
	return fmt.Sprintf("%d %s", e.Number, e.Direction)
}

// Puzzle is an ordered set of entries, across before down, each direction
// sorted by number.
type Puzzle struct {
	Title string

	path    string
	entries []*Entry
	current int
}

// Len returns the number of entries.
func (p *Puzzle) Len() int {
	return len(p.entries)
}

// Entries returns the entries in display order.
func (p *Puzzle) Entries() []*Entry {
	return p.entries
}

// Current returns the entry under edit, or nil for an empty puzzle.
func (p *Puzzle) Current() *Entry {
	if len(p.entries) == 0 {
		return nil
	}
	return p.entries[p.current]
}

// Next advances to the following entry, wrapping after the last.
func (p *Puzzle) Next() *Entry {
	if len(p.entries) == 0 {
		return nil
	}
	p.current = (p.current + 1) % len(p.entries)
	return p.entries[p.current]
}

// Prev moves to the preceding entry, wrapping before the first.
func (p *Puzzle) Prev() *Entry {
	if len(p.entries) == 0 {
		return nil
	}
	p.current = (p.current - 1 + len(p.entries)) % len(p.entries)
	return p.entries[p.current]
}

// Path returns the file the puzzle was loaded from.
func (p *Puzzle) Path() string {
	return p.path
}

// File schema. Annotations are saved back into the same file, one segment
// table per tagged span.
type fileDoc struct {
	Title string     `toml:"title,omitempty"`
	Clues []fileClue `toml:"clue"`
}

type fileClue struct {
	Number    int           `toml:"number"`
	Direction string        `toml:"direction"`
	Text      string        `toml:"text"`
	Answer    string        `toml:"answer,omitempty"`
	Length    int           `toml:"length,omitempty"`
	Segments  []fileSegment `toml:"segment,omitempty"`
}

type fileSegment struct {
	ID         string `toml:"id,omitempty"`
	Mode       string `toml:"mode"`
	Start      int    `toml:"start"`
	End        int    `toml:"end"`
	Resolution string `toml:"resolution,omitempty"`
	Wordplay   string `toml:"wordplay,omitempty"`
}

// Load reads a puzzle file and restores its annotations. Segments with an
// unknown mode, an out-of-range span, or an overlap are dropped; the count
// of dropped segments is returned so the caller can log it.
func Load(path string, reg annotate.Registry) (*Puzzle, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading puzzle file %s: %w", path, err)
	}

	var doc fileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, 0, fmt.Errorf("parsing puzzle file %s: %w", path, err)
	}
	if len(doc.Clues) == 0 {
		return nil, 0, fmt.Errorf("puzzle file %s has no clues", path)
	}

	p := &Puzzle{Title: doc.Title, path: path}
	dropped := 0

	for i, fc := range doc.Clues {
		dir := Direction(fc.Direction)
		if dir != DirectionAcross && dir != DirectionDown {
			return nil, 0, fmt.Errorf("clue %d: invalid direction %q", i+1, fc.Direction)
		}
		if fc.Text == "" {
			return nil, 0, fmt.Errorf("clue %d: empty text", i+1)
		}

		clue := annotate.NewClue(fc.Text)

		segs := make([]annotate.Segment, 0, len(fc.Segments))
		for _, fs := range fc.Segments {
			if _, err := reg.Descriptor(annotate.Mode(fs.Mode)); err != nil {
				dropped++
				continue
			}
			id := fs.ID
			if id == "" {
				id = uuid.NewString()
			}
			segs = append(segs, annotate.Segment{
				ID:         id,
				Span:       annotate.Span{Start: fs.Start, End: fs.End},
				Mode:       annotate.Mode(fs.Mode),
				Resolution: fs.Resolution,
				Wordplay:   annotate.WordplayFromString(fs.Wordplay),
			})
		}
		dropped += clue.Restore(segs)

		p.entries = append(p.entries, &Entry{
			Number:    fc.Number,
			Direction: dir,
			Answer:    fc.Answer,
			Length:    fc.Length,
			Clue:      clue,
		})
	}

	sort.SliceStable(p.entries, func(i, j int) bool {
		a, b := p.entries[i], p.entries[j]
		if a.Direction != b.Direction {
			return a.Direction == DirectionAcross
		}
		return a.Number < b.Number
	})

	return p, dropped, nil
}

// Save writes the puzzle and its annotations back to the file it was
// loaded from.
func (p *Puzzle) Save() error {
	if p.path == "" {
		return fmt.Errorf("puzzle has no backing file")
	}
	return p.SaveTo(p.path)
}

// SaveTo writes the puzzle and its annotations to the given path.
func (p *Puzzle) SaveTo(path string) error {
	doc := fileDoc{Title: p.Title}

	for _, e := range p.entries {
		fc := fileClue{
			Number:    e.Number,
			Direction: string(e.Direction),
			Text:      e.Clue.Text(),
			Answer:    e.Answer,
			Length:    e.Length,
		}
		for _, seg := range e.Clue.Segments() {
			fc.Segments = append(fc.Segments, fileSegment{
				ID:         seg.ID,
				Mode:       string(seg.Mode),
				Start:      seg.Start,
				End:        seg.End,
				Resolution: seg.Resolution,
				Wordplay:   seg.Wordplay.String(),
			})
		}
		doc.Clues = append(doc.Clues, fc)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding puzzle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing puzzle file %s: %w", path, err)
	}
	return nil
}
