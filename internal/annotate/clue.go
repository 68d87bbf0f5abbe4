package annotate

import "sort"

// Clue is a read-only clue text plus the segments annotating it. Segments
// are owned exclusively by the clue and never shared across clues.
//
// A Clue is not safe for concurrent use. All mutation happens synchronously
// on the single event-handling goroutine.
type Clue struct {
	text     string
	runeLen  int
	segments []Segment
}

// NewClue creates an unannotated clue over the given text.
func NewClue(text string) *Clue {
	return &Clue{
		text:    text,
		runeLen: len([]rune(text)),
	}
}

// Text returns the clue text.
func (c *Clue) Text() string {
	return c.text
}

// RuneLen returns the clue text length in runes.
func (c *Clue) RuneLen() int {
	return c.runeLen
}

// Segments returns a copy of the segment set sorted by start position.
func (c *Clue) Segments() []Segment {
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// SegmentCount returns the number of segments.
func (c *Clue) SegmentCount() int {
	return len(c.segments)
}

// SegmentAt returns the segment covering the given rune index, if any.
func (c *Clue) SegmentAt(pos int) (Segment, bool) {
	for _, seg := range c.segments {
		if seg.Contains(pos) {
			return seg, true
		}
	}
	return Segment{}, false
}

// Apply runs the reconciler for the active mode over the span and replaces
// the segment set atomically. The set is untouched on error.
func (c *Clue) Apply(rec Reconciler, active Mode, span Span) error {
	next, err := rec.Reconcile(c.segments, c.text, active, span)
	if err != nil {
		return err
	}
	c.segments = next
	return nil
}

// SetResolution replaces the resolution of the segment with the given id.
// A missing id is a silent no-op: the UI can race a redraw against a
// deletion in the event queue.
func (c *Clue) SetResolution(id, resolution string) {
	for i := range c.segments {
		if c.segments[i].ID == id {
			c.segments[i].Resolution = resolution
			return
		}
	}
}

// SetWordplay replaces the wordplay classification of the segment with the
// given id. A missing id is a silent no-op.
func (c *Clue) SetWordplay(id string, w WordplayType) {
	for i := range c.segments {
		if c.segments[i].ID == id {
			c.segments[i].Wordplay = w
			return
		}
	}
}

// Summary returns the derived one-line breakdown of the annotation.
func (c *Clue) Summary() string {
	return Summarize(c.segments)
}

// Restore installs a segment set loaded from persistence. Segments outside
// the clue text or overlapping an earlier segment are dropped; the count of
// dropped segments is returned so callers can log it.
func (c *Clue) Restore(segments []Segment) int {
	kept := make([]Segment, 0, len(segments))
	dropped := 0

next:
	for _, seg := range segments {
		if !seg.Span.within(c.runeLen) {
			dropped++
			continue
		}
		for _, prev := range kept {
			if prev.Span.Overlaps(seg.Span) {
				dropped++
				continue next
			}
		}
		seg.Text = SliceText(c.text, seg.Span)
		kept = append(kept, seg)
	}

	c.segments = kept
	return dropped
}
