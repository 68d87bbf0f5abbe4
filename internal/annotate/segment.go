package annotate

import "github.com/google/uuid"

// Span is an inclusive range of rune indices into a clue's text.
// A single selected character has Start == End.
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span, swapping the endpoints if they are reversed.
func NewSpan(start, end int) Span {
	if start > end {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// Len returns the number of runes the span covers.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// Overlaps returns true if the two spans share at least one rune.
// Adjacent spans do not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start <= other.End && other.Start <= s.End
}

// Equals returns true if both endpoints match.
func (s Span) Equals(other Span) bool {
	return s.Start == other.Start && s.End == other.End
}

// Contains returns true if the rune index falls inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos <= s.End
}

// within reports whether the span fits inside a text of n runes.
func (s Span) within(n int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End < n
}

// Segment is a tagged substring of a clue. Segments are created only by the
// reconciler; mode, resolution, and wordplay may be updated in place without
// changing identity as long as the span is unchanged.
type Segment struct {
	// ID is stable for the lifetime of the containing clue. It correlates
	// UI elements with model state and carries no other meaning.
	ID string

	Span

	// Text is the substring of the clue the span covers. It is derived
	// from (Span, clue text) at creation and never diverges from it.
	Text string

	Mode       Mode
	Resolution string
	Wordplay   WordplayType
}

// newSegment creates a segment with a fresh identity.
func newSegment(span Span, text string, mode Mode, resolution string) Segment {
	return Segment{
		ID:         uuid.NewString(),
		Span:       span,
		Text:       text,
		Mode:       mode,
		Resolution: resolution,
	}
}

// SliceText returns the substring of text covered by the span, in runes.
// The span must be within the text.
func SliceText(text string, span Span) string {
	runes := []rune(text)
	return string(runes[span.Start : span.End+1])
}
