package annotate

import (
	"sort"
	"strings"
)

// summarySeparator joins the parts of the derived summary line.
const summarySeparator = " → "

// Summarize projects the segment set into the one-line breakdown shown under
// the clue: segments carrying a resolution or a wordplay classification,
// ordered by start position, each contributing its wordplay display name if
// classified and its resolution otherwise.
//
// The projection is pure and cheap; callers recompute it on every state
// change rather than caching it.
func Summarize(segments []Segment) string {
	parts := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Resolution != "" || seg.Wordplay != WordplayNone {
			parts = append(parts, seg)
		}
	}

	sort.Slice(parts, func(i, j int) bool {
		return parts[i].Start < parts[j].Start
	})

	labels := make([]string, len(parts))
	for i, seg := range parts {
		if seg.Wordplay != WordplayNone {
			labels[i] = seg.Wordplay.DisplayName()
		} else {
			labels[i] = seg.Resolution
		}
	}
	return strings.Join(labels, summarySeparator)
}
