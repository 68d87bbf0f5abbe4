package annotate

import "fmt"

// Reconciler turns a raw character selection plus the active mode into a new
// segment collection. It is the only creator of segments and the enforcer of
// the no-overlap invariant: any insertion that would overlap first removes
// the overlapped segments.
type Reconciler struct {
	reg Registry
}

// NewReconciler creates a reconciler over the given mode registry.
func NewReconciler(reg Registry) Reconciler {
	return Reconciler{reg: reg}
}

// Registry returns the registry the reconciler was built with.
func (r Reconciler) Registry() Registry {
	return r.reg
}

// Reconcile applies a selection under the active mode to the segment set and
// returns the new set. The input slice is not modified.
//
// A clearing mode removes every overlapped segment. An exact re-selection of
// an existing segment's span re-tags it in place, keeping its identity and
// text and re-deriving the resolution from the stored text; this takes
// precedence over overlap removal so a span can cycle through modes without
// losing its boundaries. Any other selection removes overlapped segments and
// inserts one fresh segment covering the span.
func (r Reconciler) Reconcile(segments []Segment, clueText string, active Mode, span Span) ([]Segment, error) {
	desc, err := r.reg.Descriptor(active)
	if err != nil {
		return nil, err
	}

	runes := []rune(clueText)
	if !span.within(len(runes)) {
		return nil, fmt.Errorf("%w: [%d,%d] in %d runes", ErrSpanOutOfRange, span.Start, span.End, len(runes))
	}

	if desc.Clears {
		return withoutOverlapping(segments, span), nil
	}

	// Exact boundary re-selection re-tags in place. Resolution is re-derived
	// from the stored text, not a fresh slice, so boundaries cannot drift.
	for i, seg := range segments {
		if seg.Span.Equals(span) {
			res, err := r.reg.DefaultResolution(active, seg.Text)
			if err != nil {
				return nil, err
			}
			out := make([]Segment, len(segments))
			copy(out, segments)
			out[i].Mode = active
			out[i].Resolution = res
			return out, nil
		}
	}

	text := string(runes[span.Start : span.End+1])
	res, err := r.reg.DefaultResolution(active, text)
	if err != nil {
		return nil, err
	}

	out := withoutOverlapping(segments, span)
	return append(out, newSegment(span, text, active, res)), nil
}

// withoutOverlapping returns a copy of segments with every segment
// overlapping the span removed.
func withoutOverlapping(segments []Segment, span Span) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if !seg.Span.Overlaps(span) {
			out = append(out, seg)
		}
	}
	return out
}
