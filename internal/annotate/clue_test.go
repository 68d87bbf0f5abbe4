package annotate

import "testing"

func TestClueScenario(t *testing.T) {
	// The canonical walkthrough: tag "A lot" as fodder, then re-tag the
	// same span as synonym and verify identity and boundaries survive.
	rec := NewReconciler(DefaultRegistry())
	clue := NewClue("A lot to change")

	if err := clue.Apply(rec, ModeFodder, Span{0, 4}); err != nil {
		t.Fatalf("Apply fodder: %v", err)
	}

	segs := clue.Segments()
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Resolution != "ALOT" {
		t.Errorf("fodder resolution = %q, want ALOT", segs[0].Resolution)
	}
	id := segs[0].ID

	if err := clue.Apply(rec, ModeSynonym, Span{0, 4}); err != nil {
		t.Fatalf("Apply synonym: %v", err)
	}

	segs = clue.Segments()
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment after re-tag, got %d", len(segs))
	}
	if segs[0].ID != id {
		t.Error("re-tag changed segment id")
	}
	if !segs[0].Span.Equals(Span{0, 4}) {
		t.Errorf("re-tag changed span to %v", segs[0].Span)
	}
	if segs[0].Mode != ModeSynonym || segs[0].Resolution != "" {
		t.Errorf("re-tag result mode=%s res=%q, want synonym with empty resolution", segs[0].Mode, segs[0].Resolution)
	}
}

func TestClueFieldEdits(t *testing.T) {
	rec := NewReconciler(DefaultRegistry())
	clue := NewClue("A lot to change")

	if err := clue.Apply(rec, ModeSynonym, Span{0, 4}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	id := clue.Segments()[0].ID

	clue.SetResolution(id, "MANY")
	clue.SetWordplay(id, WordplayAnagram)

	seg := clue.Segments()[0]
	if seg.Resolution != "MANY" {
		t.Errorf("resolution = %q, want MANY", seg.Resolution)
	}
	if seg.Wordplay != WordplayAnagram {
		t.Errorf("wordplay = %v, want anagram", seg.Wordplay)
	}
}

func TestClueFieldEditsMissingIDNoOp(t *testing.T) {
	rec := NewReconciler(DefaultRegistry())
	clue := NewClue("A lot to change")

	if err := clue.Apply(rec, ModeSynonym, Span{0, 4}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	before := clue.Segments()

	clue.SetResolution("no-such-id", "X")
	clue.SetWordplay("no-such-id", WordplayHidden)

	after := clue.Segments()
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("edit with missing id must be a no-op")
	}
}

func TestClueSegmentAt(t *testing.T) {
	rec := NewReconciler(DefaultRegistry())
	clue := NewClue("A lot to change")

	if err := clue.Apply(rec, ModeFodder, Span{6, 7}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, ok := clue.SegmentAt(6); !ok {
		t.Error("expected a segment at position 6")
	}
	if _, ok := clue.SegmentAt(7); !ok {
		t.Error("expected a segment at position 7 (inclusive end)")
	}
	if _, ok := clue.SegmentAt(5); ok {
		t.Error("expected no segment at position 5")
	}
	if _, ok := clue.SegmentAt(8); ok {
		t.Error("expected no segment at position 8")
	}
}

func TestClueSegmentsSorted(t *testing.T) {
	rec := NewReconciler(DefaultRegistry())
	clue := NewClue("A lot to change")

	if err := clue.Apply(rec, ModeDefinition, Span{9, 14}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := clue.Apply(rec, ModeFodder, Span{0, 4}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	segs := clue.Segments()
	if len(segs) != 2 || segs[0].Start != 0 || segs[1].Start != 9 {
		t.Errorf("Segments() not sorted by start: %v, %v", segs[0].Span, segs[1].Span)
	}
}

func TestClueRestoreDropsInvalid(t *testing.T) {
	clue := NewClue("A lot to change")

	dropped := clue.Restore([]Segment{
		{ID: "ok", Span: Span{0, 4}, Mode: ModeFodder, Resolution: "ALOT"},
		{ID: "oob", Span: Span{10, 20}, Mode: ModeSynonym},
		{ID: "olap", Span: Span{3, 6}, Mode: ModeDefinition},
	})

	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	segs := clue.Segments()
	if len(segs) != 1 || segs[0].ID != "ok" {
		t.Fatalf("unexpected surviving segments: %+v", segs)
	}
	if segs[0].Text != "A lot" {
		t.Errorf("restore did not rebuild text, got %q", segs[0].Text)
	}
}
