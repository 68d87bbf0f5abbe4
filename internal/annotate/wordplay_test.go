package annotate

import "testing"

func TestWordplayRoundTrip(t *testing.T) {
	for w := WordplayAnagram; int(w) < wordplayCount; w++ {
		if got := WordplayFromString(w.String()); got != w {
			t.Errorf("WordplayFromString(%q) = %v, want %v", w.String(), got, w)
		}
	}
}

func TestWordplayFromStringUnknown(t *testing.T) {
	if got := WordplayFromString("quantum"); got != WordplayNone {
		t.Errorf("unknown name parsed to %v, want none", got)
	}
	if got := WordplayFromString(""); got != WordplayNone {
		t.Errorf("empty name parsed to %v, want none", got)
	}
}

func TestWordplayNextCycles(t *testing.T) {
	w := WordplayNone
	seen := make(map[WordplayType]bool)
	for i := 0; i < wordplayCount; i++ {
		if seen[w] {
			t.Fatalf("cycle revisited %v before covering all values", w)
		}
		seen[w] = true
		w = w.Next()
	}
	if w != WordplayNone {
		t.Errorf("cycle did not wrap to none, ended at %v", w)
	}
}
