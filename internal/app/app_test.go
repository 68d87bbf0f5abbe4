package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/config"
	"github.com/dshills/cluemark/internal/puzzle"
	"github.com/dshills/cluemark/internal/renderer/backend"
)

const testPuzzle = `title = "Test Cryptic"

[[clue]]
number = 1
direction = "across"
text = "A lot to change"

[[clue]]
number = 2
direction = "down"
text = "Sounds like a pair"
`

func writeTestPuzzle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzle.toml")
	if err := os.WriteFile(path, []byte(testPuzzle), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func key(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}
}

func ctrl(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r, Mod: backend.ModCtrl}
}

func special(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func newTestApp(t *testing.T, opts Options) (*Application, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(60, 16)
	opts.Backend = b
	opts.Logger = NullLogger
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "config.toml")
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, b
}

// runScript feeds events to the app and runs the loop to completion. The
// script must end in something that quits.
func runScript(t *testing.T, a *Application, b *backend.NullBackend, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		b.PostEvent(ev)
	}
	if err := a.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestTagSelectionAndSave(t *testing.T) {
	path := writeTestPuzzle(t)
	a, b := newTestApp(t, Options{PuzzlePath: path})

	runScript(t, a, b,
		key('v'),
		key('l'), key('l'), key('l'), key('l'),
		key('f'),
		ctrl('s'),
		ctrl('q'),
	)

	reloaded, _, err := puzzle.Load(path, annotate.DefaultRegistry())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	segs := reloaded.Current().Clue.Segments()
	if len(segs) != 1 {
		t.Fatalf("saved segments = %d, want 1", len(segs))
	}
	if segs[0].Mode != annotate.ModeFodder || segs[0].Resolution != "ALOT" {
		t.Errorf("segment = %s/%q", segs[0].Mode, segs[0].Resolution)
	}
	if segs[0].Span != (annotate.Span{Start: 0, End: 4}) {
		t.Errorf("span = %+v", segs[0].Span)
	}
}

func TestEnterAppliesSelection(t *testing.T) {
	a, b := newTestApp(t, Options{PuzzlePath: writeTestPuzzle(t)})

	runScript(t, a, b,
		key('v'),
		key('l'), key('l'), key('l'), key('l'),
		special(backend.KeyEnter),
		ctrl('q'),
	)

	segs := a.session.Clue().Segments()
	if len(segs) != 1 || segs[0].Mode != annotate.ModeFodder {
		t.Fatalf("segments = %+v", segs)
	}
	if _, ok := a.session.Selection(); ok {
		t.Error("selection should be cleared after apply")
	}
}

func TestResolutionEditFlow(t *testing.T) {
	a, b := newTestApp(t, Options{PuzzlePath: writeTestPuzzle(t)})

	runScript(t, a, b,
		key('v'), key('l'), key('l'), key('l'), key('l'), key('f'),
		key('h'), key('h'), // back inside the segment
		special(backend.KeyEnter), // open the resolution editor
		special(backend.KeyBackspace),
		special(backend.KeyBackspace),
		key('S'), key('O'),
		special(backend.KeyEnter), // commit
		ctrl('q'),
	)

	segs := a.session.Clue().Segments()
	if len(segs) != 1 {
		t.Fatalf("segments = %d", len(segs))
	}
	if segs[0].Resolution != "ALSO" {
		t.Errorf("resolution = %q, want ALSO", segs[0].Resolution)
	}
}

func TestWordplayCycleKey(t *testing.T) {
	a, b := newTestApp(t, Options{PuzzlePath: writeTestPuzzle(t)})

	runScript(t, a, b,
		key('v'), key('l'), key('l'), key('f'),
		key('w'),
		ctrl('q'),
	)

	segs := a.session.Clue().Segments()
	if len(segs) != 1 || segs[0].Wordplay != annotate.WordplayAnagram {
		t.Errorf("segments = %+v", segs)
	}
	if !strings.Contains(a.message, "Anagram") {
		t.Errorf("message = %q", a.message)
	}
}

func TestTabSwitchesEntries(t *testing.T) {
	a, b := newTestApp(t, Options{PuzzlePath: writeTestPuzzle(t)})

	runScript(t, a, b,
		special(backend.KeyTab),
		ctrl('q'),
	)

	if got := a.session.Clue().Text(); got != "Sounds like a pair" {
		t.Errorf("clue after Tab = %q", got)
	}
	if got := a.puz.Current().Label(); got != "2 down" {
		t.Errorf("entry = %q", got)
	}
}

func TestReadOnlyBlocksSave(t *testing.T) {
	path := writeTestPuzzle(t)
	a, b := newTestApp(t, Options{PuzzlePath: path, ReadOnly: true})

	runScript(t, a, b,
		key('v'), key('l'), key('f'),
		ctrl('s'),
		ctrl('q'),
	)

	if !strings.Contains(a.message, "read-only") {
		t.Errorf("message = %q", a.message)
	}
	reloaded, _, err := puzzle.Load(path, annotate.DefaultRegistry())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n := len(reloaded.Current().Clue.Segments()); n != 0 {
		t.Errorf("segments on disk = %d, want 0", n)
	}
}

func TestMouseDragSelects(t *testing.T) {
	a, b := newTestApp(t, Options{PuzzlePath: writeTestPuzzle(t)})

	press := backend.Event{Type: backend.EventMouse, MouseX: 2, MouseY: 2, MouseButton: backend.MouseLeft}
	drag := backend.Event{Type: backend.EventMouse, MouseX: 6, MouseY: 2, MouseButton: backend.MouseLeft}
	release := backend.Event{Type: backend.EventMouse, MouseX: 6, MouseY: 2, MouseButton: backend.MouseNone}

	runScript(t, a, b,
		press, drag, release,
		key('f'),
		ctrl('q'),
	)

	segs := a.session.Clue().Segments()
	if len(segs) != 1 {
		t.Fatalf("segments = %+v", segs)
	}
	if segs[0].Span != (annotate.Span{Start: 0, End: 4}) {
		t.Errorf("span = %+v", segs[0].Span)
	}
}

func TestConfigReloadSwapsRegistry(t *testing.T) {
	a, _ := newTestApp(t, Options{PuzzlePath: writeTestPuzzle(t)})

	cfg := config.Default()
	cfg.Keys = map[string]string{"fodder": "z"}
	a.onConfigReload(cfg, nil)
	a.applyPendingConfig()

	d, ok := a.reg.ByKey('z')
	if !ok || d.Mode != annotate.ModeFodder {
		t.Errorf("ByKey('z') = %+v, %v", d, ok)
	}
	if a.message != "config reloaded" {
		t.Errorf("message = %q", a.message)
	}
}

func TestConfigReloadErrorKeepsOldConfig(t *testing.T) {
	a, _ := newTestApp(t, Options{PuzzlePath: writeTestPuzzle(t)})

	a.onConfigReload(config.Config{}, os.ErrInvalid)
	a.applyPendingConfig()

	if _, ok := a.reg.ByKey('f'); !ok {
		t.Error("old binding should survive a failed reload")
	}
	if !strings.Contains(a.message, "config reload failed") {
		t.Errorf("message = %q", a.message)
	}
}

func TestNewRejectsMissingPuzzle(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected error without puzzle path")
	}
	_, err := New(Options{
		PuzzlePath: filepath.Join(t.TempDir(), "missing.toml"),
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Backend:    backend.NewNullBackend(10, 10),
		Logger:     NullLogger,
	})
	if err == nil {
		t.Error("expected error for missing puzzle file")
	}
}
