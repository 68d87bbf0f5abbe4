// Package editor holds the interactive state over one clue: cursor,
// selection anchor, the active annotation mode register, and the inline
// resolution edit buffer. All transitions run synchronously inside a single
// input handler; the package has no goroutines and no locks.
package editor

import (
	"fmt"

	"github.com/dshills/cluemark/internal/annotate"
)

// State identifies what the session is currently doing with key input.
type State uint8

const (
	// StateNormal routes keys to cursor movement, mode switching, and
	// selection handling.
	StateNormal State = iota
	// StateEditResolution routes printable keys into the resolution
	// edit buffer.
	StateEditResolution
)

// String returns a human-readable state name for the status line.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateEditResolution:
		return "edit"
	default:
		return "unknown"
	}
}

// ModeChangeCallback is notified when the active annotation mode changes.
type ModeChangeCallback func(from, to annotate.Mode)

// Session is the editing state over the current clue.
//
// Exactly one annotation mode is active at any time; any mode is reachable
// from any mode by its shortcut key. The selection is anchored at a rune
// index and extends to the cursor, both ends inclusive.
type Session struct {
	reg annotate.Registry
	rec annotate.Reconciler

	clue   *annotate.Clue
	cursor int
	anchor int // -1 when no selection is anchored

	active annotate.Mode
	state  State

	// Inline resolution edit.
	editID     string
	editBuf    []rune
	editCursor int

	callbacks []ModeChangeCallback
}

// NewSession creates a session over a clue with the first taggable mode
// active.
func NewSession(reg annotate.Registry, clue *annotate.Clue) (*Session, error) {
	var initial annotate.Mode
	for _, m := range reg.Modes() {
		d, err := reg.Descriptor(m)
		if err != nil {
			return nil, err
		}
		if !d.Clears {
			initial = m
			break
		}
	}
	if initial == "" {
		return nil, fmt.Errorf("registry has no taggable mode")
	}

	return &Session{
		reg:    reg,
		rec:    annotate.NewReconciler(reg),
		clue:   clue,
		anchor: -1,
		active: initial,
	}, nil
}

// Clue returns the clue under edit.
func (s *Session) Clue() *annotate.Clue {
	return s.clue
}

// SetClue switches the session to a different clue, resetting cursor,
// selection, and any edit in progress.
func (s *Session) SetClue(clue *annotate.Clue) {
	s.clue = clue
	s.cursor = 0
	s.anchor = -1
	s.state = StateNormal
	s.editID = ""
	s.editBuf = nil
	s.editCursor = 0
}

// Registry returns the mode registry the session was built with.
func (s *Session) Registry() annotate.Registry {
	return s.reg
}

// Reconciler returns the session's reconciler, for callers that tag the
// clue outside the anchor flow.
func (s *Session) Reconciler() annotate.Reconciler {
	return s.rec
}

// SetRegistry swaps the registry after a config reload. If the active mode
// no longer exists, the first taggable mode becomes active.
func (s *Session) SetRegistry(reg annotate.Registry) error {
	if _, err := reg.Descriptor(s.active); err != nil {
		replacement := annotate.Mode("")
		for _, m := range reg.Modes() {
			d, derr := reg.Descriptor(m)
			if derr != nil {
				return derr
			}
			if !d.Clears {
				replacement = m
				break
			}
		}
		if replacement == "" {
			return fmt.Errorf("registry has no taggable mode")
		}
		s.active = replacement
	}
	s.reg = reg
	s.rec = annotate.NewReconciler(reg)
	return nil
}

// State returns the current input state.
func (s *Session) State() State {
	return s.state
}

// Cursor returns the cursor's rune index.
func (s *Session) Cursor() int {
	return s.cursor
}

// MoveCursor moves the cursor by delta runes, clamped to the clue text.
func (s *Session) MoveCursor(delta int) {
	s.MoveCursorTo(s.cursor + delta)
}

// MoveCursorTo places the cursor at pos, clamped to the clue text.
func (s *Session) MoveCursorTo(pos int) {
	limit := s.clue.RuneLen() - 1
	if limit < 0 {
		limit = 0
	}
	if pos < 0 {
		pos = 0
	}
	if pos > limit {
		pos = limit
	}
	s.cursor = pos
}

// Home moves the cursor to the first rune.
func (s *Session) Home() {
	s.cursor = 0
}

// End moves the cursor to the last rune.
func (s *Session) End() {
	s.MoveCursorTo(s.clue.RuneLen() - 1)
}

// ToggleAnchor drops or lifts the selection anchor at the cursor.
func (s *Session) ToggleAnchor() {
	if s.anchor >= 0 {
		s.anchor = -1
		return
	}
	s.anchor = s.cursor
}

// ClearAnchor removes any selection anchor.
func (s *Session) ClearAnchor() {
	s.anchor = -1
}

// Selection returns the anchored span, both ends inclusive, or false when
// nothing is anchored. Zero-width raw selections never occur here: an
// anchored selection always covers at least the anchor rune.
func (s *Session) Selection() (annotate.Span, bool) {
	if s.anchor < 0 {
		return annotate.Span{}, false
	}
	return annotate.NewSpan(s.anchor, s.cursor), true
}

// ActiveMode returns the active annotation mode.
func (s *Session) ActiveMode() annotate.Mode {
	return s.active
}

// ActiveDescriptor returns the active mode's descriptor.
func (s *Session) ActiveDescriptor() annotate.Descriptor {
	d, err := s.reg.Descriptor(s.active)
	if err != nil {
		// The active mode always comes from the registry.
		panic(err)
	}
	return d
}

// SetActive switches the active mode. Any mode is reachable from any mode.
func (s *Session) SetActive(m annotate.Mode) error {
	if _, err := s.reg.Descriptor(m); err != nil {
		return err
	}
	from := s.active
	s.active = m
	if from != m {
		for _, cb := range s.callbacks {
			if cb != nil {
				cb(from, m)
			}
		}
	}
	return nil
}

// SetActiveByKey switches the active mode by shortcut key. Returns false if
// no mode is bound to the key.
func (s *Session) SetActiveByKey(key rune) bool {
	d, ok := s.reg.ByKey(key)
	if !ok {
		return false
	}
	// Bound keys always resolve; ignore the impossible error.
	_ = s.SetActive(d.Mode)
	return true
}

// OnModeChange registers a callback for active-mode changes. The returned
// function unregisters it.
func (s *Session) OnModeChange(cb ModeChangeCallback) func() {
	s.callbacks = append(s.callbacks, cb)
	index := len(s.callbacks) - 1
	return func() {
		if index < len(s.callbacks) {
			s.callbacks[index] = nil
		}
	}
}

// Apply reconciles the anchored selection under the active mode and clears
// the anchor. With no anchored selection it is a no-op.
func (s *Session) Apply() error {
	span, ok := s.Selection()
	if !ok {
		return nil
	}
	if err := s.clue.Apply(s.rec, s.active, span); err != nil {
		return err
	}
	s.anchor = -1
	return nil
}

// ApplySpan reconciles an explicit span under the active mode, bypassing the
// anchor. Used by mouse drag selections and the assistant.
func (s *Session) ApplySpan(span annotate.Span) error {
	return s.clue.Apply(s.rec, s.active, span)
}

// CycleWordplay rotates the wordplay classification of the segment under the
// cursor. Segments whose mode hides the picker, and positions with no
// segment, are no-ops. Returns the updated segment and true when it changed.
func (s *Session) CycleWordplay() (annotate.Segment, bool) {
	seg, ok := s.clue.SegmentAt(s.cursor)
	if !ok {
		return annotate.Segment{}, false
	}
	d, err := s.reg.Descriptor(seg.Mode)
	if err != nil || !d.HasWordplay {
		return annotate.Segment{}, false
	}
	next := seg.Wordplay.Next()
	s.clue.SetWordplay(seg.ID, next)
	seg.Wordplay = next
	return seg, true
}

// StartResolutionEdit begins editing the resolution of the segment under
// the cursor. Returns false when there is no segment there or its mode does
// not expose an editable resolution.
func (s *Session) StartResolutionEdit() bool {
	seg, ok := s.clue.SegmentAt(s.cursor)
	if !ok {
		return false
	}
	d, err := s.reg.Descriptor(seg.Mode)
	if err != nil || !d.EditsResolution {
		return false
	}
	s.state = StateEditResolution
	s.editID = seg.ID
	s.editBuf = []rune(seg.Resolution)
	s.editCursor = len(s.editBuf)
	return true
}

// EditBuffer returns the in-progress resolution text and cursor position.
func (s *Session) EditBuffer() (string, int) {
	return string(s.editBuf), s.editCursor
}

// EditInsert inserts a rune at the edit cursor.
func (s *Session) EditInsert(r rune) {
	if s.state != StateEditResolution {
		return
	}
	s.editBuf = append(s.editBuf[:s.editCursor], append([]rune{r}, s.editBuf[s.editCursor:]...)...)
	s.editCursor++
}

// EditBackspace deletes the rune before the edit cursor.
func (s *Session) EditBackspace() {
	if s.state != StateEditResolution || s.editCursor == 0 {
		return
	}
	s.editBuf = append(s.editBuf[:s.editCursor-1], s.editBuf[s.editCursor:]...)
	s.editCursor--
}

// EditMoveCursor moves the edit cursor by delta, clamped to the buffer.
func (s *Session) EditMoveCursor(delta int) {
	if s.state != StateEditResolution {
		return
	}
	pos := s.editCursor + delta
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.editBuf) {
		pos = len(s.editBuf)
	}
	s.editCursor = pos
}

// EditCommit stores the edit buffer as the segment's resolution and returns
// to normal state. Committing against a segment deleted meanwhile is a
// silent no-op.
func (s *Session) EditCommit() {
	if s.state != StateEditResolution {
		return
	}
	s.clue.SetResolution(s.editID, string(s.editBuf))
	s.exitEdit()
}

// EditCancel discards the edit buffer and returns to normal state.
func (s *Session) EditCancel() {
	if s.state != StateEditResolution {
		return
	}
	s.exitEdit()
}

func (s *Session) exitEdit() {
	s.state = StateNormal
	s.editID = ""
	s.editBuf = nil
	s.editCursor = 0
}
