package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/assist"
	"github.com/dshills/cluemark/internal/editor"
	"github.com/dshills/cluemark/internal/puzzle"
	"github.com/dshills/cluemark/internal/renderer/backend"
)

// assistTimeout bounds one assistant round trip. The event loop blocks
// until the call returns or times out.
const assistTimeout = 30 * time.Second

func (a *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return a.handleKey(ev)
	case backend.EventMouse:
		a.handleMouse(ev)
	case backend.EventResize:
		// The redraw after every event picks up the new size.
	}
	return nil
}

func (a *Application) handleKey(ev backend.Event) error {
	if a.session.State() == editor.StateEditResolution {
		a.handleEditKey(ev)
		return nil
	}
	return a.handleNormalKey(ev)
}

func (a *Application) handleNormalKey(ev backend.Event) error {
	if ev.Mod.Has(backend.ModCtrl) && ev.Key == backend.KeyRune {
		switch ev.Rune {
		case 'q':
			return ErrQuit
		case 's':
			a.save()
			return nil
		}
		return nil
	}

	switch ev.Key {
	case backend.KeyEscape:
		a.session.ClearAnchor()
		a.message = ""
		return nil
	case backend.KeyLeft:
		a.session.MoveCursor(-1)
		return nil
	case backend.KeyRight:
		a.session.MoveCursor(1)
		return nil
	case backend.KeyHome:
		a.session.Home()
		return nil
	case backend.KeyEnd:
		a.session.End()
		return nil
	case backend.KeyTab:
		if ev.Mod.Has(backend.ModShift) {
			a.switchEntry(a.puz.Prev())
		} else {
			a.switchEntry(a.puz.Next())
		}
		return nil
	case backend.KeyEnter:
		if _, ok := a.session.Selection(); ok {
			a.applySelection()
		} else if !a.session.StartResolutionEdit() {
			a.backend.Beep()
		}
		return nil
	}

	if ev.Key != backend.KeyRune {
		return nil
	}

	switch ev.Rune {
	case 'h':
		a.session.MoveCursor(-1)
	case 'l':
		a.session.MoveCursor(1)
	case '0':
		a.session.Home()
	case '$':
		a.session.End()
	case 'v':
		a.session.ToggleAnchor()
	case 'w':
		if seg, ok := a.session.CycleWordplay(); ok {
			a.message = "wordplay: " + wordplayLabel(seg.Wordplay)
		} else {
			a.backend.Beep()
		}
	case 'g':
		a.suggest()
	default:
		if a.session.SetActiveByKey(ev.Rune) {
			// Switching mode with a live selection tags it immediately.
			if _, ok := a.session.Selection(); ok {
				a.applySelection()
			}
		}
	}
	return nil
}

func (a *Application) handleEditKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyEscape:
		a.session.EditCancel()
	case backend.KeyEnter:
		a.session.EditCommit()
	case backend.KeyBackspace:
		a.session.EditBackspace()
	case backend.KeyLeft:
		a.session.EditMoveCursor(-1)
	case backend.KeyRight:
		a.session.EditMoveCursor(1)
	case backend.KeyRune:
		if ev.Mod == backend.ModNone || ev.Mod == backend.ModShift {
			if ev.Rune != 0 {
				a.session.EditInsert(ev.Rune)
			}
		}
	}
}

// handleMouse implements click-to-move and drag-to-select. The drag origin
// becomes the selection anchor once the pointer leaves it; release keeps
// the selection so a mode key or Enter can tag it.
func (a *Application) handleMouse(ev backend.Event) {
	if a.session.State() == editor.StateEditResolution {
		return
	}

	if ev.MouseButton != backend.MouseLeft {
		a.dragOrigin = -1
		return
	}

	idx, ok := a.rend.HitTest(ev.MouseX, ev.MouseY)
	if !ok {
		return
	}

	if a.dragOrigin < 0 {
		a.dragOrigin = idx
		a.session.ClearAnchor()
		a.session.MoveCursorTo(idx)
		return
	}

	if idx != a.dragOrigin {
		if _, anchored := a.session.Selection(); !anchored {
			a.session.MoveCursorTo(a.dragOrigin)
			a.session.ToggleAnchor()
		}
	}
	a.session.MoveCursorTo(idx)
}

func (a *Application) applySelection() {
	if err := a.session.Apply(); err != nil {
		a.log.Error("apply: %v", err)
		a.message = "apply failed: " + err.Error()
		return
	}
	d := a.session.ActiveDescriptor()
	a.message = "tagged " + d.Label
}

func (a *Application) switchEntry(entry *puzzle.Entry) {
	if entry == nil {
		return
	}
	a.session.SetClue(entry.Clue)
	a.message = ""
}

func (a *Application) save() {
	if a.opts.ReadOnly {
		a.message = "read-only: not saved"
		a.backend.Beep()
		return
	}
	if err := a.puz.Save(); err != nil {
		a.log.Error("save: %v", err)
		a.message = "save failed: " + err.Error()
		return
	}
	a.message = fmt.Sprintf("saved %s", a.puz.Path())
	a.log.Info("saved %s", a.puz.Path())
}

func (a *Application) suggest() {
	if a.assistant == nil {
		a.message = "assistant not configured"
		a.backend.Beep()
		return
	}

	clue := a.session.Clue()
	ctx, cancel := context.WithTimeout(context.Background(), assistTimeout)
	defer cancel()

	suggestions, err := a.assistant.Suggest(ctx, clue.Text(), a.session.Registry())
	if err != nil {
		a.log.Error("assistant: %v", err)
		a.message = "assistant failed: " + err.Error()
		return
	}

	applied := assist.Apply(clue, a.session.Reconciler(), suggestions)
	a.message = fmt.Sprintf("assistant tagged %d segments", applied)
	a.log.Info("assistant applied %d of %d suggestions", applied, len(suggestions))
}

func wordplayLabel(w annotate.WordplayType) string {
	if name := w.DisplayName(); name != "" {
		return name
	}
	return "none"
}
