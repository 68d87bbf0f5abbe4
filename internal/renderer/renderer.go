// Package renderer draws the annotation screen: the wrapped clue with its
// tagged spans, the per-segment resolutions, the derived summary line, and
// the status line. All drawing goes through the backend abstraction so
// tests can render into memory.
package renderer

import (
	"github.com/dshills/cluemark/internal/editor"
	"github.com/dshills/cluemark/internal/renderer/backend"
	"github.com/dshills/cluemark/internal/renderer/core"
)

// Margins around the clue block.
const (
	clueTop  = 2
	clueLeft = 2
)

// View is everything one frame needs. The renderer holds no model state of
// its own; the app passes the current view on every draw.
type View struct {
	Title      string
	EntryLabel string
	Session    *editor.Session
	Message    string
	ReadOnly   bool
}

// Renderer draws frames to a backend.
type Renderer struct {
	backend backend.Backend
	theme   Theme

	// Hit-test state captured by the last Draw.
	layout *Layout
}

// New creates a renderer over a backend.
func New(b backend.Backend, theme Theme) *Renderer {
	return &Renderer{backend: b, theme: theme}
}

// SetTheme replaces the theme. Takes effect on the next draw.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
}

// Draw renders a full frame. Every event redraws the whole screen; the
// backend diffs against its own back buffer.
func (r *Renderer) Draw(v View) {
	width, height := r.backend.Size()
	r.backend.Clear()

	r.drawTitle(v, width)

	clueWidth := width - clueLeft*2
	if clueWidth < 1 {
		clueWidth = 1
	}
	r.layout = NewLayout(v.Session.Clue().Text(), clueWidth)

	next := r.drawClue(v)
	next = r.drawSummary(v, next, width)
	r.drawEditLine(v, next+1)
	r.drawMessage(v, width, height)
	r.drawStatus(v, width, height)
	r.placeCursor(v, next+1)

	r.backend.Show()
}

// HitTest maps a screen position from the last draw to a rune index in the
// clue. Positions outside the clue block return false.
func (r *Renderer) HitTest(x, y int) (int, bool) {
	if r.layout == nil {
		return 0, false
	}
	row := y - clueTop
	if row < 0 || row%2 != 0 {
		return 0, false
	}
	return r.layout.IndexAt(row/2, x-clueLeft)
}

func (r *Renderer) drawTitle(v View, width int) {
	title := v.Title
	if title == "" {
		title = "cluemark"
	}
	x := r.drawText(1, 0, title, r.theme.Title)
	if v.EntryLabel != "" {
		r.drawText(x+2, 0, "["+v.EntryLabel+"]", r.theme.Text)
	}
	if v.ReadOnly {
		r.drawText(width-10, 0, "read-only", r.theme.Message)
	}
}

func (r *Renderer) drawSummary(v View, row, width int) int {
	summary := v.Session.Clue().Summary()
	if summary == "" {
		return row
	}
	r.drawText(clueLeft, row+1, summary, r.theme.Summary)
	return row + 2
}

func (r *Renderer) drawEditLine(v View, row int) {
	if v.Session.State() != editor.StateEditResolution {
		return
	}
	buf, _ := v.Session.EditBuffer()
	x := r.drawText(clueLeft, row, editPrompt, r.theme.Message)
	r.drawText(x, row, buf, r.theme.Text)
}

func (r *Renderer) drawMessage(v View, width, height int) {
	if v.Message == "" || height < 3 {
		return
	}
	r.drawText(1, height-2, v.Message, r.theme.Message)
}

// placeCursor positions the hardware cursor: inside the edit line while a
// resolution edit is open, on the clue cursor otherwise.
func (r *Renderer) placeCursor(v View, editRow int) {
	if v.Session.State() == editor.StateEditResolution {
		_, pos := v.Session.EditBuffer()
		r.backend.ShowCursor(clueLeft+len([]rune(editPrompt))+pos, editRow)
		return
	}
	row, col, ok := r.layout.Pos(v.Session.Cursor())
	if !ok {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(clueLeft+col, clueTop+row*2)
}

const editPrompt = "resolution> "

// drawText draws a string at (x, y), clipping at the screen edge. Returns
// the column after the last drawn cell.
func (r *Renderer) drawText(x, y int, text string, style core.Style) int {
	width, height := r.backend.Size()
	if y < 0 || y >= height {
		return x
	}
	for _, ch := range text {
		if x >= width {
			break
		}
		if x >= 0 {
			r.backend.SetCell(x, y, core.Cell{Rune: ch, Style: style})
		}
		x++
	}
	return x
}
