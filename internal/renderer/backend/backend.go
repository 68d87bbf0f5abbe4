// Package backend abstracts the terminal behind an interface so the
// renderer can be driven by tcell in production and by an in-memory double
// in tests.
package backend

import "github.com/dshills/cluemark/internal/renderer/core"

// EventType identifies the type of terminal event.
type EventType int

// Event types.
const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// Key represents a keyboard key. Printable characters arrive as KeyRune
// with the character in the event's Rune field; control chords arrive as
// KeyRune with ModCtrl set.
type Key int

// Special keys.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// ModMask represents modifier key state.
type ModMask int

// Modifier flags.
const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents the pressed mouse button.
type MouseButton int

// Mouse buttons.
const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
)

// Event is a terminal event.
type Event struct {
	Type EventType

	// Key event fields.
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields.
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields.
	Width, Height int
}

// Backend is the terminal surface the renderer draws to.
type Backend interface {
	// Init prepares the backend. Must be called before any other method.
	Init() error

	// Shutdown restores the terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets one cell. Out-of-bounds positions are ignored.
	SetCell(x, y int, cell core.Cell)

	// Clear blanks the whole screen with the default style.
	Clear()

	// Show flushes buffered changes to the display.
	Show()

	// ShowCursor positions and displays the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()

	// PollEvent blocks until the next terminal event.
	PollEvent() Event

	// PostEvent injects a synthetic event into the queue. Used by
	// shutdown to unblock PollEvent and by tests.
	PostEvent(event Event)

	// EnableMouse turns on mouse reporting.
	EnableMouse()

	// Beep sounds the terminal bell.
	Beep()
}

// NullBackend is an in-memory backend for tests.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorShown   bool
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
	b.reset()
	return b
}

func (b *NullBackend) reset() {
	b.cells = make([][]core.Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]core.Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) { return b.width, b.height }

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) Clear() { b.reset() }

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX, b.cursorY = x, y
	b.cursorShown = true
}

func (b *NullBackend) HideCursor() { b.cursorShown = false }

func (b *NullBackend) PollEvent() Event { return <-b.events }

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Full queue drops the event; tests never queue this deep.
	}
}

func (b *NullBackend) EnableMouse() {}

func (b *NullBackend) Beep() {}

// CellAt returns the cell at (x, y) for test assertions.
func (b *NullBackend) CellAt(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns the text content of a row, without trailing blanks, for test
// assertions.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for x := 0; x < b.width; x++ {
		runes = append(runes, b.cells[y][x].Rune)
	}
	s := string(runes)
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

// CursorPosition returns the cursor position and visibility for tests.
func (b *NullBackend) CursorPosition() (x, y int, shown bool) {
	return b.cursorX, b.cursorY, b.cursorShown
}
