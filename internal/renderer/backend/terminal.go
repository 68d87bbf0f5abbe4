package backend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/cluemark/internal/renderer/core"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates a terminal backend over a real screen.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	return t.screen.Init()
}

func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

func (t *Terminal) PostEvent(event Event) {
	if event.Type != EventKey {
		return
	}
	tev := tcell.NewEventKey(tcell.KeyRune, event.Rune, tcell.ModNone)
	_ = t.screen.PostEvent(tev) // best-effort; the queue may be full
}

func (t *Terminal) EnableMouse() {
	t.screen.EnableMouse()
}

func (t *Terminal) Beep() {
	_ = t.screen.Beep() // best-effort; not every terminal supports it
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		style = style.Background(convertColor(s.Background))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

// convertColor converts our Color to tcell.Color.
func convertColor(c core.Color) tcell.Color {
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKeyEvent(e)

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	default:
		return Event{Type: EventNone}
	}
}

// convertKeyEvent maps tcell keys onto our reduced key set. Control chords
// are reported as KeyRune with ModCtrl and the lowercase letter so callers
// match on (mod, rune) rather than one constant per chord.
func convertKeyEvent(e *tcell.EventKey) Event {
	mods := convertMod(e.Modifiers())

	switch k := e.Key(); k {
	case tcell.KeyRune:
		return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune(), Mod: mods}
	case tcell.KeyEscape:
		return Event{Type: EventKey, Key: KeyEscape, Mod: mods}
	case tcell.KeyEnter:
		return Event{Type: EventKey, Key: KeyEnter, Mod: mods}
	case tcell.KeyTab:
		return Event{Type: EventKey, Key: KeyTab, Mod: mods}
	case tcell.KeyBacktab:
		return Event{Type: EventKey, Key: KeyTab, Mod: mods | ModShift}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Type: EventKey, Key: KeyBackspace, Mod: mods}
	case tcell.KeyDelete:
		return Event{Type: EventKey, Key: KeyDelete, Mod: mods}
	case tcell.KeyHome:
		return Event{Type: EventKey, Key: KeyHome, Mod: mods}
	case tcell.KeyEnd:
		return Event{Type: EventKey, Key: KeyEnd, Mod: mods}
	case tcell.KeyUp:
		return Event{Type: EventKey, Key: KeyUp, Mod: mods}
	case tcell.KeyDown:
		return Event{Type: EventKey, Key: KeyDown, Mod: mods}
	case tcell.KeyLeft:
		return Event{Type: EventKey, Key: KeyLeft, Mod: mods}
	case tcell.KeyRight:
		return Event{Type: EventKey, Key: KeyRight, Mod: mods}
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return Event{
				Type: EventKey,
				Key:  KeyRune,
				Rune: 'a' + rune(k-tcell.KeyCtrlA),
				Mod:  mods | ModCtrl,
			}
		}
		return Event{Type: EventNone}
	}
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	return result
}

// convertMouseButton converts tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseRight
	default:
		return MouseNone
	}
}
