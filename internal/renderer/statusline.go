package renderer

import (
	"strings"

	"github.com/dshills/cluemark/internal/renderer/core"
)

// drawStatus renders the bottom status bar: input state, the active mode,
// and the shortcut legend built from the registry.
func (r *Renderer) drawStatus(v View, width, height int) {
	if height < 1 {
		return
	}
	row := height - 1

	for x := 0; x < width; x++ {
		r.backend.SetCell(x, row, core.Cell{Rune: ' ', Style: r.theme.Status})
	}

	state := " " + strings.ToUpper(v.Session.State().String()) + " "
	x := r.drawText(0, row, state, r.theme.Status.Bold())

	reg := v.Session.Registry()
	active := v.Session.ActiveMode()
	for _, m := range reg.Modes() {
		d, err := reg.Descriptor(m)
		if err != nil {
			continue
		}
		label := " " + string(d.Key) + ":" + d.Label + " "
		style := r.theme.Status
		if m == active {
			style = style.Bold().Underline()
		}
		x = r.drawText(x+1, row, label, style)
	}
}
