package renderer

import (
	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/renderer/core"
)

// Theme holds the styles for every drawn element. Mode styles come from
// configuration; anything missing falls back to the plain text style.
type Theme struct {
	Text      core.Style
	Title     core.Style
	Status    core.Style
	Message   core.Style
	Summary   core.Style
	Selection core.Style
	Modes     map[annotate.Mode]core.Style
}

// DefaultTheme returns the built-in color scheme.
func DefaultTheme() Theme {
	base := core.DefaultStyle()
	return Theme{
		Text:      base,
		Title:     base.Bold(),
		Status:    base.Reverse(),
		Message:   base.Dim(),
		Summary:   base.Bold(),
		Selection: base.Reverse(),
		Modes: map[annotate.Mode]core.Style{
			annotate.ModeFodder:       base.WithForeground(core.ColorYellow).Underline(),
			annotate.ModeSynonym:      base.WithForeground(core.ColorGreen).Underline(),
			annotate.ModeAbbreviation: base.WithForeground(core.ColorCyan).Underline(),
			annotate.ModeIndicator:    base.WithForeground(core.ColorMagenta).Underline(),
			annotate.ModeDefinition:   base.WithForeground(core.ColorBlue).Underline(),
		},
	}
}

// ModeStyle returns the style for a mode, falling back to the text style.
func (t Theme) ModeStyle(m annotate.Mode) core.Style {
	if s, ok := t.Modes[m]; ok {
		return s
	}
	return t.Text
}
