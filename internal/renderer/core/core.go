// Package core provides the shared cell, style, and geometry types for the
// renderer subsystem. It exists so the renderer and its backends can share
// types without an import cycle.
package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute represents text attributes (bold, underline, etc.).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a terminal color: the terminal default, a palette index, or a
// 24-bit RGB value.
type Color struct {
	R, G, B uint8
	// Indexed means R holds a palette index and G, B are ignored.
	Indexed bool
	// Default means the terminal's default color.
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255}
	ColorGreen   = Color{G: 255}
	ColorBlue    = Color{B: 255}
	ColorYellow  = Color{R: 255, G: 255}
	ColorCyan    = Color{G: 255, B: 255}
	ColorMagenta = Color{R: 255, B: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex parses "#RGB" or "#RRGGBB" into a true color.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	parse := func(s string) (uint8, error) {
		v, err := strconv.ParseUint(s, 16, 8)
		return uint8(v), err
	}

	var parts [3]string
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			parts[i] = string(hex[i]) + string(hex[i])
		}
	case 6:
		for i := 0; i < 3; i++ {
			parts[i] = hex[i*2 : i*2+2]
		}
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	var rgb [3]uint8
	for i, p := range parts {
		v, err := parse(p)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color: %q", hex)
		}
		rgb[i] = v
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns a readable representation, mainly for tests and logs.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns a copy with the foreground replaced.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a copy with the background replaced.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a copy with the bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Dim returns a copy with the dim attribute added.
func (s Style) Dim() Style {
	s.Attributes |= AttrDim
	return s
}

// Underline returns a copy with the underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Reverse returns a copy with the reverse-video attribute added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground == other.Foreground &&
		s.Background == other.Background &&
		s.Attributes == other.Attributes
}

// Cell is a single terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell with the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// ScreenRect is a rectangular screen region. Top/Left are inclusive,
// Bottom/Right exclusive.
type ScreenRect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// RectFromSize creates a rectangle from a position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the rectangle's width, never negative.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the rectangle's height, never negative.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains returns true if the cell at (row, col) lies inside the rectangle.
func (r ScreenRect) Contains(row, col int) bool {
	return row >= r.Top && row < r.Bottom && col >= r.Left && col < r.Right
}
