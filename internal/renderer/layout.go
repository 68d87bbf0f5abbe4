package renderer

import (
	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/renderer/core"
)

// lineSpan is the rune index range [start, end) placed on one wrapped row.
type lineSpan struct {
	start int
	end   int
}

// Layout maps rune indices of a clue to screen rows and columns under word
// wrap, and back again for mouse hits. It is rebuilt on every draw; building
// one is a single pass over the text.
type Layout struct {
	runes []rune
	width int
	lines []lineSpan
}

// NewLayout wraps text to the given width. Wrapping prefers to break at a
// space; a word longer than the width is broken mid-word. A non-positive
// width yields a single unwrapped line.
func NewLayout(text string, width int) *Layout {
	l := &Layout{runes: []rune(text), width: width}

	if len(l.runes) == 0 {
		return l
	}
	if width <= 0 {
		l.lines = []lineSpan{{start: 0, end: len(l.runes)}}
		return l
	}

	i := 0
	for i < len(l.runes) {
		if len(l.runes)-i <= width {
			l.lines = append(l.lines, lineSpan{start: i, end: len(l.runes)})
			break
		}

		breakAt := -1
		for j := i + width; j > i; j-- {
			if l.runes[j] == ' ' {
				breakAt = j
				break
			}
		}
		if breakAt < 0 {
			l.lines = append(l.lines, lineSpan{start: i, end: i + width})
			i += width
			continue
		}
		l.lines = append(l.lines, lineSpan{start: i, end: breakAt})
		i = breakAt + 1 // the break space is not rendered
	}

	return l
}

// Rows returns the number of wrapped rows.
func (l *Layout) Rows() int {
	return len(l.lines)
}

// Line returns the rune range shown on a row.
func (l *Layout) Line(row int) (start, end int) {
	if row < 0 || row >= len(l.lines) {
		return 0, 0
	}
	return l.lines[row].start, l.lines[row].end
}

// Pos returns the row and column of a rune index. A space swallowed at a
// wrap point maps to the column just past its line; an index outside the
// text returns false.
func (l *Layout) Pos(index int) (row, col int, ok bool) {
	if index < 0 || index >= len(l.runes) {
		return 0, 0, false
	}
	for r, line := range l.lines {
		if index < line.end {
			if index < line.start {
				// Swallowed wrap space before this line.
				prev := l.lines[r-1]
				return r - 1, prev.end - prev.start, true
			}
			return r, index - line.start, true
		}
	}
	last := len(l.lines) - 1
	return last, l.lines[last].end - l.lines[last].start, true
}

// IndexAt returns the rune index under a row and column. Columns past the
// end of a row clamp to the row's last rune. Rows outside the layout return
// false.
func (l *Layout) IndexAt(row, col int) (int, bool) {
	if row < 0 || row >= len(l.lines) {
		return 0, false
	}
	line := l.lines[row]
	if line.end <= line.start {
		return 0, false
	}
	if col < 0 {
		col = 0
	}
	if col >= line.end-line.start {
		col = line.end - line.start - 1
	}
	return line.start + col, true
}

// SpanRects returns the screen rectangles covering a rune span, one per
// wrapped row the span touches. Rows are relative to the layout, not the
// screen.
func (l *Layout) SpanRects(span annotate.Span) []core.ScreenRect {
	var rects []core.ScreenRect
	for row, line := range l.lines {
		start := span.Start
		if start < line.start {
			start = line.start
		}
		end := span.End
		if end > line.end-1 {
			end = line.end - 1
		}
		if start > end {
			continue
		}
		rects = append(rects, core.ScreenRect{
			Top:    row,
			Left:   start - line.start,
			Bottom: row + 1,
			Right:  end - line.start + 1,
		})
	}
	return rects
}
