package renderer

import (
	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/renderer/core"
)

// drawClue renders the wrapped clue text with segment and selection styling,
// plus one annotation row under each text row carrying the resolutions and
// wordplay names of the segments starting there. Returns the screen row
// after the block.
func (r *Renderer) drawClue(v View) int {
	clue := v.Session.Clue()
	segments := clue.Segments()
	selection, hasSelection := v.Session.Selection()

	for row := 0; row < r.layout.Rows(); row++ {
		start, end := r.layout.Line(row)
		screenRow := clueTop + row*2

		for idx := start; idx < end; idx++ {
			_, col, ok := r.layout.Pos(idx)
			if !ok {
				continue
			}
			style := r.theme.Text
			if seg, tagged := segmentCovering(segments, idx); tagged {
				style = r.theme.ModeStyle(seg.Mode)
			}
			if hasSelection && selection.Contains(idx) {
				style = style.Reverse()
			}
			r.backend.SetCell(clueLeft+col, screenRow, core.Cell{
				Rune:  r.layout.runes[idx],
				Style: style,
			})
		}

		r.drawAnnotationRow(segments, row, screenRow+1)
	}

	return clueTop + r.layout.Rows()*2
}

// drawAnnotationRow writes each segment's display text under the row where
// the segment starts. Later segments overwrite earlier ones on collision;
// segments are start-sorted so the nearer label wins.
func (r *Renderer) drawAnnotationRow(segments []annotate.Segment, layoutRow, screenRow int) {
	for _, seg := range segments {
		segRow, col, ok := r.layout.Pos(seg.Start)
		if !ok || segRow != layoutRow {
			continue
		}
		display := seg.Wordplay.DisplayName()
		if display == "" {
			display = seg.Resolution
		}
		if display == "" {
			continue
		}
		r.drawText(clueLeft+col, screenRow, display, r.theme.ModeStyle(seg.Mode).Dim())
	}
}

func segmentCovering(segments []annotate.Segment, idx int) (annotate.Segment, bool) {
	for _, seg := range segments {
		if seg.Contains(idx) {
			return seg, true
		}
	}
	return annotate.Segment{}, false
}
