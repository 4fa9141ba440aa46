package layout

import (
	"github.com/gogpu/fontstash/font"
	"github.com/gogpu/fontstash/glyph"
)

// LineMetrics are the vertical metrics used to lay out lines of text.
type LineMetrics struct {
	Ascent     float64 // baseline of the first line below the top
	Descent    float64 // positive, below the baseline
	LineHeight float64 // baseline-to-baseline distance, line spacing included
}

// Metrics returns the line metrics for cps: the largest ascent, descent
// and line height among the faces that resolve its glyphs. Text that
// resolves no glyph uses the primary face. LineSpacing is added to the
// line height.
func (l *Layout) Metrics(cps []Codepoint) LineMetrics {
	var m LineMetrics
	var seen []glyph.Face
	for _, cp := range cps {
		if cp.Rune == '\n' {
			continue
		}
		g := l.glyphs.Resolve(l.Size, cp.Rune)
		if g == nil || contains(seen, g.Face) {
			continue
		}
		seen = append(seen, g.Face)
		m = maxMetrics(m, glyph.MetricsAt(g.Face, l.Size))
	}
	if len(seen) == 0 {
		if faces := l.glyphs.Faces(); len(faces) > 0 {
			m = maxMetrics(m, glyph.MetricsAt(faces[0], l.Size))
		}
	}
	m.LineHeight += l.LineSpacing
	return m
}

// Extent returns the vertical extent of a line relative to the baseline
// over every face: top is the smallest negated ascent (at most 0), bottom
// the largest descent. Mixed-script text set in any of the faces fits.
func (l *Layout) Extent() (top, bottom float64) {
	for _, f := range l.glyphs.Faces() {
		fm := glyph.MetricsAt(f, l.Size)
		top = min(top, -fm.Ascent)
		bottom = max(bottom, fm.Descent)
	}
	return top, bottom
}

func maxMetrics(m LineMetrics, fm font.Metrics) LineMetrics {
	return LineMetrics{
		Ascent:     max(m.Ascent, fm.Ascent),
		Descent:    max(m.Descent, fm.Descent),
		LineHeight: max(m.LineHeight, fm.LineHeight),
	}
}

func contains(faces []glyph.Face, f glyph.Face) bool {
	for _, s := range faces {
		if s == f {
			return true
		}
	}
	return false
}
