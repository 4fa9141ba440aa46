package layout

import (
	"github.com/gogpu/fontstash/font"
)

// Coverage reports glyph coverage of a font. glyph.Face implements it.
type Coverage interface {
	GlyphIndex(r rune) font.GlyphIndex
}

// Run is a maximal substring with the same primary-font coverage.
type Run struct {
	Text       string
	Start, End int // byte offsets in the input

	// Primary reports whether the primary font covers the run.
	Primary bool

	// Font is the index of the font that renders the run: 0 for the
	// primary font, otherwise the first fallback covering the run.
	Font int
}

// Segment splits text into runs by coverage of fonts[0]. A run of a single
// codepoint is merged into the preceding run, or into the following one
// when it starts the text; runs with the same coverage are then joined.
// Concatenating the runs' Text reproduces text.
//
// Runs not covered by the primary font are assigned the first fallback
// font that covers their first uncovered codepoint, or the primary font
// when none does.
func Segment(text string, fonts []Coverage) []Run {
	if text == "" || len(fonts) == 0 {
		return nil
	}
	primary := fonts[0]

	type raw struct {
		start, end int
		count      int
		covered    bool
	}

	var runs []raw
	for _, cp := range Decode(text) {
		covered := primary.GlyphIndex(cp.Rune) != 0
		end := cp.Offset + cp.Width
		if n := len(runs); n > 0 && runs[n-1].covered == covered {
			runs[n-1].end = end
			runs[n-1].count++
			continue
		}
		runs = append(runs, raw{start: cp.Offset, end: end, count: 1, covered: covered})
	}

	var merged []raw
	for _, r := range runs {
		n := len(merged)
		switch {
		case n == 0:
			merged = append(merged, r)
		case r.count == 1 || merged[n-1].covered == r.covered:
			merged[n-1].end = r.end
			merged[n-1].count += r.count
		case n == 1 && merged[0].count == 1:
			// A leading single codepoint joins the run after it.
			r.start = merged[0].start
			r.count += merged[0].count
			merged[0] = r
		default:
			merged = append(merged, r)
		}
	}

	out := make([]Run, len(merged))
	for i, r := range merged {
		out[i] = Run{
			Text:    text[r.start:r.end],
			Start:   r.start,
			End:     r.end,
			Primary: r.covered,
		}
		if !r.covered {
			out[i].Font = fallbackFor(text[r.start:r.end], fonts)
		}
	}
	return out
}

// fallbackFor returns the index of the first fallback font covering the
// first codepoint of s not covered by fonts[0], or 0.
func fallbackFor(s string, fonts []Coverage) int {
	for _, r := range s {
		if fonts[0].GlyphIndex(r) != 0 {
			continue
		}
		for i := 1; i < len(fonts); i++ {
			if fonts[i].GlyphIndex(r) != 0 {
				return i
			}
		}
		return 0
	}
	return 0
}

// Runs segments text against the layout's faces, the first one primary.
func (l *Layout) Runs(text string) []Run {
	faces := l.glyphs.Faces()
	cov := make([]Coverage, len(faces))
	for i, f := range faces {
		cov[i] = f
	}
	return Segment(text, cov)
}
