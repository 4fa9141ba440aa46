// Package fonttest provides in-memory faces with exact metrics for tests.
package fonttest

import (
	"errors"
	"image"

	"github.com/gogpu/fontstash/font"
)

// ErrRender is returned by RenderGlyph for glyphs marked as failing.
var ErrRender = errors.New("fonttest: render failed")

// Glyph is one glyph of a fake face.
type Glyph struct {
	Rune    rune
	Index   font.GlyphIndex
	Box     image.Rectangle // pixels relative to the pen, y down
	Advance int             // pixels, the fake scale is always 1
	Fail    bool
	NoBox   bool // GlyphMetrics fails
}

// Face is a fake glyph face. Its metrics do not depend on the size and its
// scale is always 1, so every value a test reads back is exact.
type Face struct {
	Ascent     float64
	Descent    float64
	LineHeight float64

	glyphs  []Glyph // index i+1
	byRune  map[rune]font.GlyphIndex
	kern    map[[2]font.GlyphIndex]int
	size    float64
	Renders int
	Recalcs int
}

// New returns an empty face. LineHeight defaults to ascent+descent.
func New(ascent, descent float64) *Face {
	return &Face{
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: ascent + descent,
		byRune:     make(map[rune]font.GlyphIndex),
		kern:       make(map[[2]font.GlyphIndex]int),
	}
}

// Add adds a glyph for r with the given box and advance and returns its index.
func (f *Face) Add(r rune, box image.Rectangle, advance int) font.GlyphIndex {
	idx := font.GlyphIndex(len(f.glyphs) + 1)
	f.glyphs = append(f.glyphs, Glyph{Rune: r, Index: idx, Box: box, Advance: advance})
	f.byRune[r] = idx
	return idx
}

// AddRunes adds a width×height glyph sitting on the baseline for every rune
// of s, each advancing by advance. A space gets an empty box.
func (f *Face) AddRunes(s string, width, height, advance int) *Face {
	for _, r := range s {
		box := image.Rect(0, -height, width, 0)
		if r == ' ' {
			box = image.Rectangle{}
		}
		f.Add(r, box, advance)
	}
	return f
}

// SetKern sets the kerning between the glyphs of a and b.
func (f *Face) SetKern(a, b rune, v int) {
	f.kern[[2]font.GlyphIndex{f.byRune[a], f.byRune[b]}] = v
}

// SetFail makes RenderGlyph fail for r.
func (f *Face) SetFail(r rune) {
	if idx := f.byRune[r]; idx != 0 {
		f.glyphs[idx-1].Fail = true
	}
}

// SetMetricsFail makes GlyphMetrics fail for r.
func (f *Face) SetMetricsFail(r rune) {
	if idx := f.byRune[r]; idx != 0 {
		f.glyphs[idx-1].NoBox = true
	}
}

// GlyphIndex returns the index for r, or 0 if not covered.
func (f *Face) GlyphIndex(r rune) font.GlyphIndex { return f.byRune[r] }

// Size returns the last size passed to Recalculate.
func (f *Face) Size() float64 { return f.size }

// Recalculate records the size.
func (f *Face) Recalculate(size float64) {
	f.size = size
	f.Recalcs++
}

// Metrics returns the fixed metrics.
func (f *Face) Metrics() font.Metrics {
	return font.Metrics{
		Ascent:     f.Ascent,
		Descent:    f.Descent,
		LineHeight: f.LineHeight,
		Scale:      1,
	}
}

// GlyphMetrics returns the box and advance of g.
func (f *Face) GlyphMetrics(g font.GlyphIndex) (font.GlyphMetrics, error) {
	gl, err := f.glyph(g)
	if err != nil {
		return font.GlyphMetrics{}, err
	}
	if gl.NoBox {
		return font.GlyphMetrics{}, errors.New("fonttest: metrics failed")
	}
	return font.GlyphMetrics{
		X0:      gl.Box.Min.X,
		Y0:      gl.Box.Min.Y,
		X1:      gl.Box.Max.X,
		Y1:      gl.Box.Max.Y,
		Advance: gl.Advance,
	}, nil
}

// RenderGlyph fills the region with full coverage.
func (f *Face) RenderGlyph(dst []byte, width, height, stride int, g font.GlyphIndex) error {
	gl, err := f.glyph(g)
	if err != nil {
		return err
	}
	if gl.Fail {
		return ErrRender
	}
	f.Renders++
	for y := 0; y < height; y++ {
		row := dst[y*stride : y*stride+width]
		for x := range row {
			row[x] = 0xff
		}
	}
	return nil
}

// KernAdvance returns the kerning set with SetKern.
func (f *Face) KernAdvance(a, b font.GlyphIndex) int {
	return f.kern[[2]font.GlyphIndex{a, b}]
}

func (f *Face) glyph(g font.GlyphIndex) (Glyph, error) {
	if g == 0 || int(g) > len(f.glyphs) {
		return Glyph{}, errors.New("fonttest: no such glyph")
	}
	return f.glyphs[g-1], nil
}
