// Package glyph caches rasterized glyphs per pixel size and places them in
// texture atlases.
package glyph

import (
	"image"

	"github.com/gogpu/fontstash/atlas"
	"github.com/gogpu/fontstash/font"
)

// Face is the per-size font view the cache rasterizes from.
// *font.Face implements Face.
type Face interface {
	// GlyphIndex returns the glyph index for r, or 0 if not covered.
	GlyphIndex(r rune) font.GlyphIndex

	// Size returns the pixel size of the current metrics.
	Size() float64

	// Recalculate recomputes the metrics for a new pixel size.
	Recalculate(size float64)

	// Metrics returns the metrics at the current size.
	Metrics() font.Metrics

	// GlyphMetrics returns the bitmap box and horizontal metrics of g.
	GlyphMetrics(g font.GlyphIndex) (font.GlyphMetrics, error)

	// RenderGlyph writes the coverage of g into a region of dst.
	RenderGlyph(dst []byte, width, height, stride int, g font.GlyphIndex) error

	// KernAdvance returns the kerning between two glyphs in font units.
	KernAdvance(a, b font.GlyphIndex) int
}

// Stroker is implemented by faces that can stroke glyph outlines.
type Stroker interface {
	StrokeGlyph(dst []byte, width, height, stride int, g font.GlyphIndex, radius float64) error
}

// Glyph is a cached glyph record.
//
// A Glyph is created once per (size, codepoint) and never modified except
// for the atlas placement, which is assigned exactly once.
type Glyph struct {
	// Face is the face that resolved the codepoint (not owned).
	Face Face

	// Codepoint is the requested codepoint.
	Codepoint rune

	// Index is the glyph index inside Face.
	Index font.GlyphIndex

	// Size is the pixel size the glyph was rasterized at.
	Size float64

	// Scale converts the face's font units to pixels at Size.
	Scale float64

	// Bounds is the padded glyph region inside Atlas. Before placement
	// only its size is meaningful. Glyphs without ink have empty bounds.
	Bounds image.Rectangle

	// XOffset and YOffset position Bounds relative to the pen on the baseline.
	XOffset, YOffset int

	// XAdvance is the advance width in font units.
	XAdvance int

	// Atlas holds the glyph bitmap, nil until placed and for empty glyphs.
	Atlas *atlas.Atlas
}

// IsEmpty reports whether the glyph has no area.
func (g *Glyph) IsEmpty() bool {
	return g.Bounds.Dx() == 0 || g.Bounds.Dy() == 0
}

// Placed reports whether the glyph is ready to draw: its bitmap lives in
// an atlas, or it has no bitmap at all.
func (g *Glyph) Placed() bool {
	return g.Atlas != nil || g.IsEmpty()
}

// Advance returns the advance width in pixels.
func (g *Glyph) Advance() float64 {
	return float64(g.XAdvance) * g.Scale
}

// source adapts a face glyph to atlas.Source.
type source struct {
	face  Face
	index font.GlyphIndex
}

func (s source) RenderGlyph(dst []byte, width, height, stride int) error {
	return s.face.RenderGlyph(dst, width, height, stride, s.index)
}

// strokeSource adds outline stroking for faces implementing Stroker.
type strokeSource struct {
	source
	stroker Stroker
}

func (s strokeSource) StrokeGlyph(dst []byte, width, height, stride int, radius float64) error {
	return s.stroker.StrokeGlyph(dst, width, height, stride, s.index, radius)
}

func newSource(face Face, index font.GlyphIndex) atlas.Source {
	src := source{face: face, index: index}
	if st, ok := face.(Stroker); ok {
		return strokeSource{source: src, stroker: st}
	}
	return src
}

// MetricsAt returns the metrics of f at size, recalculating them first if
// the face was last used at another size.
func MetricsAt(f Face, size float64) font.Metrics {
	sized(f, size)
	return f.Metrics()
}
