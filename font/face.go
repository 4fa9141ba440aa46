package font

import (
	"fmt"
	"image"
	"math"

	gotext "github.com/go-text/typesetting/font"
)

// Metrics holds the vertical metrics of a Face at its current size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent float64

	// LineHeight is the baseline-to-baseline distance including the line gap.
	LineHeight float64

	// Scale converts font units to pixels.
	Scale float64
}

// GlyphMetrics describes one glyph at the current scale.
// The bitmap box (X0, Y0)-(X1, Y1) is in pixels relative to the pen
// position on the baseline, y pointing down. Advance and LSB are in font
// units.
type GlyphMetrics struct {
	X0, Y0, X1, Y1 int
	Advance        int
	LSB            int
}

// Width returns the width of the bitmap box.
func (m GlyphMetrics) Width() int { return m.X1 - m.X0 }

// Height returns the height of the bitmap box.
func (m GlyphMetrics) Height() int { return m.Y1 - m.Y0 }

// Face is one Font at a pixel size.
//
// The size is the distance from the ascender to the descender in pixels,
// multiplied by the face ratio. Metrics are re-derived in O(1) on every
// size or ratio change.
//
// A Face holds one reference on its Font until Close. Face is not safe for
// concurrent use: it is owned by one FontSystem.
type Face struct {
	font   *Font
	size   float64
	ratio  float64
	m      Metrics
	closed bool

	scratch *image.Alpha // dense raster target, grown and never shrunk
}

// NewFace creates a Face over f and acquires a reference on it.
// The face starts at size zero; call Recalculate before use.
func NewFace(f *Font) (*Face, error) {
	if err := f.Acquire(); err != nil {
		return nil, err
	}
	return &Face{font: f, ratio: 1}, nil
}

// Font returns the shared font.
func (fc *Face) Font() *Font {
	return fc.font
}

// Size returns the pixel size the metrics were last computed for.
func (fc *Face) Size() float64 {
	return fc.size
}

// Ratio returns the size multiplier of this face.
func (fc *Face) Ratio() float64 {
	return fc.ratio
}

// SetRatio sets the size multiplier used to balance fonts with different
// design heights, and recomputes the metrics.
func (fc *Face) SetRatio(r float64) {
	if r <= 0 {
		r = 1
	}
	fc.ratio = r
	fc.Recalculate(fc.size)
}

// Recalculate recomputes ascent, descent, line height and scale for size.
func (fc *Face) Recalculate(size float64) {
	fc.size = size
	ascent, descent, lineGap := fc.font.VMetrics()
	fh := float64(ascent + descent)
	px := size * fc.ratio

	fc.m = Metrics{
		Ascent:     float64(ascent) / fh * px,
		Descent:    float64(descent) / fh * px,
		LineHeight: (fh + float64(lineGap)) / fh * px,
		Scale:      px / fh,
	}
}

// Metrics returns the metrics at the current size.
func (fc *Face) Metrics() Metrics {
	return fc.m
}

// PPEM returns the pixels per em at the current size, the size a shaper
// expects.
func (fc *Face) PPEM() float64 {
	return fc.m.Scale * float64(fc.font.UnitsPerEm())
}

// Typeface returns the shaping view of the underlying font.
func (fc *Face) Typeface() (*gotext.Font, error) {
	if fc.closed {
		return nil, ErrClosed
	}
	return fc.font.Typeface()
}

// GlyphIndex returns the glyph index for r, or 0 if the font does not cover it.
func (fc *Face) GlyphIndex(r rune) GlyphIndex {
	if fc.closed {
		return 0
	}
	return fc.font.GlyphIndex(r)
}

// KernAdvance returns the kerning adjustment between two glyphs in font units.
func (fc *Face) KernAdvance(a, b GlyphIndex) int {
	if fc.closed {
		return 0
	}
	return fc.font.KernAdvance(a, b)
}

// GlyphMetrics returns the bitmap box at the current scale, together with
// the advance width and left side bearing in font units.
func (fc *Face) GlyphMetrics(g GlyphIndex) (GlyphMetrics, error) {
	b, err := fc.backend()
	if err != nil {
		return GlyphMetrics{}, err
	}

	advance, lsb, err := b.HMetrics(g)
	if err != nil {
		return GlyphMetrics{}, err
	}
	minX, minY, maxX, maxY, err := b.Bounds(g)
	if err != nil {
		return GlyphMetrics{}, err
	}

	s := fc.m.Scale
	gm := GlyphMetrics{Advance: advance, LSB: lsb}
	if maxX > minX && maxY > minY {
		gm.X0 = int(math.Floor(float64(minX) * s))
		gm.Y0 = int(math.Floor(float64(minY) * s))
		gm.X1 = int(math.Ceil(float64(maxX) * s))
		gm.Y1 = int(math.Ceil(float64(maxY) * s))
	}
	return gm, nil
}

// RenderGlyph writes the coverage of glyph g into a width×height region of
// dst whose rows are stride bytes apart. The region origin maps to the
// glyph box origin (X0, Y0).
func (fc *Face) RenderGlyph(dst []byte, width, height, stride int, g GlyphIndex) error {
	segs, gm, err := fc.outline(dst, width, height, stride, g)
	if err != nil || len(segs) == 0 {
		return err
	}
	img := scratchFor(&fc.scratch, width, height)
	fillOutline(img, segs, -float64(gm.X0), -float64(gm.Y0))
	blit(dst, stride, img)
	return nil
}

// StrokeGlyph is like RenderGlyph but also strokes the outline with the
// given radius. The region must leave radius pixels of room around the
// glyph box; the box origin maps to (radius, radius).
func (fc *Face) StrokeGlyph(dst []byte, width, height, stride int, g GlyphIndex, radius float64) error {
	segs, gm, err := fc.outline(dst, width, height, stride, g)
	if err != nil || len(segs) == 0 {
		return err
	}
	img := scratchFor(&fc.scratch, width, height)
	strokeOutline(img, segs, radius-float64(gm.X0), radius-float64(gm.Y0), radius)
	blit(dst, stride, img)
	return nil
}

// Outline returns the glyph outline at the current scale.
func (fc *Face) Outline(g GlyphIndex) ([]Segment, error) {
	b, err := fc.backend()
	if err != nil {
		return nil, err
	}
	return b.Outline(g, fc.m.Scale)
}

func (fc *Face) outline(dst []byte, width, height, stride int, g GlyphIndex) ([]Segment, GlyphMetrics, error) {
	if width <= 0 || height <= 0 {
		return nil, GlyphMetrics{}, nil
	}
	if stride < width || len(dst) < (height-1)*stride+width {
		return nil, GlyphMetrics{}, fmt.Errorf("font: region %dx%d stride %d exceeds buffer of %d bytes",
			width, height, stride, len(dst))
	}
	gm, err := fc.GlyphMetrics(g)
	if err != nil {
		return nil, GlyphMetrics{}, err
	}
	segs, err := fc.Outline(g)
	if err != nil {
		return nil, GlyphMetrics{}, err
	}
	return segs, gm, nil
}

func (fc *Face) backend() (Backend, error) {
	if fc.closed {
		return nil, ErrClosed
	}
	b := fc.font.parsed()
	if b == nil {
		return nil, ErrClosed
	}
	return b, nil
}

// Close releases the face's reference on its Font. Close is idempotent.
func (fc *Face) Close() error {
	if fc.closed {
		return nil
	}
	fc.closed = true
	return fc.font.Close()
}
