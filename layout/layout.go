// Package layout positions glyphs of a codepoint sequence: advances,
// kerning, line breaks, line metrics, bounds and run segmentation.
//
// Layout works in two coordinate spaces. Quads are computed in unscaled
// layout space with the pen starting at (0, ascent). Output rectangles and
// bounds are mapped to the target by the scale vector and the rounded
// start position. Rounding happens only at that final conversion.
package layout

import (
	"image"
	"math"

	"github.com/gogpu/fontstash/glyph"
)

// Glyphs resolves codepoints to glyph records. *glyph.Cache implements it.
type Glyphs interface {
	// Get returns the glyph with its bitmap placed in an atlas, or nil
	// when the codepoint is skipped.
	Get(size float64, r rune) (*glyph.Glyph, error)

	// Resolve returns the glyph record without placing its bitmap.
	Resolve(size float64, r rune) *glyph.Glyph

	// Faces returns the faces in priority order.
	Faces() []glyph.Face
}

// Options controls a layout pass.
type Options struct {
	Size        float64 // pixel size
	Spacing     float64 // extra advance between glyphs
	LineSpacing float64 // extra distance between lines
	ScaleX      float64 // zero means 1
	ScaleY      float64 // zero means 1
	Kerning     bool
	Stroke      int // stroke radius, widens measured bounds
}

// Quad is a glyph quad in layout space with atlas texture coordinates.
type Quad struct {
	X0, Y0, X1, Y1 float64
	S0, T0, S1, T1 float64
}

// Placed is a glyph positioned by Draw.
type Placed struct {
	Glyph *glyph.Glyph

	// Index is the codepoint position in the input. Line breaks and
	// skipped codepoints count.
	Index int

	// Quad is the glyph quad in layout space.
	Quad Quad

	// Dst is the destination rectangle in target pixels.
	Dst image.Rectangle

	// Src is the glyph region in atlas texels.
	Src image.Rectangle
}

// Bounds is an axis-aligned measurement rectangle.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Layout lays out text against a glyph source.
type Layout struct {
	Options
	glyphs Glyphs
}

// New creates a Layout.
func New(glyphs Glyphs, opts Options) *Layout {
	return &Layout{Options: opts, glyphs: glyphs}
}

func (l *Layout) scale() (sx, sy float64) {
	sx, sy = l.ScaleX, l.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// quad places g after prev at pen (x, y) and advances x past g.
// Kerning applies only between glyphs of the same face.
func (l *Layout) quad(g, prev *glyph.Glyph, x *float64, y float64) Quad {
	if prev != nil {
		adv := l.Spacing
		if l.Kerning && prev.Face == g.Face {
			adv += float64(g.Face.KernAdvance(prev.Index, g.Index)) * g.Scale
		}
		*x += adv
	}

	rx := *x + float64(g.XOffset)
	ry := y + float64(g.YOffset)
	q := Quad{
		X0: rx,
		Y0: ry,
		X1: rx + float64(g.Bounds.Dx()),
		Y1: ry + float64(g.Bounds.Dy()),
	}
	if a := g.Atlas; a != nil {
		q.S0 = float64(g.Bounds.Min.X) * a.InvWidth()
		q.T0 = float64(g.Bounds.Min.Y) * a.InvHeight()
		q.S1 = float64(g.Bounds.Max.X) * a.InvWidth()
		q.T1 = float64(g.Bounds.Max.Y) * a.InvHeight()
	}

	*x += g.Advance()
	return q
}

// rect maps a layout-space quad to target pixels.
func (l *Layout) rect(q Quad, x, y float64) image.Rectangle {
	sx, sy := l.scale()
	x0 := int(math.Round(x + q.X0*sx))
	y0 := int(math.Round(y + q.Y0*sy))
	w := int(math.Round((q.X1 - q.X0) * sx))
	h := int(math.Round((q.Y1 - q.Y0) * sy))
	return image.Rect(x0, y0, x0+w, y0+h)
}

func sourceRect(g *glyph.Glyph, q Quad) image.Rectangle {
	a := g.Atlas
	if a == nil {
		return image.Rectangle{}
	}
	w, h := float64(a.Width()), float64(a.Height())
	return image.Rect(
		int(math.Round(q.S0*w)), int(math.Round(q.T0*h)),
		int(math.Round(q.S1*w)), int(math.Round(q.T1*h)),
	)
}

// Draw lays out cps starting at (x, y), the top-left of the first line,
// and calls fn for every non-empty glyph. Glyph bitmaps are placed in
// atlases as needed. It returns the pen x position after the last glyph.
func (l *Layout) Draw(cps []Codepoint, x, y float64, fn func(Placed)) (float64, error) {
	if len(cps) == 0 {
		return 0, nil
	}
	m := l.Metrics(cps)
	x, y = math.Round(x), math.Round(y)

	ox, oy := 0.0, m.Ascent
	var prev *glyph.Glyph
	for i, cp := range cps {
		if cp.Rune == '\n' {
			ox = 0
			oy += m.LineHeight
			prev = nil
			continue
		}

		g, err := l.glyphs.Get(l.Size, cp.Rune)
		if err != nil {
			return 0, err
		}
		if g == nil {
			prev = nil
			continue
		}

		q := l.quad(g, prev, &ox, oy)
		if !g.IsEmpty() {
			fn(Placed{
				Glyph: g,
				Index: i,
				Quad:  q,
				Dst:   l.rect(q, x, y),
				Src:   sourceRect(g, q),
			})
		}
		prev = g
	}

	sx, _ := l.scale()
	return x + ox*sx, nil
}

// Bounds measures cps laid out from (x, y) without placing any glyph
// bitmap. The right edge includes twice the stroke radius. It also
// returns the advance of the last line.
func (l *Layout) Bounds(cps []Codepoint, x, y float64) (Bounds, float64) {
	if len(cps) == 0 {
		return Bounds{}, 0
	}
	m := l.Metrics(cps)
	x, y = math.Round(x), math.Round(y)

	ox, oy := 0.0, m.Ascent
	minX, maxX := 0.0, 0.0
	minY, maxY := oy, oy
	var prev *glyph.Glyph
	for _, cp := range cps {
		if cp.Rune == '\n' {
			ox = 0
			oy += m.LineHeight
			prev = nil
			continue
		}
		g := l.glyphs.Resolve(l.Size, cp.Rune)
		if g == nil {
			prev = nil
			continue
		}

		q := l.quad(g, prev, &ox, oy)
		minX = min(minX, q.X0)
		maxX = max(maxX, ox)
		minY = min(minY, q.Y0)
		maxY = max(maxY, q.Y1)
		prev = g
	}

	sx, sy := l.scale()
	b := Bounds{
		MinX: x + minX*sx,
		MinY: y + minY*sy,
		MaxX: x + maxX*sx + float64(2*l.Stroke),
		MaxY: y + maxY*sy,
	}
	return b, ox * sx
}

// Rects returns one rectangle per codepoint of cps laid out from (x, y),
// for caret placement and hit testing. Line breaks and skipped codepoints
// get a zero-width rectangle spanning the line at the current pen.
func (l *Layout) Rects(cps []Codepoint, x, y float64) []image.Rectangle {
	if len(cps) == 0 {
		return nil
	}
	m := l.Metrics(cps)
	x, y = math.Round(x), math.Round(y)

	rects := make([]image.Rectangle, 0, len(cps))
	ox, oy := 0.0, m.Ascent
	var prev *glyph.Glyph
	caret := func() image.Rectangle {
		return l.rect(Quad{X0: ox, Y0: oy - m.Ascent, X1: ox, Y1: oy - m.Ascent + m.LineHeight}, x, y)
	}
	for _, cp := range cps {
		if cp.Rune == '\n' {
			rects = append(rects, caret())
			ox = 0
			oy += m.LineHeight
			prev = nil
			continue
		}
		g := l.glyphs.Resolve(l.Size, cp.Rune)
		if g == nil {
			rects = append(rects, caret())
			prev = nil
			continue
		}
		q := l.quad(g, prev, &ox, oy)
		rects = append(rects, l.rect(q, x, y))
		prev = g
	}
	return rects
}
