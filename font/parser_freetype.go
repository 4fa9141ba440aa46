package font

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// freetypeParser implements Parser using github.com/golang/freetype/truetype.
// It only understands TrueType outlines (glyf), not CFF.
type freetypeParser struct{}

// Parse implements Parser.Parse.
func (freetypeParser) Parse(data []byte) (Backend, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	upem := fixed.Int26_6(f.FUnitsPerEm()) << 6
	return &freetypeBackend{font: f, upem: upem}, nil
}

// freetypeBackend implements Backend over truetype.Font.
type freetypeBackend struct {
	font *truetype.Font
	upem fixed.Int26_6

	mu  sync.Mutex
	buf truetype.GlyphBuf
}

// UnitsPerEm implements Backend.UnitsPerEm.
func (b *freetypeBackend) UnitsPerEm() int {
	return int(b.font.FUnitsPerEm())
}

// VMetrics implements Backend.VMetrics.
// truetype does not expose the hhea line gap, so it is reported as zero.
func (b *freetypeBackend) VMetrics() (ascent, descent, lineGap int) {
	face := truetype.NewFace(b.font, &truetype.Options{
		Size:    float64(b.font.FUnitsPerEm()),
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	defer face.Close()

	m := face.Metrics()
	return fixedToUnits(m.Ascent), fixedToUnits(m.Descent), 0
}

// GlyphIndex implements Backend.GlyphIndex.
func (b *freetypeBackend) GlyphIndex(r rune) GlyphIndex {
	return GlyphIndex(b.font.Index(r))
}

// HMetrics implements Backend.HMetrics.
func (b *freetypeBackend) HMetrics(g GlyphIndex) (advance, lsb int, err error) {
	h := b.font.HMetric(b.upem, truetype.Index(g))
	return fixedToUnits(h.AdvanceWidth), fixedToUnits(h.LeftSideBearing), nil
}

// Bounds implements Backend.Bounds.
func (b *freetypeBackend) Bounds(g GlyphIndex) (minX, minY, maxX, maxY int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.buf.Load(b.font, b.upem, truetype.Index(g), xfont.HintingNone); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("font: glyph %d bounds: %w", g, err)
	}
	// GlyphBuf bounds are y-up.
	r := b.buf.Bounds
	return fixedToUnits(r.Min.X), fixedToUnits(-r.Max.Y), fixedToUnits(r.Max.X), fixedToUnits(-r.Min.Y), nil
}

// Kern implements Backend.Kern.
func (b *freetypeBackend) Kern(x0, x1 GlyphIndex) int {
	return fixedToUnits(b.font.Kern(b.upem, truetype.Index(x0), truetype.Index(x1)))
}

// Outline implements Backend.Outline.
func (b *freetypeBackend) Outline(g GlyphIndex, scale float64) ([]Segment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ppem := fixed.Int26_6(scale * float64(b.upem))
	if err := b.buf.Load(b.font, ppem, truetype.Index(g), xfont.HintingNone); err != nil {
		return nil, fmt.Errorf("font: glyph %d outline: %w", g, err)
	}

	var out []Segment
	start := 0
	for _, end := range b.buf.Ends {
		out = appendContour(out, b.buf.Points[start:end])
		start = end
	}
	return out, nil
}

// appendContour converts one closed TrueType contour to segments. Two
// consecutive off-curve points imply an on-curve point between them.
func appendContour(out []Segment, ps []truetype.Point) []Segment {
	if len(ps) == 0 {
		return out
	}

	pt := func(p truetype.Point) Point {
		return Point{X: fixedToFloat64(p.X), Y: -fixedToFloat64(p.Y)}
	}
	mid := func(a, b Point) Point {
		return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	}
	onCurve := func(p truetype.Point) bool { return p.Flags&0x01 != 0 }

	start := pt(ps[0])
	others := ps[1:]
	if !onCurve(ps[0]) {
		last := ps[len(ps)-1]
		if onCurve(last) {
			start = pt(last)
			others = ps[:len(ps)-1]
		} else {
			start = mid(start, pt(last))
			others = ps
		}
	}

	out = append(out, Segment{Op: SegmentMoveTo, Args: [3]Point{start}})
	q0, on0 := start, true
	for _, p := range others {
		q, on := pt(p), onCurve(p)
		switch {
		case on && on0:
			out = append(out, Segment{Op: SegmentLineTo, Args: [3]Point{q}})
		case on:
			out = append(out, Segment{Op: SegmentQuadTo, Args: [3]Point{q0, q}})
		case !on0:
			out = append(out, Segment{Op: SegmentQuadTo, Args: [3]Point{q0, mid(q0, q)}})
		}
		q0, on0 = q, on
	}
	if on0 {
		out = append(out, Segment{Op: SegmentLineTo, Args: [3]Point{start}})
	} else {
		out = append(out, Segment{Op: SegmentQuadTo, Args: [3]Point{q0, start}})
	}
	return out
}
