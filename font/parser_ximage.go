package font

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/fontstash/internal/logging"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements Parser using golang.org/x/image/font/sfnt.
type ximageParser struct{}

// Parse implements Parser.Parse.
func (ximageParser) Parse(data []byte) (Backend, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	return &ximageBackend{font: f, upem: fixed.Int26_6(f.UnitsPerEm()) << 6}, nil
}

// ximageBackend implements Backend over sfnt.Font.
//
// sfnt.Font is safe for concurrent use but sfnt.Buffer is not, so the
// scratch buffer is guarded by mu.
type ximageBackend struct {
	font *sfnt.Font
	upem fixed.Int26_6 // units per em as ppem: results come back in font units

	mu  sync.Mutex
	buf sfnt.Buffer
}

// UnitsPerEm implements Backend.UnitsPerEm.
func (b *ximageBackend) UnitsPerEm() int {
	return int(b.font.UnitsPerEm())
}

// VMetrics implements Backend.VMetrics.
func (b *ximageBackend) VMetrics() (ascent, descent, lineGap int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, err := b.font.Metrics(&b.buf, b.upem, xfont.HintingNone)
	if err != nil {
		return 0, 0, 0
	}
	ascent = fixedToUnits(m.Ascent)
	descent = fixedToUnits(m.Descent)
	lineGap = fixedToUnits(m.Height) - ascent - descent
	if lineGap < 0 {
		lineGap = 0
	}
	return ascent, descent, lineGap
}

// GlyphIndex implements Backend.GlyphIndex.
func (b *ximageBackend) GlyphIndex(r rune) GlyphIndex {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx, err := b.font.GlyphIndex(&b.buf, r)
	if err != nil {
		return 0
	}
	return GlyphIndex(idx)
}

// HMetrics implements Backend.HMetrics.
func (b *ximageBackend) HMetrics(g GlyphIndex) (advance, lsb int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bounds, adv, err := b.font.GlyphBounds(&b.buf, sfnt.GlyphIndex(g), b.upem, xfont.HintingNone)
	if err != nil {
		return 0, 0, fmt.Errorf("font: glyph %d metrics: %w", g, err)
	}
	return fixedToUnits(adv), fixedToUnits(bounds.Min.X), nil
}

// Bounds implements Backend.Bounds.
func (b *ximageBackend) Bounds(g GlyphIndex) (minX, minY, maxX, maxY int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bounds, _, err := b.font.GlyphBounds(&b.buf, sfnt.GlyphIndex(g), b.upem, xfont.HintingNone)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("font: glyph %d bounds: %w", g, err)
	}
	return fixedToUnits(bounds.Min.X), fixedToUnits(bounds.Min.Y),
		fixedToUnits(bounds.Max.X), fixedToUnits(bounds.Max.Y), nil
}

// Kern implements Backend.Kern.
func (b *ximageBackend) Kern(x0, x1 GlyphIndex) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	k, err := b.font.Kern(&b.buf, sfnt.GlyphIndex(x0), sfnt.GlyphIndex(x1), b.upem, xfont.HintingNone)
	if err != nil {
		// sfnt.ErrNotFound is the common case: no kern table or no pair.
		if !errors.Is(err, sfnt.ErrNotFound) {
			logging.Logger().Debug("font: kern lookup failed", "a", x0, "b", x1, "err", err)
		}
		return 0
	}
	return fixedToUnits(k)
}

// Outline implements Backend.Outline.
func (b *ximageBackend) Outline(g GlyphIndex, scale float64) ([]Segment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ppem := fixed.Int26_6(scale * float64(b.upem))
	segs, err := b.font.LoadGlyph(&b.buf, sfnt.GlyphIndex(g), ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("font: glyph %d outline: %w", g, err)
	}

	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		seg := Segment{}
		n := 0
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			seg.Op, n = SegmentMoveTo, 1
		case sfnt.SegmentOpLineTo:
			seg.Op, n = SegmentLineTo, 1
		case sfnt.SegmentOpQuadTo:
			seg.Op, n = SegmentQuadTo, 2
		case sfnt.SegmentOpCubeTo:
			seg.Op, n = SegmentCubeTo, 3
		}
		for i := 0; i < n; i++ {
			seg.Args[i] = Point{X: fixedToFloat64(s.Args[i].X), Y: fixedToFloat64(s.Args[i].Y)}
		}
		out = append(out, seg)
	}
	return out, nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// fixedToUnits converts a 26.6 value measured at ppem == unitsPerEm back
// to integer font units.
func fixedToUnits(x fixed.Int26_6) int {
	return int(x.Round())
}
