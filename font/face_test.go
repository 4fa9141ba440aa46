package font

import (
	"errors"
	"math"
	"testing"
)

func newGoRegularFace(t *testing.T, size float64, opts ...Option) *Face {
	t.Helper()
	f := loadGoRegular(t, opts...)
	face, err := NewFace(f)
	if err != nil {
		t.Fatal(err)
	}
	// The face now holds the only reference.
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	face.Recalculate(size)
	t.Cleanup(func() { _ = face.Close() })
	return face
}

func TestFaceRecalculatePixelHeight(t *testing.T) {
	face := newGoRegularFace(t, 32)

	m := face.Metrics()
	if got := m.Ascent + m.Descent; math.Abs(got-32) > 1e-9 {
		t.Errorf("Ascent+Descent = %v, want 32", got)
	}
	ascent, descent, lineGap := face.Font().VMetrics()
	if got := m.Scale * float64(ascent+descent); math.Abs(got-32) > 1e-9 {
		t.Errorf("Scale*(ascent+descent) = %v, want 32", got)
	}
	wantLH := float64(ascent+descent+lineGap) * m.Scale
	if math.Abs(m.LineHeight-wantLH) > 1e-9 {
		t.Errorf("LineHeight = %v, want %v", m.LineHeight, wantLH)
	}
	if face.Size() != 32 {
		t.Errorf("Size() = %v, want 32", face.Size())
	}
}

func TestFaceRecalculateIsProportional(t *testing.T) {
	face := newGoRegularFace(t, 16)
	m16 := face.Metrics()
	face.Recalculate(48)
	m48 := face.Metrics()

	if math.Abs(m48.Ascent-3*m16.Ascent) > 1e-9 {
		t.Errorf("Ascent(48) = %v, want %v", m48.Ascent, 3*m16.Ascent)
	}
	if math.Abs(m48.Scale-3*m16.Scale) > 1e-12 {
		t.Errorf("Scale(48) = %v, want %v", m48.Scale, 3*m16.Scale)
	}
}

func TestFaceRatio(t *testing.T) {
	face := newGoRegularFace(t, 20)
	base := face.Metrics()

	face.SetRatio(1.5)
	if face.Ratio() != 1.5 {
		t.Errorf("Ratio() = %v, want 1.5", face.Ratio())
	}
	m := face.Metrics()
	if math.Abs(m.Ascent-1.5*base.Ascent) > 1e-9 {
		t.Errorf("Ascent with ratio = %v, want %v", m.Ascent, 1.5*base.Ascent)
	}

	face.SetRatio(0)
	if face.Ratio() != 1 {
		t.Errorf("SetRatio(0) should reset to 1, got %v", face.Ratio())
	}
}

func TestFaceGlyphMetrics(t *testing.T) {
	face := newGoRegularFace(t, 32)

	gm, err := face.GlyphMetrics(face.GlyphIndex('A'))
	if err != nil {
		t.Fatal(err)
	}
	if gm.Width() <= 0 || gm.Height() <= 0 {
		t.Fatalf("'A' box = %+v, want non-empty", gm)
	}
	if gm.Y0 >= 0 {
		t.Errorf("'A' Y0 = %d, want above the baseline (negative)", gm.Y0)
	}
	if gm.Advance <= 0 {
		t.Errorf("'A' Advance = %d, want > 0", gm.Advance)
	}
	if float64(gm.Height()) > face.Metrics().Ascent+2 {
		t.Errorf("'A' height %d exceeds ascent %v", gm.Height(), face.Metrics().Ascent)
	}

	space, err := face.GlyphMetrics(face.GlyphIndex(' '))
	if err != nil {
		t.Fatal(err)
	}
	if space.Width() != 0 || space.Height() != 0 {
		t.Errorf("space box = %+v, want empty", space)
	}
	if space.Advance <= 0 {
		t.Errorf("space Advance = %d, want > 0", space.Advance)
	}
}

func countCoverage(buf []byte) int {
	n := 0
	for _, v := range buf {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestFaceRenderGlyph(t *testing.T) {
	for _, parser := range []string{ParserXImage, ParserFreetype} {
		t.Run(parser, func(t *testing.T) {
			face := newGoRegularFace(t, 32, WithParser(parser))
			g := face.GlyphIndex('H')
			gm, err := face.GlyphMetrics(g)
			if err != nil {
				t.Fatal(err)
			}

			w, h := gm.Width(), gm.Height()
			buf := make([]byte, w*h)
			if err := face.RenderGlyph(buf, w, h, w, g); err != nil {
				t.Fatalf("RenderGlyph() error = %v", err)
			}
			if n := countCoverage(buf); n < w*h/8 {
				t.Errorf("'H' coverage = %d of %d pixels, want a solid glyph", n, w*h)
			}
		})
	}
}

func TestFaceRenderGlyphStride(t *testing.T) {
	face := newGoRegularFace(t, 24)
	g := face.GlyphIndex('M')
	gm, err := face.GlyphMetrics(g)
	if err != nil {
		t.Fatal(err)
	}

	w, h := gm.Width(), gm.Height()
	dense := make([]byte, w*h)
	if err := face.RenderGlyph(dense, w, h, w, g); err != nil {
		t.Fatal(err)
	}

	stride := w + 10
	buf := make([]byte, stride*h)
	if err := face.RenderGlyph(buf, w, h, stride, g); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < stride; x++ {
			got := buf[y*stride+x]
			if x >= w {
				if got != 0 {
					t.Fatalf("pixel (%d,%d) outside the region was written", x, y)
				}
				continue
			}
			if want := dense[y*w+x]; got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d as in the dense render", x, y, got, want)
			}
		}
	}
	if countCoverage(buf) == 0 {
		t.Error("no coverage written")
	}
}

func TestFaceStrokeGlyphStride(t *testing.T) {
	face := newGoRegularFace(t, 24)
	g := face.GlyphIndex('O')
	gm, err := face.GlyphMetrics(g)
	if err != nil {
		t.Fatal(err)
	}

	const radius = 2
	w, h := gm.Width()+2*radius, gm.Height()+2*radius
	dense := make([]byte, w*h)
	if err := face.StrokeGlyph(dense, w, h, w, g, radius); err != nil {
		t.Fatal(err)
	}

	stride := 3 * w
	buf := make([]byte, stride*h)
	if err := face.StrokeGlyph(buf, w, h, stride, g, radius); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < stride; x++ {
			want := byte(0)
			if x < w {
				want = dense[y*w+x]
			}
			if got := buf[y*stride+x]; got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestFaceRenderGlyphSmallBuffer(t *testing.T) {
	face := newGoRegularFace(t, 24)
	err := face.RenderGlyph(make([]byte, 4), 10, 10, 10, face.GlyphIndex('A'))
	if err == nil {
		t.Error("RenderGlyph() into a short buffer should fail")
	}
}

func TestFaceStrokeGlyph(t *testing.T) {
	face := newGoRegularFace(t, 32)
	g := face.GlyphIndex('l')
	gm, err := face.GlyphMetrics(g)
	if err != nil {
		t.Fatal(err)
	}

	const radius = 3
	w, h := gm.Width()+2*radius, gm.Height()+2*radius

	fill := make([]byte, w*h)
	if err := face.RenderGlyph(fill, gm.Width(), gm.Height(), w, g); err != nil {
		t.Fatal(err)
	}
	stroke := make([]byte, w*h)
	if err := face.StrokeGlyph(stroke, w, h, w, g, radius); err != nil {
		t.Fatal(err)
	}
	if countCoverage(stroke) <= countCoverage(fill) {
		t.Errorf("stroked coverage %d should exceed filled coverage %d",
			countCoverage(stroke), countCoverage(fill))
	}
}

func TestFaceClosed(t *testing.T) {
	f := loadGoRegular(t)
	face, err := NewFace(f)
	if err != nil {
		t.Fatal(err)
	}
	face.Recalculate(16)

	if err := face.Close(); err != nil {
		t.Fatal(err)
	}
	if err := face.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if face.GlyphIndex('A') != 0 {
		t.Error("closed face should not resolve glyphs")
	}
	if _, err := face.GlyphMetrics(1); !errors.Is(err, ErrClosed) {
		t.Errorf("GlyphMetrics() on closed face = %v, want ErrClosed", err)
	}
	// The owner reference from New keeps the font alive.
	if f.Closed() {
		t.Error("font released while owner reference is held")
	}
	_ = f.Close()
}

func TestSegmentOpString(t *testing.T) {
	tests := []struct {
		op   SegmentOp
		want string
	}{
		{SegmentMoveTo, "MoveTo"},
		{SegmentLineTo, "LineTo"},
		{SegmentQuadTo, "QuadTo"},
		{SegmentCubeTo, "CubeTo"},
		{SegmentOp(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("SegmentOp(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
