package layout

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/fontstash/glyph"
	"github.com/gogpu/fontstash/internal/fonttest"
)

// Glyphs of the test faces are 6x8 boxes on the baseline advancing by 7.
// With the default padding of 2 every placed glyph quad is 10x12 starting
// 2 texels left of the pen and 10 above the baseline.
func newTestLayout(t *testing.T, opts Options, faces ...glyph.Face) (*Layout, *glyph.Cache) {
	t.Helper()
	cfg := glyph.DefaultConfig()
	cfg.DefaultChar = nil
	c, err := glyph.NewCache(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range faces {
		c.AddFace(f)
	}
	if opts.Size == 0 {
		opts.Size = 12
	}
	return New(c, opts), c
}

func faceA() *fonttest.Face { return fonttest.New(10, 2).AddRunes("abcd ", 6, 8, 7) }
func faceB() *fonttest.Face { return fonttest.New(8, 5).AddRunes("xyz", 6, 8, 7) }

func draw(t *testing.T, l *Layout, text string, x, y float64) ([]Placed, float64) {
	t.Helper()
	var out []Placed
	end, err := l.Draw(Decode(text), x, y, func(p Placed) { out = append(out, p) })
	if err != nil {
		t.Fatal(err)
	}
	return out, end
}

func TestDraw_Basic(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA())
	got, end := draw(t, l, "ab", 0, 0)
	if len(got) != 2 {
		t.Fatalf("placed %d glyphs, want 2", len(got))
	}
	if want := image.Rect(-2, 0, 8, 12); got[0].Dst != want {
		t.Errorf("a.Dst = %v, want %v", got[0].Dst, want)
	}
	if want := image.Rect(5, 0, 15, 12); got[1].Dst != want {
		t.Errorf("b.Dst = %v, want %v", got[1].Dst, want)
	}
	if got[0].Src != got[0].Glyph.Bounds {
		t.Errorf("a.Src = %v, want the atlas bounds %v", got[0].Src, got[0].Glyph.Bounds)
	}
	if end != 14 {
		t.Errorf("end = %v, want 14", end)
	}
}

func TestDraw_LineBreak(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA())
	got, _ := draw(t, l, "ab\ncd", 0, 0)
	if len(got) != 4 {
		t.Fatalf("placed %d glyphs, want 4", len(got))
	}
	a, c := got[0], got[2]
	lh := l.Metrics(Decode("ab\ncd")).LineHeight

	if c.Quad.X0 != a.Quad.X0 {
		t.Errorf("c.X0 = %v, want %v (origin x reset)", c.Quad.X0, a.Quad.X0)
	}
	if c.Quad.Y0-a.Quad.Y0 != lh {
		t.Errorf("line advance = %v, want %v", c.Quad.Y0-a.Quad.Y0, lh)
	}
	if c.Index != 3 {
		t.Errorf("c.Index = %d, want 3", c.Index)
	}
}

func TestDraw_Kerning(t *testing.T) {
	a := faceA()
	a.SetKern('a', 'b', -2)
	b := faceB()

	tests := []struct {
		name    string
		kerning bool
		text    string
		wantX0  float64
	}{
		{"enabled", true, "ab", 3},
		{"disabled", false, "ab", 5},
		{"across faces", true, "ax", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLayout(t, Options{Kerning: tt.kerning}, a, b)
			got, _ := draw(t, l, tt.text, 0, 0)
			if got[1].Quad.X0 != tt.wantX0 {
				t.Errorf("second X0 = %v, want %v", got[1].Quad.X0, tt.wantX0)
			}
		})
	}
}

func TestDraw_Spacing(t *testing.T) {
	l, _ := newTestLayout(t, Options{Spacing: 3}, faceA())
	got, end := draw(t, l, "ab", 0, 0)
	if got[1].Quad.X0 != 8 {
		t.Errorf("b.X0 = %v, want 8", got[1].Quad.X0)
	}
	if end != 17 {
		t.Errorf("end = %v, want 17", end)
	}
}

func TestDraw_Scale(t *testing.T) {
	l, _ := newTestLayout(t, Options{ScaleX: 2, ScaleY: 0.5}, faceA())
	got, end := draw(t, l, "ab", 0, 0)
	if want := image.Rect(-4, 0, 16, 6); got[0].Dst != want {
		t.Errorf("a.Dst = %v, want %v", got[0].Dst, want)
	}
	if got[0].Src.Dx() != 10 || got[0].Src.Dy() != 12 {
		t.Errorf("scale must not change the source rect: %v", got[0].Src)
	}
	if end != 28 {
		t.Errorf("end = %v, want 28", end)
	}
}

func TestDraw_RoundsStart(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA())
	got, _ := draw(t, l, "a", 10.4, 20.6)
	if want := image.Rect(8, 21, 18, 33); got[0].Dst != want {
		t.Errorf("a.Dst = %v, want %v", got[0].Dst, want)
	}
}

func TestDraw_SkipsMissing(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA())
	got, _ := draw(t, l, "a?b", 0, 0)
	if len(got) != 2 {
		t.Fatalf("placed %d glyphs, want 2", len(got))
	}
	if got[1].Index != 2 {
		t.Errorf("b.Index = %d, want 2", got[1].Index)
	}
	if got[1].Quad.X0 != 5 {
		t.Errorf("missing glyph should not advance: b.X0 = %v", got[1].Quad.X0)
	}
}

func TestDraw_SkippedCodepointBreaksKerning(t *testing.T) {
	a := faceA()
	a.SetKern('a', 'b', -2)
	l, _ := newTestLayout(t, Options{Kerning: true, Spacing: 3}, a)

	got, end := draw(t, l, "a?b", 0, 0)
	if got[1].Quad.X0 != 5 {
		t.Errorf("b.X0 = %v, want 5 without kerning or spacing across the gap", got[1].Quad.X0)
	}
	if end != 14 {
		t.Errorf("end = %v, want 14", end)
	}
	if _, adv := l.Bounds(Decode("a?b"), 0, 0); adv != 14 {
		t.Errorf("Bounds advance = %v, want 14", adv)
	}
	rects := l.Rects(Decode("a?b"), 0, 0)
	if rects[2].Min.X != 5 {
		t.Errorf("b rect starts at %d, want 5", rects[2].Min.X)
	}
}

func TestDraw_EmptyGlyphNotEmitted(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA())
	got, end := draw(t, l, "a b", 0, 0)
	if len(got) != 2 {
		t.Errorf("placed %d glyphs, want 2 (space has no area)", len(got))
	}
	if end != 21 {
		t.Errorf("end = %v, want 21", end)
	}
}

func TestDraw_Empty(t *testing.T) {
	l, c := newTestLayout(t, Options{}, faceA())
	got, end := draw(t, l, "", 5, 5)
	if len(got) != 0 || end != 0 {
		t.Errorf("empty text: %d glyphs, end %v", len(got), end)
	}
	if len(c.Atlases()) != 0 {
		t.Error("empty text should not create an atlas")
	}
}

func TestMetrics_MultiFont(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA(), faceB())

	m := l.Metrics(Decode("a"))
	if m.Ascent != 10 || m.Descent != 2 || m.LineHeight != 12 {
		t.Errorf("Metrics(a) = %+v", m)
	}
	m = l.Metrics(Decode("ax"))
	if m.Ascent != 10 || m.Descent != 5 || m.LineHeight != 13 {
		t.Errorf("Metrics(ax) = %+v, want ascent 10 descent 5 line height 13", m)
	}
	m = l.Metrics(Decode("\n"))
	if m.Ascent != 10 || m.LineHeight != 12 {
		t.Errorf("Metrics without glyphs = %+v, want the primary face", m)
	}

	l.LineSpacing = 2
	if m := l.Metrics(Decode("a")); m.LineHeight != 14 {
		t.Errorf("LineHeight with spacing = %v, want 14", m.LineHeight)
	}
}

func TestExtent_MultiFont(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA(), faceB())
	top, bottom := l.Extent()
	if top != -10 || bottom != 5 {
		t.Errorf("Extent() = (%v, %v), want (-10, 5)", top, bottom)
	}

	single, _ := newTestLayout(t, Options{}, faceA())
	top, bottom = single.Extent()
	if top != -10 || bottom != 2 {
		t.Errorf("single face Extent() = (%v, %v), want (-10, 2)", top, bottom)
	}
}

func TestBounds(t *testing.T) {
	l, c := newTestLayout(t, Options{}, faceA())
	b, adv := l.Bounds(Decode("ab"), 0, 0)
	want := Bounds{MinX: -2, MinY: 0, MaxX: 14, MaxY: 12}
	if b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}
	if adv != 14 {
		t.Errorf("advance = %v, want 14", adv)
	}
	if len(c.Atlases()) != 0 {
		t.Error("Bounds should not place glyph bitmaps")
	}
	if b.Width() != 16 || b.Height() != 12 {
		t.Errorf("size = %vx%v", b.Width(), b.Height())
	}
}

func TestBounds_StrokeAndLines(t *testing.T) {
	l, _ := newTestLayout(t, Options{Stroke: 1}, faceA())
	b, adv := l.Bounds(Decode("abc\nd"), 10, 0)
	if b.MaxX != 10+21+2 {
		t.Errorf("MaxX = %v, want %v", b.MaxX, 10+21+2)
	}
	if b.MaxY != 24 {
		t.Errorf("MaxY = %v, want 24", b.MaxY)
	}
	if adv != 7 {
		t.Errorf("advance of the last line = %v, want 7", adv)
	}
}

func TestBounds_MatchesDraw(t *testing.T) {
	l, _ := newTestLayout(t, Options{Kerning: true, Spacing: 1}, faceA())
	text := Decode("abc\ndab")
	b, _ := l.Bounds(text, 0, 0)
	placed, _ := draw(t, l, "abc\ndab", 0, 0)
	for _, p := range placed {
		r := p.Dst
		if float64(r.Min.X) < b.MinX || float64(r.Min.Y) < b.MinY || float64(r.Max.Y) > b.MaxY {
			t.Errorf("glyph %v outside bounds %+v", r, b)
		}
	}
}

func TestRects(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA())
	rects := l.Rects(Decode("a\nb?"), 0, 0)
	want := []image.Rectangle{
		image.Rect(-2, 0, 8, 12),
		image.Rect(7, 0, 7, 12),
		image.Rect(-2, 12, 8, 24),
		image.Rect(7, 12, 7, 24),
	}
	if len(rects) != len(want) {
		t.Fatalf("len = %d, want %d", len(rects), len(want))
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rects[%d] = %v, want %v", i, rects[i], want[i])
		}
	}
}

func TestRuns(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA(), faceB())
	runs := l.Runs("abxyzab")
	if len(runs) != 3 || runs[1].Text != "xyz" || runs[1].Font != 1 {
		t.Errorf("Runs = %+v", runs)
	}
}

func TestMeasureRuns_Unshaped(t *testing.T) {
	l, _ := newTestLayout(t, Options{}, faceA(), faceB())
	adv, err := l.MeasureRuns(&Shaper{}, l.Runs("abxyz"))
	if err != nil {
		t.Fatal(err)
	}
	_, want := l.Bounds(Decode("abxyz"), 0, 0)
	if math.Abs(adv-want) > 1e-9 {
		t.Errorf("MeasureRuns = %v, want %v", adv, want)
	}
}
