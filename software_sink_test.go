package fontstash

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/fontstash/atlas"
)

// solidAtlas returns an atlas whose r region has full coverage.
func solidAtlas(r image.Rectangle) *atlas.Atlas {
	a := atlas.New(32, 32)
	img := a.Image()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetAlpha(x, y, color.Alpha{A: 0xff})
		}
	}
	return a
}

func TestSoftwareSink_Draw(t *testing.T) {
	src := image.Rect(4, 4, 8, 8)
	a := solidAtlas(src)
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	sink := NewSoftwareSink(dst)

	red := color.RGBA{R: 0xff, A: 0xff}
	err := sink.Draw(DrawCommand{Atlas: a, Dst: image.Rect(2, 3, 6, 7), Src: src, Color: red})
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if got := dst.RGBAAt(2, 3); got != red {
		t.Errorf("pixel inside glyph = %v, want %v", got, red)
	}
	if got := dst.RGBAAt(5, 6); got != red {
		t.Errorf("pixel inside glyph = %v, want %v", got, red)
	}
	if got := dst.RGBAAt(6, 7); got.A != 0 {
		t.Errorf("pixel outside glyph = %v, want transparent", got)
	}
	if sink.ScratchSize() != (image.Point{}) {
		t.Errorf("unscaled draw allocated a scratch buffer of %v", sink.ScratchSize())
	}
}

func TestSoftwareSink_DefaultColor(t *testing.T) {
	src := image.Rect(0, 0, 2, 2)
	a := solidAtlas(src)
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))

	if err := NewSoftwareSink(dst).Draw(DrawCommand{Atlas: a, Dst: src, Src: src}); err != nil {
		t.Fatal(err)
	}
	if got, want := dst.RGBAAt(1, 1), (color.RGBA{0xff, 0xff, 0xff, 0xff}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestSoftwareSink_Scaled(t *testing.T) {
	src := image.Rect(0, 0, 4, 4)
	a := solidAtlas(src)
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	sink := NewSoftwareSink(dst)

	if err := sink.Draw(DrawCommand{Atlas: a, Dst: image.Rect(0, 0, 8, 8), Src: src, Color: color.White}); err != nil {
		t.Fatal(err)
	}
	if got := dst.RGBAAt(4, 4); got.A == 0 {
		t.Error("center of scaled glyph not drawn")
	}
	if got := dst.RGBAAt(10, 10); got.A != 0 {
		t.Errorf("pixel outside scaled glyph = %v, want transparent", got)
	}
	if got := sink.ScratchSize(); got != image.Pt(8, 8) {
		t.Errorf("ScratchSize() = %v, want (8,8)", got)
	}

	// The scratch buffer grows per axis and never shrinks.
	_ = sink.Draw(DrawCommand{Atlas: a, Dst: image.Rect(0, 0, 12, 2), Src: src})
	if got := sink.ScratchSize(); got != image.Pt(12, 8) {
		t.Errorf("ScratchSize() = %v, want (12,8)", got)
	}
	_ = sink.Draw(DrawCommand{Atlas: a, Dst: image.Rect(0, 0, 2, 2), Src: src})
	if got := sink.ScratchSize(); got != image.Pt(12, 8) {
		t.Errorf("ScratchSize() after a smaller glyph = %v, want (12,8)", got)
	}
}

func TestSoftwareSink_Errors(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	sink := NewSoftwareSink(dst)

	if err := sink.Draw(DrawCommand{Dst: dst.Rect, Src: dst.Rect}); !errors.Is(err, ErrNilAtlas) {
		t.Errorf("Draw(no atlas) = %v, want ErrNilAtlas", err)
	}
	if err := sink.Draw(DrawCommand{Atlas: atlas.New(4, 4)}); err != nil {
		t.Errorf("Draw(empty) = %v, want nil", err)
	}
}
