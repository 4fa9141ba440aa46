package fontstash

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// SoftwareSink draws glyphs onto an image on the CPU, using atlas coverage
// as a mask. Glyphs drawn at a different size than rasterized are scaled
// through a scratch buffer that grows to the largest glyph drawn so far and
// is never shrunk.
//
// SoftwareSink is not safe for concurrent use.
type SoftwareSink struct {
	// Target receives the glyphs.
	Target draw.Image

	// Scaler resamples scaled glyphs. Defaults to xdraw.ApproxBiLinear.
	Scaler xdraw.Scaler

	scratch *image.Alpha
}

// NewSoftwareSink creates a sink drawing onto dst.
func NewSoftwareSink(dst draw.Image) *SoftwareSink {
	return &SoftwareSink{Target: dst, Scaler: xdraw.ApproxBiLinear}
}

// Draw implements Sink.
func (s *SoftwareSink) Draw(cmd DrawCommand) error {
	if cmd.Atlas == nil {
		return ErrNilAtlas
	}
	if cmd.Dst.Empty() || cmd.Src.Empty() {
		return nil
	}

	var mask image.Image = cmd.Atlas.Image()
	mp := cmd.Src.Min
	if cmd.Dst.Size() != cmd.Src.Size() {
		m := s.scratchFor(cmd.Dst.Dx(), cmd.Dst.Dy())
		scaler := s.Scaler
		if scaler == nil {
			scaler = xdraw.ApproxBiLinear
		}
		scaler.Scale(m, m.Rect, mask, cmd.Src, xdraw.Src, nil)
		mask, mp = m, image.Point{}
	}

	c := cmd.Color
	if c == nil {
		c = color.White
	}
	draw.DrawMask(s.Target, cmd.Dst, image.NewUniform(c), image.Point{}, mask, mp, draw.Over)
	return nil
}

// ScratchSize returns the size of the scratch buffer.
func (s *SoftwareSink) ScratchSize() image.Point {
	if s.scratch == nil {
		return image.Point{}
	}
	return s.scratch.Rect.Size()
}

// scratchFor returns a w×h view of the scratch buffer at the origin,
// growing the buffer if needed.
func (s *SoftwareSink) scratchFor(w, h int) *image.Alpha {
	cur := s.ScratchSize()
	if w > cur.X || h > cur.Y {
		s.scratch = image.NewAlpha(image.Rect(0, 0, max(w, cur.X), max(h, cur.Y)))
	}
	return s.scratch.SubImage(image.Rect(0, 0, w, h)).(*image.Alpha)
}
