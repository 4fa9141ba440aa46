package fontstash

import (
	"image"
	"image/color"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fontstash/atlas"
)

// DrawCommand draws one glyph: the Src rectangle of an atlas stretched
// over the Dst rectangle of the target, tinted with Color.
type DrawCommand struct {
	// Texture is the GPU texture of Atlas, or nil when the font system
	// has no texture creator.
	Texture gpucontext.Texture

	// Atlas holds the glyph coverage.
	Atlas *atlas.Atlas

	// Dst is the destination rectangle in target pixels.
	Dst image.Rectangle

	// Src is the glyph region in atlas texels.
	Src image.Rectangle

	Color color.Color
	Depth float64
}

// Sink consumes draw commands, typically a sprite batch.
type Sink interface {
	Draw(cmd DrawCommand) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(cmd DrawCommand) error

// Draw implements Sink.
func (f SinkFunc) Draw(cmd DrawCommand) error { return f(cmd) }

// texture returns the up-to-date texture of a, uploading pending glyphs.
// Without a creator it returns nil.
func (s *FontSystem) texture(a *atlas.Atlas) (gpucontext.Texture, error) {
	if s.opts.creator == nil {
		return nil, nil
	}
	return a.Upload(s.opts.creator)
}
