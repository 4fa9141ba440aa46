package fontstash

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/fontstash/layout"
)

// Bounds is a measurement rectangle.
type Bounds = layout.Bounds

// DrawText draws text with its first line's top-left at (x, y) and returns
// the pen x position after the last glyph. Codepoints no font covers are
// drawn as the default character or skipped; '\n' starts a new line.
func (s *FontSystem) DrawText(sink Sink, x, y float64, text string, c color.Color, depth float64) (float64, error) {
	return s.draw(sink, x, y, s.decode(text), func(int) color.Color { return c }, depth)
}

// DrawTextUTF16 is like DrawText for UTF-16 code units. Surrogate pairs
// decode to one codepoint.
func (s *FontSystem) DrawTextUTF16(sink Sink, x, y float64, text []uint16, c color.Color, depth float64) (float64, error) {
	return s.draw(sink, x, y, layout.DecodeUTF16(text), func(int) color.Color { return c }, depth)
}

// DrawTextColors is like DrawText with one color per codepoint. Line
// breaks and skipped codepoints consume a color too.
func (s *FontSystem) DrawTextColors(sink Sink, x, y float64, text string, colors []color.Color, depth float64) (float64, error) {
	cps := s.decode(text)
	if len(colors) < len(cps) {
		return 0, fmt.Errorf("%w: %d colors for %d codepoints", ErrColorCount, len(colors), len(cps))
	}
	return s.draw(sink, x, y, cps, func(i int) color.Color { return colors[i] }, depth)
}

func (s *FontSystem) draw(sink Sink, x, y float64, cps []layout.Codepoint, colorAt func(int) color.Color, depth float64) (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}

	var drawErr error
	end, err := s.layout.Draw(cps, x, y, func(p layout.Placed) {
		if drawErr != nil {
			return
		}
		tex, err := s.texture(p.Glyph.Atlas)
		if err != nil {
			drawErr = fmt.Errorf("fontstash: upload atlas %d: %w", p.Glyph.Atlas.ID(), err)
			return
		}
		drawErr = sink.Draw(DrawCommand{
			Texture: tex,
			Atlas:   p.Glyph.Atlas,
			Dst:     p.Dst,
			Src:     p.Src,
			Color:   colorAt(p.Index),
			Depth:   depth,
		})
	})
	if err != nil {
		return 0, err
	}
	if drawErr != nil {
		return 0, drawErr
	}
	return end, nil
}

// TextBounds measures text laid out from (x, y) without rasterizing any
// glyph. The right edge includes twice the stroke radius. It also returns
// the advance of the last line.
func (s *FontSystem) TextBounds(x, y float64, text string) (Bounds, float64) {
	if s.closed {
		return Bounds{}, 0
	}
	return s.layout.Bounds(s.decode(text), x, y)
}

// MeasureString returns the width and height of text's bounds.
func (s *FontSystem) MeasureString(text string) (width, height float64) {
	b, _ := s.TextBounds(0, 0, text)
	return b.Width(), b.Height()
}

// MeasureShaped returns the advance of text shaped with HarfBuzz, run by
// run, each run set in the font that covers it. Line breaks are not
// interpreted.
func (s *FontSystem) MeasureShaped(text string) (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.layout.MeasureRuns(&s.shaper, s.Runs(text))
}

// GlyphRects returns one rectangle per codepoint of text laid out from
// (x, y), for caret placement and hit testing.
func (s *FontSystem) GlyphRects(x, y float64, text string) []image.Rectangle {
	if s.closed {
		return nil
	}
	return s.layout.Rects(s.decode(text), x, y)
}

// Runs splits text into runs covered by the primary font and runs set in
// a fallback font.
func (s *FontSystem) Runs(text string) []layout.Run {
	if s.opts.normalize {
		text = layout.Normalize(text)
	}
	return s.layout.Runs(text)
}

func (s *FontSystem) decode(text string) []layout.Codepoint {
	if s.opts.normalize {
		text = layout.Normalize(text)
	}
	return layout.Decode(text)
}

func (s *FontSystem) check() error {
	if s.closed {
		return ErrClosed
	}
	if len(s.cache.Faces()) == 0 {
		return ErrNoFonts
	}
	return nil
}
