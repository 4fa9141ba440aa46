package fontstash

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/fontstash/atlas"
	"github.com/gogpu/fontstash/font"
	"github.com/gogpu/fontstash/glyph"
	"github.com/gogpu/fontstash/internal/logging"
	"github.com/gogpu/fontstash/layout"
)

// DefaultSize is the initial font size in pixels.
const DefaultSize = 12

// FontSystem lays out and draws text with an ordered list of fonts.
//
// The first font added is the primary font; the others are fallbacks
// consulted in the order they were added. All drawing state (size,
// spacing, scale, kerning) applies to the next draw or measure call.
//
// FontSystem is not safe for concurrent use.
type FontSystem struct {
	opts   options
	cache  *glyph.Cache
	layout *layout.Layout
	shaper layout.Shaper
	owned  []*font.Face
	closed bool
}

// New creates a FontSystem. Options are validated once here: invalid
// canvas sizes or effect radii and a blur combined with a stroke are
// rejected.
func New(opts ...Option) (*FontSystem, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cache, err := glyph.NewCache(glyph.Config{
		Width:       o.width,
		Height:      o.height,
		Blur:        o.blur,
		Stroke:      o.stroke,
		DefaultChar: o.defaultChar,
		Observer:    o.observer,
	})
	if err != nil {
		return nil, err
	}

	s := &FontSystem{opts: o, cache: cache}
	s.layout = layout.New(cache, layout.Options{
		Size:    DefaultSize,
		ScaleX:  1,
		ScaleY:  1,
		Kerning: o.kerning,
		Stroke:  o.stroke,
	})
	return s, nil
}

// AddFont parses font data (TTF or OTF) and appends it to the font list.
// With a registry the parsed font is shared with other systems.
func (s *FontSystem) AddFont(data []byte) error {
	if s.closed {
		return ErrClosed
	}

	var (
		f   *font.Font
		err error
	)
	if s.opts.registry != nil {
		f, err = s.opts.registry.Load(data, s.opts.parser)
	} else {
		f, err = font.New(data, font.WithParser(s.opts.parser))
	}
	if err != nil {
		return fmt.Errorf("fontstash: add font: %w", err)
	}

	face, err := font.NewFace(f)
	// The face holds its own reference from here on.
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("fontstash: add font: %w", err)
	}
	face.Recalculate(s.layout.Size)

	s.owned = append(s.owned, face)
	s.cache.AddFace(face)
	logging.Logger().Debug("fontstash: font added",
		"hash", f.Hash(), "parser", f.Parser(), "index", len(s.cache.Faces())-1)
	return nil
}

// AddFontFile reads a font file and adds it with AddFont.
func (s *FontSystem) AddFontFile(path string) error {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fontstash: failed to read font file: %w", err)
	}
	return s.AddFont(data)
}

// AddFace appends a custom face to the font list. The caller keeps
// ownership of f.
func (s *FontSystem) AddFace(f glyph.Face) error {
	if s.closed {
		return ErrClosed
	}
	s.cache.AddFace(f)
	return nil
}

// Faces returns the font list in priority order.
func (s *FontSystem) Faces() []glyph.Face {
	return s.cache.Faces()
}

// Size returns the font size in pixels.
func (s *FontSystem) Size() float64 { return s.layout.Size }

// SetSize sets the font size in pixels: the distance from the ascender to
// the descender of a face with ratio 1.
func (s *FontSystem) SetSize(size float64) { s.layout.Size = size }

// SetRatio sets the size multiplier of font i, used to balance fonts with
// different design heights. Cached glyphs are dropped since their metrics
// depend on the ratio.
func (s *FontSystem) SetRatio(i int, ratio float64) error {
	faces := s.cache.Faces()
	if i < 0 || i >= len(faces) {
		return fmt.Errorf("fontstash: font index %d out of range [0, %d)", i, len(faces))
	}
	rf, ok := faces[i].(interface{ SetRatio(float64) })
	if !ok {
		return ErrNoRatio
	}
	rf.SetRatio(ratio)
	s.Reset()
	return nil
}

// Spacing returns the extra advance between glyphs.
func (s *FontSystem) Spacing() float64 { return s.layout.Spacing }

// SetSpacing sets the extra advance between glyphs in pixels.
func (s *FontSystem) SetSpacing(v float64) { s.layout.Spacing = v }

// LineSpacing returns the extra distance between lines.
func (s *FontSystem) LineSpacing() float64 { return s.layout.LineSpacing }

// SetLineSpacing sets the extra distance between lines in pixels.
func (s *FontSystem) SetLineSpacing(v float64) { s.layout.LineSpacing = v }

// Scale returns the output scale vector.
func (s *FontSystem) Scale() (sx, sy float64) { return s.layout.ScaleX, s.layout.ScaleY }

// SetScale sets the output scale vector. Glyphs are rasterized at the font
// size and stretched by the scale when drawn.
func (s *FontSystem) SetScale(sx, sy float64) {
	s.layout.ScaleX, s.layout.ScaleY = sx, sy
}

// Kerning reports whether kerning is applied.
func (s *FontSystem) Kerning() bool { return s.layout.Kerning }

// SetKerning enables or disables kerning between glyphs of the same font.
func (s *FontSystem) SetKerning(enabled bool) { s.layout.Kerning = enabled }

// DefaultCharacter returns the codepoint drawn in place of uncovered ones,
// or nil.
func (s *FontSystem) DefaultCharacter() *rune { return s.cache.Config().DefaultChar }

// SetDefaultCharacter sets the codepoint drawn in place of uncovered ones.
// Nil skips uncovered codepoints.
func (s *FontSystem) SetDefaultCharacter(r *rune) { s.cache.SetDefaultChar(r) }

// Ascent returns the ascent of the primary font at the current size.
func (s *FontSystem) Ascent() float64 { return s.primaryMetrics().Ascent }

// Descent returns the descent of the primary font at the current size,
// positive below the baseline.
func (s *FontSystem) Descent() float64 { return s.primaryMetrics().Descent }

// LineHeight returns the line height of the primary font at the current
// size, line spacing included.
func (s *FontSystem) LineHeight() float64 {
	if len(s.cache.Faces()) == 0 {
		return 0
	}
	return s.primaryMetrics().LineHeight + s.layout.LineSpacing
}

// LineExtent returns the vertical extent of a line relative to the
// baseline over all fonts: top is the smallest negated ascent, bottom the
// largest descent.
func (s *FontSystem) LineExtent() (top, bottom float64) {
	return s.layout.Extent()
}

func (s *FontSystem) primaryMetrics() font.Metrics {
	faces := s.cache.Faces()
	if len(faces) == 0 {
		return font.Metrics{}
	}
	return glyph.MetricsAt(faces[0], s.layout.Size)
}

// Atlases returns every atlas created since the last reset, oldest first.
func (s *FontSystem) Atlases() []*atlas.Atlas { return s.cache.Atlases() }

// CurrentAtlas returns the atlas receiving new glyphs, creating it if
// needed.
func (s *FontSystem) CurrentAtlas() *atlas.Atlas { return s.cache.Current() }

// Stats returns glyph cache statistics.
func (s *FontSystem) Stats() glyph.Stats { return s.cache.Stats() }

// Reset drops every cached glyph and atlas. Textures of the dropped
// atlases are destroyed.
func (s *FontSystem) Reset() {
	s.cache.Reset(0, 0)
}

// ResetSize is like Reset and also changes the size of future atlases.
func (s *FontSystem) ResetSize(width, height int) error {
	if width <= 0 {
		return &ConfigError{Field: "Width", Reason: "must be positive"}
	}
	if height <= 0 {
		return &ConfigError{Field: "Height", Reason: "must be positive"}
	}
	s.cache.Reset(width, height)
	return nil
}

// Close releases the fonts added with AddFont and every atlas texture.
// Faces added with AddFace are left to the caller.
func (s *FontSystem) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cache.Reset(0, 0)

	var errs []error
	for _, f := range s.owned {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.owned = nil
	return errors.Join(errs...)
}
