package fontstash

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/fontstash/atlas"
	"github.com/gogpu/fontstash/font"
	"github.com/gogpu/fontstash/glyph"
)

// Option configures a FontSystem during creation.
//
// Example:
//
//	// 512x512 atlases with a 2 pixel outline around every glyph
//	fs, err := fontstash.New(
//	    fontstash.WithCanvasSize(512, 512),
//	    fontstash.WithStroke(2),
//	)
type Option func(*options)

// options holds FontSystem configuration.
type options struct {
	width, height int
	blur, stroke  int
	defaultChar   *rune
	kerning       bool
	observer      glyph.Observer
	creator       gpucontext.TextureCreator
	registry      *Registry
	parser        string
	normalize     bool
}

// defaultOptions returns the default configuration: 1024x1024 atlases,
// no effects, kerning on and a space as default character.
func defaultOptions() options {
	space := ' '
	return options{
		width:       1024,
		height:      1024,
		defaultChar: &space,
		kerning:     true,
		parser:      font.ParserXImage,
	}
}

// WithCanvasSize sets the size of every atlas.
func WithCanvasSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithBlur blurs every glyph with the given radius (0..20).
// Blur cannot be combined with WithStroke.
func WithBlur(radius int) Option {
	return func(o *options) {
		o.blur = radius
	}
}

// WithStroke outlines every glyph with the given radius (0..20).
// Stroke cannot be combined with WithBlur.
func WithStroke(radius int) Option {
	return func(o *options) {
		o.stroke = radius
	}
}

// WithDefaultCharacter sets the codepoint drawn in place of codepoints no
// font covers.
func WithDefaultCharacter(r rune) Option {
	return func(o *options) {
		o.defaultChar = &r
	}
}

// WithoutDefaultCharacter skips codepoints no font covers.
func WithoutDefaultCharacter() Option {
	return func(o *options) {
		o.defaultChar = nil
	}
}

// WithKerning enables or disables kerning. Kerning is on by default.
func WithKerning(enabled bool) Option {
	return func(o *options) {
		o.kerning = enabled
	}
}

// WithObserver registers an observer notified when an atlas is full,
// before its replacement is created.
func WithObserver(obs glyph.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithAtlasFull is like WithObserver for a plain function.
func WithAtlasFull(fn func(full *atlas.Atlas)) Option {
	return WithObserver(glyph.ObserverFunc(fn))
}

// WithTextureCreator uploads atlases to GPU textures created by c.
// Without it DrawCommand.Texture is nil and only CPU sinks can draw.
func WithTextureCreator(c gpucontext.TextureCreator) Option {
	return func(o *options) {
		o.creator = c
	}
}

// WithRegistry shares parsed fonts through r, so that several font
// systems loading the same bytes parse them once.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithParser selects the font parser backend for fonts added to the
// system. See font.WithParser.
func WithParser(name string) Option {
	return func(o *options) {
		o.parser = name
	}
}

// WithNormalization converts text to Unicode NFC before layout.
func WithNormalization(enabled bool) Option {
	return func(o *options) {
		o.normalize = enabled
	}
}
