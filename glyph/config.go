package glyph

import (
	"errors"

	"github.com/gogpu/fontstash/atlas"
)

// ErrGlyphTooLarge is returned when a glyph does not fit even into an
// empty atlas. It is a configuration error: the atlas is too small for
// the requested size.
var ErrGlyphTooLarge = errors.New("glyph: glyph larger than an empty atlas")

// ErrBlurAndStroke is returned when both a blur and a stroke radius are set.
var ErrBlurAndStroke = errors.New("glyph: cannot have both blur and stroke")

// Config holds glyph cache configuration.
type Config struct {
	// Width and Height are the size of every atlas created by the cache.
	Width, Height int

	// Blur is the blur radius applied to every glyph (0..20).
	Blur int

	// Stroke is the stroke radius applied to every glyph (0..20).
	// Blur and Stroke cannot both be non-zero.
	Stroke int

	// DefaultChar is resolved in place of codepoints no face covers.
	// Nil disables the fallback.
	DefaultChar *rune

	// Observer is notified when the current atlas is full.
	Observer Observer
}

// DefaultConfig returns default configuration: 1024×1024 atlases without
// effects and a space as default character.
func DefaultConfig() Config {
	space := ' '
	return Config{
		Width:       1024,
		Height:      1024,
		DefaultChar: &space,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "Width", Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "Height", Reason: "must be positive"}
	}
	if c.Blur < 0 || c.Blur > atlas.MaxEffectRadius {
		return &ConfigError{Field: "Blur", Reason: "must be in 0..20"}
	}
	if c.Stroke < 0 || c.Stroke > atlas.MaxEffectRadius {
		return &ConfigError{Field: "Stroke", Reason: "must be in 0..20"}
	}
	if c.Blur != 0 && c.Stroke != 0 {
		return ErrBlurAndStroke
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyph: invalid config." + e.Field + ": " + e.Reason
}

// Observer is notified synchronously when the current atlas cannot hold
// the next glyph, before its replacement is created. Callers use it to
// flush batches that still reference the full atlas.
type Observer interface {
	AtlasFull(full *atlas.Atlas)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(full *atlas.Atlas)

// AtlasFull implements Observer.
func (f ObserverFunc) AtlasFull(full *atlas.Atlas) { f(full) }
