package fontstash

import (
	"errors"

	"github.com/gogpu/fontstash/glyph"
)

var (
	// ErrClosed is returned by operations on a closed FontSystem.
	ErrClosed = errors.New("fontstash: font system is closed")

	// ErrNoFonts is returned when text is drawn before any font was added.
	ErrNoFonts = errors.New("fontstash: no fonts added")

	// ErrColorCount is returned by DrawTextColors when there are fewer
	// colors than codepoints.
	ErrColorCount = errors.New("fontstash: fewer colors than codepoints")

	// ErrNoRatio is returned by SetRatio for faces without a size ratio.
	ErrNoRatio = errors.New("fontstash: face does not support a size ratio")

	// ErrNilAtlas is returned by a SoftwareSink for commands without an atlas.
	ErrNilAtlas = errors.New("fontstash: draw command without atlas")

	// ErrGlyphTooLarge is returned when a glyph does not fit an empty atlas.
	ErrGlyphTooLarge = glyph.ErrGlyphTooLarge

	// ErrBlurAndStroke is returned when both a blur and a stroke are configured.
	ErrBlurAndStroke = glyph.ErrBlurAndStroke
)

// ConfigError reports an invalid FontSystem option.
type ConfigError = glyph.ConfigError
