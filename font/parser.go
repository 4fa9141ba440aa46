package font

import "sync"

// GlyphIndex identifies a glyph inside one font. Zero means the font has
// no glyph for the requested codepoint.
type GlyphIndex uint16

// Parser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (golang.org/x/image/font/sfnt vs github.com/golang/freetype).
type Parser interface {
	// Parse parses font data (TTF or OTF) and returns a Backend.
	Parse(data []byte) (Backend, error)
}

// Backend is a parsed font file. All values are in font units with the
// y axis pointing down, except Outline which is in pixels.
type Backend interface {
	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// VMetrics returns the ascender, descender and line gap.
	// The descender is positive below the baseline.
	VMetrics() (ascent, descent, lineGap int)

	// GlyphIndex returns the glyph index for a rune, or 0 if not covered.
	GlyphIndex(r rune) GlyphIndex

	// HMetrics returns the advance width and left side bearing.
	HMetrics(g GlyphIndex) (advance, lsb int, err error)

	// Bounds returns the glyph bounding box.
	Bounds(g GlyphIndex) (minX, minY, maxX, maxY int, err error)

	// Kern returns the kerning adjustment between two glyphs.
	Kern(a, b GlyphIndex) int

	// Outline returns the glyph outline scaled by scale, relative to the
	// pen position on the baseline.
	Outline(g GlyphIndex, scale float64) ([]Segment, error)
}

// parserRegistry holds registered font parsers.
// The default parser is "ximage" (golang.org/x/image).
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]Parser{
		ParserXImage:   ximageParser{},
		ParserFreetype: freetypeParser{},
	}
)

// Registered parser names.
const (
	ParserXImage   = "ximage"
	ParserFreetype = "freetype"
)

// RegisterParser registers a custom font parser under name.
// Registering an existing name replaces it.
func RegisterParser(name string, p Parser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = p
}

// getParser returns the parser registered under name.
func getParser(name string) (Parser, error) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	p, ok := parserRegistry[name]
	if !ok {
		return nil, &UnknownParserError{Name: name}
	}
	return p, nil
}
