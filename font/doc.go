// Package font loads font binaries and exposes them at a pixel size.
//
// A [Font] owns the raw font bytes and the parsed backend handle. It is
// reference counted: every [Face] created from it holds one reference and
// the bytes are released when the last reference is dropped. A Face is the
// per-size view used by the glyph cache and the layout engine: glyph
// lookup, vertical metrics, kerning and coverage rasterization.
//
// Two parser backends are registered by default:
//   - "ximage": golang.org/x/image/font/sfnt (default)
//   - "freetype": github.com/golang/freetype/truetype
//
// Glyph outlines from either backend are rasterized with
// github.com/srwiley/rasterx.
package font
