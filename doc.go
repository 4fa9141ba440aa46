// Package fontstash renders Unicode text through glyph texture atlases.
//
// A FontSystem owns an ordered list of fonts, a glyph cache and the atlases
// the cache packs glyph bitmaps into. Glyphs are rasterized on demand the
// first time they are drawn at a size and reused afterwards. Drawing emits
// one DrawCommand per glyph to a Sink: a destination rectangle, the source
// rectangle inside an atlas and the atlas texture.
//
// # Quick Start
//
//	fs, err := fontstash.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fs.Close()
//
//	if err := fs.AddFont(goregular.TTF); err != nil {
//	    log.Fatal(err)
//	}
//	fs.SetSize(32)
//
//	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
//	sink := fontstash.NewSoftwareSink(img)
//	fs.DrawText(sink, 10, 10, "Hello, fontstash", color.Black, 0)
//
// # Fallback Fonts
//
// Fonts added after the first are fallbacks. Every codepoint is drawn with
// the first font that has a glyph for it; codepoints no font covers are
// replaced by the default character (a space unless configured otherwise)
// or skipped.
//
// # GPU Rendering
//
// With WithTextureCreator every atlas is uploaded lazily to a
// gpucontext.Texture and updated through its dirty region as new glyphs
// are added. DrawCommand.Texture carries the texture to the sprite batch.
// WithObserver reports an atlas that became full before its replacement
// is created, so pending batches can be flushed.
//
// # Packages
//
//   - font: font loading, per-size faces, parser backends, kerning
//   - atlas: rectangle packing, glyph atlases, blur and stroke effects
//   - glyph: the glyph cache
//   - layout: text segmentation, quads, bounds and line metrics
//
// FontSystem is not safe for concurrent use.
package fontstash
