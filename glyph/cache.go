package glyph

import (
	"fmt"
	"image"

	"github.com/gogpu/fontstash/atlas"
	"github.com/gogpu/fontstash/font"
	"github.com/gogpu/fontstash/internal/logging"
)

// Stats holds glyph cache statistics.
type Stats struct {
	Hits       uint64 // lookups answered from the cache
	Misses     uint64 // lookups that created a record or found no face
	Rasterized uint64 // glyph bitmaps written into an atlas
	Failed     uint64 // glyphs skipped because rasterization failed
	Rotations  uint64 // times the current atlas was replaced
}

// Cache maps (size, codepoint) to glyph records.
//
// Faces are consulted in the order they were added; the first face with a
// non-zero glyph index wins. Records are created lazily and never
// replaced: a second lookup returns the identical *Glyph. Only Reset
// clears the cache.
//
// Cache is not safe for concurrent use.
type Cache struct {
	config  Config
	faces   []Face
	sizes   map[float64]map[rune]*Glyph
	atlases []*atlas.Atlas
	current *atlas.Atlas
	stats   Stats
}

// NewCache creates a glyph cache. The configuration is validated once here.
func NewCache(config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Cache{
		config: config,
		sizes:  make(map[float64]map[rune]*Glyph),
	}, nil
}

// Config returns the cache configuration.
func (c *Cache) Config() Config { return c.config }

// AddFace appends a face at the lowest priority.
func (c *Cache) AddFace(f Face) {
	c.faces = append(c.faces, f)
}

// Faces returns the faces in priority order.
func (c *Cache) Faces() []Face { return c.faces }

// SetDefaultChar sets the codepoint resolved in place of uncovered ones.
// Nil disables the fallback.
func (c *Cache) SetDefaultChar(r *rune) {
	if r != nil {
		v := *r
		r = &v
	}
	c.config.DefaultChar = r
}

// SetObserver replaces the atlas-full observer.
func (c *Cache) SetObserver(o Observer) {
	c.config.Observer = o
}

// Atlases returns every atlas created since the last Reset, oldest first.
func (c *Cache) Atlases() []*atlas.Atlas { return c.atlases }

// Current returns the atlas receiving new glyphs, creating it if needed.
func (c *Cache) Current() *atlas.Atlas {
	if c.current == nil {
		c.current = atlas.New(c.config.Width, c.config.Height)
		c.atlases = append(c.atlases, c.current)
		logging.Logger().Debug("glyph: atlas created",
			"id", c.current.ID(),
			"width", c.config.Width,
			"height", c.config.Height,
			"count", len(c.atlases))
	}
	return c.current
}

// Get returns the glyph for codepoint at size with its bitmap placed in an
// atlas. It returns nil without error when no face covers the codepoint
// and the default character cannot be resolved either, or when the glyph
// could not be rasterized. ErrGlyphTooLarge is returned when the glyph
// does not fit an empty atlas.
func (c *Cache) Get(size float64, codepoint rune) (*Glyph, error) {
	g := c.Resolve(size, codepoint)
	if g == nil || g.Placed() {
		return g, nil
	}
	return c.place(g)
}

// Resolve returns the glyph record for codepoint at size without placing
// its bitmap. Measurement uses Resolve so that no atlas space is spent on
// text that is never drawn.
//
// The default character replaces codepoints no face covers. A covered
// glyph whose metrics cannot be read is skipped instead.
func (c *Cache) Resolve(size float64, codepoint rune) *Glyph {
	g, covered := c.lookup(size, codepoint)
	if covered {
		return g
	}
	if def := c.config.DefaultChar; def != nil && *def != codepoint {
		g, _ = c.lookup(size, *def)
		return g
	}
	return nil
}

// Peek returns the cached record without creating one.
func (c *Cache) Peek(size float64, codepoint rune) *Glyph {
	return c.sizes[size][codepoint]
}

// Len returns the number of cached records across all sizes.
func (c *Cache) Len() int {
	n := 0
	for _, bucket := range c.sizes {
		n += len(bucket)
	}
	return n
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats { return c.stats }

// Reset drops every glyph record and atlas. Future atlases use the given
// size; non-positive values keep the current one.
func (c *Cache) Reset(width, height int) {
	c.sizes = make(map[float64]map[rune]*Glyph)
	for _, a := range c.atlases {
		a.ReleaseTexture()
	}
	c.atlases = nil
	c.current = nil
	if width > 0 {
		c.config.Width = width
	}
	if height > 0 {
		c.config.Height = height
	}
}

// lookup returns the cached record or creates one from the first face
// covering codepoint, and whether any face covers it. The record is nil
// when the glyph metrics cannot be read.
func (c *Cache) lookup(size float64, codepoint rune) (*Glyph, bool) {
	bucket := c.sizes[size]
	if g, ok := bucket[codepoint]; ok {
		c.stats.Hits++
		return g, true
	}
	c.stats.Misses++

	face, index := c.find(codepoint)
	if face == nil {
		return nil, false
	}
	sized(face, size)

	gm, err := face.GlyphMetrics(index)
	if err != nil {
		c.stats.Failed++
		logging.Logger().Warn("glyph: metrics failed, glyph skipped",
			"codepoint", codepoint, "index", index, "size", size, "err", err)
		return nil, true
	}

	g := &Glyph{
		Face:      face,
		Codepoint: codepoint,
		Index:     index,
		Size:      size,
		Scale:     face.Metrics().Scale,
		XAdvance:  gm.Advance,
	}
	if gm.Width() > 0 && gm.Height() > 0 {
		pad := atlas.Pad(c.config.Blur, c.config.Stroke)
		g.Bounds = image.Rect(0, 0, gm.Width()+2*pad, gm.Height()+2*pad)
		g.XOffset = gm.X0 - pad
		g.YOffset = gm.Y0 - pad
	}

	if bucket == nil {
		bucket = make(map[rune]*Glyph)
		c.sizes[size] = bucket
	}
	bucket[codepoint] = g
	return g, true
}

// place writes the bitmap of g into the current atlas, rotating it once
// when full. A glyph that fails to rasterize or cannot fit an empty atlas
// is dropped from the cache.
func (c *Cache) place(g *Glyph) (*Glyph, error) {
	w, h := g.Bounds.Dx(), g.Bounds.Dy()
	if w > c.config.Width || h > c.config.Height {
		return nil, c.tooLarge(g)
	}

	cur := c.Current()
	x, y, ok := cur.Reserve(w, h)
	if !ok {
		if o := c.config.Observer; o != nil {
			o.AtlasFull(cur)
		}
		cur.Close()
		c.current = nil
		c.stats.Rotations++
		logging.Logger().Info("glyph: atlas full, rotating",
			"id", cur.ID(), "utilization", cur.Packer().Utilization())

		cur = c.Current()
		x, y, ok = cur.Reserve(w, h)
		if !ok {
			return nil, c.tooLarge(g)
		}
	}

	r := image.Rect(x, y, x+w, y+h)
	sized(g.Face, g.Size)
	if err := cur.WriteGlyph(r, newSource(g.Face, g.Index), c.config.Blur, c.config.Stroke); err != nil {
		c.stats.Failed++
		delete(c.sizes[g.Size], g.Codepoint)
		logging.Logger().Warn("glyph: rasterization failed, glyph skipped",
			"codepoint", g.Codepoint, "index", g.Index, "size", g.Size, "err", err)
		return nil, nil
	}
	c.stats.Rasterized++

	g.Bounds = r
	g.Atlas = cur
	return g, nil
}

func (c *Cache) tooLarge(g *Glyph) error {
	delete(c.sizes[g.Size], g.Codepoint)
	return fmt.Errorf("%w: %dx%d glyph, %dx%d atlas",
		ErrGlyphTooLarge, g.Bounds.Dx(), g.Bounds.Dy(), c.config.Width, c.config.Height)
}

// find returns the first face covering codepoint.
func (c *Cache) find(codepoint rune) (Face, font.GlyphIndex) {
	for _, f := range c.faces {
		if idx := f.GlyphIndex(codepoint); idx != 0 {
			return f, idx
		}
	}
	return nil, 0
}

// sized brings face metrics to size.
func sized(f Face, size float64) {
	if f.Size() != size {
		f.Recalculate(size)
	}
}
