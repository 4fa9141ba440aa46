package fontstash

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fontstash/font"
)

func newTestRegistry(t *testing.T, size int) *Registry {
	t.Helper()
	r, err := NewRegistry(size)
	if err != nil {
		t.Fatalf("NewRegistry(%d): %v", size, err)
	}
	return r
}

func TestNewRegistry_InvalidSize(t *testing.T) {
	if _, err := NewRegistry(0); err == nil {
		t.Error("NewRegistry(0) = nil error, want error")
	}
}

func TestRegistry_Dedup(t *testing.T) {
	r := newTestRegistry(t, 4)

	a, err := r.Load(goregular.TTF, font.ParserXImage)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Load(goregular.TTF, font.ParserXImage)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Load() parsed the same data twice")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	// One reference for the registry, one per caller.
	if got := a.Refs(); got != 3 {
		t.Errorf("Refs() = %d, want 3", got)
	}

	_ = a.Close()
	_ = b.Close()
	if got := a.Refs(); got != 1 {
		t.Errorf("Refs() after callers closed = %d, want 1", got)
	}
}

func TestRegistry_KeyedByParser(t *testing.T) {
	r := newTestRegistry(t, 4)

	a, err := r.Load(goregular.TTF, font.ParserXImage)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Load(goregular.TTF, font.ParserFreetype)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("fonts loaded with different parsers are shared")
	}
	if !r.Contains(goregular.TTF, font.ParserFreetype) {
		t.Error("Contains(freetype) = false")
	}
}

func TestRegistry_Eviction(t *testing.T) {
	r := newTestRegistry(t, 1)

	regular, err := r.Load(goregular.TTF, font.ParserXImage)
	if err != nil {
		t.Fatal(err)
	}
	mono, err := r.Load(gomono.TTF, font.ParserXImage)
	if err != nil {
		t.Fatal(err)
	}
	defer mono.Close()

	if r.Contains(goregular.TTF, font.ParserXImage) {
		t.Error("least recently used font still registered")
	}
	// The caller's reference keeps the evicted font usable.
	if regular.Closed() {
		t.Fatal("evicted font closed while still referenced")
	}
	if regular.GlyphIndex('A') == 0 {
		t.Error("evicted font lost its glyphs")
	}
	_ = regular.Close()
	if !regular.Closed() {
		t.Error("font not released after the last reference")
	}
}

func TestRegistry_Purge(t *testing.T) {
	r := newTestRegistry(t, 4)

	f, err := r.Load(goregular.TTF, font.ParserXImage)
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	r.Purge()
	if r.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", r.Len())
	}
	if !f.Closed() {
		t.Error("Purge did not release the registry reference")
	}

	// A purged font is parsed again on the next load.
	g, err := r.Load(goregular.TTF, font.ParserXImage)
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()
	if g == f {
		t.Error("Load() returned a released font")
	}
}

func TestRegistry_EmptyData(t *testing.T) {
	r := newTestRegistry(t, 4)
	if _, err := r.Load(nil, font.ParserXImage); !errors.Is(err, font.ErrEmptyFontData) {
		t.Errorf("Load(nil) = %v, want ErrEmptyFontData", err)
	}
}

func TestRegistry_SharedBetweenSystems(t *testing.T) {
	r := newTestRegistry(t, 4)

	a := newTestSystem(t, WithRegistry(r))
	b := newTestSystem(t, WithRegistry(r))
	if err := a.AddFont(goregular.TTF); err != nil {
		t.Fatal(err)
	}
	if err := b.AddFont(goregular.TTF); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	fa := a.owned[0].Font()
	if fa != b.owned[0].Font() {
		t.Fatal("systems do not share the parsed font")
	}
	if got := fa.Refs(); got != 3 {
		t.Errorf("Refs() = %d, want 3", got)
	}

	_ = a.Close()
	if got := fa.Refs(); got != 2 {
		t.Errorf("Refs() after closing one system = %d, want 2", got)
	}
}
