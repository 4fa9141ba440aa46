package font

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // content key, not a security boundary
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/gogpu/fontstash/internal/logging"
)

// Font is a loaded font binary.
//
// A Font owns a private copy of the font bytes and the parsed backend. It
// is reference counted: New returns a Font holding one reference, NewFace
// acquires another, and every Close drops one. The bytes, the backend and
// the kerning cache are released when the count reaches zero.
//
// Font is safe for concurrent use. It must not be copied after creation.
type Font struct {
	// addr is used for copy protection. It must point to the Font itself.
	addr *Font

	mu      sync.RWMutex
	refs    int
	data    []byte
	backend Backend

	hash   string
	parser string

	// Base metrics in font units, read once at load time.
	upem    int
	ascent  int
	descent int
	lineGap int

	kernMu sync.Mutex
	kern   map[uint32]int

	typefaceOnce sync.Once
	typeface     *gotext.Font
	typefaceErr  error
}

// New parses font data (TTF or OTF) and returns a Font holding one reference.
// The data slice is copied internally and can be reused after this call.
func New(data []byte, opts ...Option) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	p, err := getParser(config.parserName)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	backend, err := p.Parse(dataCopy)
	if err != nil {
		return nil, err
	}

	ascent, descent, lineGap := backend.VMetrics()
	if ascent+descent <= 0 {
		return nil, ErrInvalidMetrics
	}

	f := &Font{
		refs:    1,
		data:    dataCopy,
		backend: backend,
		hash:    Hash(data),
		parser:  config.parserName,
		upem:    backend.UnitsPerEm(),
		ascent:  ascent,
		descent: descent,
		lineGap: lineGap,
		kern:    make(map[uint32]int),
	}
	f.addr = f

	logging.Logger().Debug("font: loaded",
		"parser", f.parser,
		"bytes", len(dataCopy),
		"unitsPerEm", f.upem,
		"ascent", ascent,
		"descent", descent,
		"lineGap", lineGap)

	return f, nil
}

// NewFromFile loads a Font from a font file path.
func NewFromFile(path string, opts ...Option) (*Font, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read font file: %w", err)
	}
	return New(data, opts...)
}

// Hash returns the content key used to de-duplicate font binaries:
// the hex SHA-1 of the bytes.
func Hash(data []byte) string {
	sum := sha1.Sum(data) //nolint:gosec // content key
	return hex.EncodeToString(sum[:])
}

// Hash returns the content key of the font bytes.
func (f *Font) Hash() string {
	f.copyCheck()
	return f.hash
}

// Parser returns the name of the parser backend that loaded the font.
func (f *Font) Parser() string {
	return f.parser
}

// UnitsPerEm returns the font design units per em.
func (f *Font) UnitsPerEm() int {
	return f.upem
}

// VMetrics returns the base vertical metrics in font units. The descent
// is positive below the baseline.
func (f *Font) VMetrics() (ascent, descent, lineGap int) {
	return f.ascent, f.descent, f.lineGap
}

// Data returns the font bytes, or nil after the last reference is dropped.
// The returned slice must not be modified.
func (f *Font) Data() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data
}

// Refs returns the number of live references.
func (f *Font) Refs() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.refs
}

// Closed reports whether the font bytes have been released.
func (f *Font) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.refs == 0
}

// Acquire adds a reference. It fails with ErrClosed once the font is released.
func (f *Font) Acquire() error {
	f.copyCheck()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refs == 0 {
		return ErrClosed
	}
	f.refs++
	return nil
}

// Close drops one reference. The last Close releases the font bytes and
// clears the kerning cache. Closing a released font returns ErrClosed.
func (f *Font) Close() error {
	f.copyCheck()
	f.mu.Lock()
	if f.refs == 0 {
		f.mu.Unlock()
		return ErrClosed
	}
	f.refs--
	if f.refs > 0 {
		f.mu.Unlock()
		return nil
	}
	f.data = nil
	f.backend = nil
	f.mu.Unlock()

	f.kernMu.Lock()
	clear(f.kern)
	f.kernMu.Unlock()

	logging.Logger().Debug("font: released", "hash", f.hash)
	return nil
}

// parsed returns the backend, or nil after release.
func (f *Font) parsed() Backend {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.backend
}

// GlyphIndex returns the glyph index for r, or 0 if the font does not
// cover it or has been released.
func (f *Font) GlyphIndex(r rune) GlyphIndex {
	b := f.parsed()
	if b == nil {
		return 0
	}
	return b.GlyphIndex(r)
}

// KernAdvance returns the kerning adjustment between two glyphs in font
// units. Results are cached per pair until the font is released.
func (f *Font) KernAdvance(a, b GlyphIndex) int {
	key := uint32(a)<<16 | uint32(b)

	f.kernMu.Lock()
	if k, ok := f.kern[key]; ok {
		f.kernMu.Unlock()
		return k
	}
	f.kernMu.Unlock()

	backend := f.parsed()
	if backend == nil {
		return 0
	}
	k := backend.Kern(a, b)

	f.kernMu.Lock()
	f.kern[key] = k
	f.kernMu.Unlock()
	return k
}

// kernCacheLen returns the number of cached kerning pairs.
func (f *Font) kernCacheLen() int {
	f.kernMu.Lock()
	defer f.kernMu.Unlock()
	return len(f.kern)
}

// Typeface returns the font parsed by go-text/typesetting for shaping.
// The result is parsed once and cached.
func (f *Font) Typeface() (*gotext.Font, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	f.typefaceOnce.Do(func() {
		data := f.Data()
		if data == nil {
			f.typefaceErr = ErrClosed
			return
		}
		face, err := gotext.ParseTTF(bytes.NewReader(data))
		if err != nil {
			f.typefaceErr = fmt.Errorf("font: shaping parse: %w", err)
			return
		}
		f.typeface = face.Font
	})
	return f.typeface, f.typefaceErr
}

// copyCheck panics if the Font was copied by value.
func (f *Font) copyCheck() {
	if f.addr != f {
		panic("font: Font must not be copied by value")
	}
}
