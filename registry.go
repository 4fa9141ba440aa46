package fontstash

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/gogpu/fontstash/font"
	"github.com/gogpu/fontstash/internal/logging"
)

// DefaultRegistrySize is the number of fonts a registry keeps parsed.
const DefaultRegistrySize = 32

// Registry shares parsed fonts between font systems, keyed by the content
// hash of the font bytes and the parser that loaded them.
//
// The registry holds one reference on every font it keeps. A font evicted
// by the LRU policy or by Purge loses that reference; faces still using it
// keep it alive until they are closed.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	fonts *lru.Cache
}

// NewRegistry creates a registry keeping at most size fonts.
func NewRegistry(size int) (*Registry, error) {
	fonts, err := lru.NewWithEvict(size, func(key, value interface{}) {
		f := value.(*font.Font)
		_ = f.Close()
		logging.Logger().Info("fontstash: font evicted from registry", "key", key, "refs", f.Refs())
	})
	if err != nil {
		return nil, err
	}
	return &Registry{fonts: fonts}, nil
}

// Load returns the font for data, parsing it on first use. The returned
// font carries a reference owned by the caller, released with Close.
func (r *Registry) Load(data []byte, parser string) (*font.Font, error) {
	if len(data) == 0 {
		return nil, font.ErrEmptyFontData
	}
	key := registryKey(font.Hash(data), parser)

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.fonts.Get(key); ok {
		f := v.(*font.Font)
		if err := f.Acquire(); err == nil {
			return f, nil
		}
		r.fonts.Remove(key)
	}

	f, err := font.New(data, font.WithParser(parser))
	if err != nil {
		return nil, err
	}
	if err := f.Acquire(); err != nil {
		return nil, err
	}
	r.fonts.Add(key, f)
	return f, nil
}

// Contains reports whether the registry keeps a font for data.
func (r *Registry) Contains(data []byte, parser string) bool {
	return r.fonts.Contains(registryKey(font.Hash(data), parser))
}

// Len returns the number of fonts kept.
func (r *Registry) Len() int {
	return r.fonts.Len()
}

// Purge drops every font, releasing the registry's references.
func (r *Registry) Purge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts.Purge()
}

func registryKey(hash, parser string) string {
	return parser + ":" + hash
}
