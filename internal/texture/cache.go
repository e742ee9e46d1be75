package texture

import (
	"sync"

	"pixel-engine/internal/logging"
)

// Resolver resolves an image name to a decoded texture.
type Resolver interface {
	Resolve(name string) *Texture
}

// Cache is a concurrency-safe texture cache. Cached textures are shared:
// callers that draw into one should Clone it first.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	tex *Texture
	err error
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if the name is
// unknown or the file fails to decode; failures are cached too.
func (c *Cache) Resolve(name string) *Texture {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}

	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.tex
	}
	c.mu.RUnlock()

	tex, err := LoadImage(path)
	if err != nil {
		logging.Source("Texture.Cache").Warn("load failed", "path", path, "err", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.tex
	}
	c.items[path] = &cacheEntry{tex: tex, err: err}
	return tex
}

// Err returns the cached load error for name, if any.
func (c *Cache) Err(name string) error {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return ErrNotFound
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, exists := c.items[path]; exists {
		return entry.err
	}
	return nil
}

// Len returns the number of cached entries, including failures.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
