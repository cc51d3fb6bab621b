package render

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/kedarrpandya/foodbridge/internal/geometry"
)

const defaultCacheSize = 64

// Observer is notified of cache lookups.
type Observer interface {
	CacheHit(format string)
	CacheMiss(format string)
}

// Cache keeps recently rendered outputs so redrawing an unchanged chart
// does not rasterize it again.
//
// Entries are keyed by chart, format and a digest of the payload the chart
// was drawn from. A nil Cache renders every time.
type Cache struct {
	lru      *lru.Cache
	observer Observer
}

// NewCache returns a cache holding up to size outputs. A zero size uses a
// default.
func NewCache(size int, observer Observer) (*Cache, error) {
	if size == 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("render: cache: %w", err)
	}
	return &Cache{lru: c, observer: observer}, nil
}

// Key identifies the output of chart in format for payload.
func Key(chart, format string, payload []byte) string {
	h := md5.Sum(payload)
	return chart + "/" + format + "/" + hex.EncodeToString(h[:])
}

// Get returns a cached output.
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// Add stores an output.
func (c *Cache) Add(key string, out []byte) {
	if c == nil {
		return
	}
	c.lru.Add(key, out)
}

// Len returns the number of cached outputs.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Render returns the cached output for key, or draws the frame built by
// frame with b and caches the result.
func (c *Cache) Render(key string, b Backend, frame func() (geometry.Frame, error)) ([]byte, error) {
	if out, ok := c.Get(key); ok {
		c.notify(b.Name(), true)
		return out, nil
	}
	c.notify(b.Name(), false)

	f, err := frame()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := b.Render(&buf, f); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	c.Add(key, out)
	return out, nil
}

func (c *Cache) notify(format string, hit bool) {
	if c == nil || c.observer == nil {
		return
	}
	if hit {
		c.observer.CacheHit(format)
	} else {
		c.observer.CacheMiss(format)
	}
}
