// Package cache memoizes serialized responses keyed by endpoint and
// canonicalized query parameters. The catalog is immutable per version,
// so a long TTL is safe; concurrent misses on one key are collapsed so
// the catalog sees a single query.
package cache

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSize = 4096
	DefaultTTL  = 72 * time.Hour
)

// ResponseCache is an in-process LRU of serialized responses.
type ResponseCache struct {
	lru   *expirable.LRU[string, []byte]
	group singleflight.Group
}

func New(size int, ttl time.Duration) *ResponseCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

// Key canonicalizes a request into its cache key. Parameter order is
// dropped and defaults are written out, so two spellings of the same
// logical request share one entry. defaults holds the parameter values
// an absent parameter is equivalent to.
func Key(path string, query url.Values, defaults map[string]string) string {
	merged := make(map[string][]string, len(query)+len(defaults))
	for k, vs := range query {
		sorted := append([]string(nil), vs...)
		sort.Strings(sorted)
		merged[k] = sorted
	}
	for k, v := range defaults {
		if _, ok := merged[k]; !ok {
			merged[k] = []string{v}
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	for _, k := range keys {
		for _, v := range merged[k] {
			b.WriteByte('&')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
		}
	}
	return b.String()
}

// Get returns the cached bytes for key, if present.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

// Add stores bytes under key, for responses assembled outside GetOrFill
// such as streamed bodies.
func (c *ResponseCache) Add(key string, data []byte) {
	c.lru.Add(key, data)
}

// GetOrFill returns the cached bytes for key, filling the entry with a
// single call to fill when absent. Concurrent callers on the same key
// share one fill.
func (c *ResponseCache) GetOrFill(key string, fill func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.lru.Get(key); ok {
		return data, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		if data, ok := c.lru.Get(key); ok {
			return data, nil
		}
		data, err := fill()
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Purge drops every entry, for tests and catalog swaps.
func (c *ResponseCache) Purge() {
	c.lru.Purge()
}
