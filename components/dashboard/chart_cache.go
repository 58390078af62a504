package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated snapshots are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// chartEntry records when a fragment was rendered; freshness is evaluated on
// read so expired entries cost nothing until touched.
type chartEntry struct {
	html       string
	renderedAt time.Time
}

// ChartCache is an in-memory TTL cache for rendered chart fragments. A nil
// cache or a non-positive TTL disables memoization entirely.
type ChartCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]chartEntry
}

// NewChartCache builds a cache with the provided TTL.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		entries: make(map[string]chartEntry),
	}
}

// GetOrRender returns a fresh cached fragment or renders and stores a new
// one. Render errors are returned without poisoning the cache.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && time.Since(entry.renderedAt) < c.ttl {
		c.mu.Unlock()
		return entry.html, nil
	}
	c.mu.Unlock()

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.sweepLocked()
	c.entries[key] = chartEntry{html: html, renderedAt: time.Now()}
	c.mu.Unlock()
	return html, nil
}

// sweepLocked drops expired entries so long-lived processes with changing
// date ranges do not accumulate stale fragments. Caller holds c.mu.
func (c *ChartCache) sweepLocked() {
	if len(c.entries) < 64 {
		return
	}
	now := time.Now()
	for key, entry := range c.entries {
		if now.Sub(entry.renderedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

// seriesHash returns a deterministic hash for a chart's input data.
func seriesHash(parts ...any) string {
	b, err := json.Marshal(parts)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
