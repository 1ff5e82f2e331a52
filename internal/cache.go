package maestrotop

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrCacheDisposed is returned by Get after Dispose.
var ErrCacheDisposed = errors.New("dataset cache disposed")

// Cache memoizes one dataset per kind and collapses concurrent fetches for
// the same kind into a single backend request.
//
// Each Invalidate starts a new epoch. A fetch that was in flight when the
// epoch changed still delivers its result to the callers already joined on
// it, but the result is not stored, so a Get issued after Invalidate always
// triggers a fresh fetch. In-flight requests are never cancelled by
// invalidation; only whether their result is stored changes.
type Cache struct {
	client *Client
	obs    *Metrics

	flight singleflight.Group

	mu       sync.Mutex
	epoch    uint64
	resolved map[Kind]*Dataset
	disposed bool
}

// NewCache builds a cache over client. obs may be nil.
func NewCache(client *Client, obs *Metrics) *Cache {
	return &Cache{
		client:   client,
		obs:      obs,
		resolved: make(map[Kind]*Dataset),
	}
}

// Get returns the dataset for kind, fetching it at most once per epoch no
// matter how many callers ask concurrently. All callers joined on one fetch
// receive the same *Dataset or the same error. On failure nothing is stored
// and the next Get retries.
//
// The fetch runs under the context of the caller that started it; later
// joiners share its fate.
func (c *Cache) Get(ctx context.Context, kind Kind) (*Dataset, error) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil, ErrCacheDisposed
	}
	if ds, ok := c.resolved[kind]; ok {
		c.mu.Unlock()
		c.obs.CacheHit(kind)
		return ds, nil
	}
	epoch := c.epoch
	c.mu.Unlock()
	c.obs.CacheMiss(kind)

	v, err, _ := c.flight.Do(string(kind), func() (any, error) {
		// Another caller may have resolved this kind between our miss and
		// the flight starting.
		c.mu.Lock()
		if ds, ok := c.resolved[kind]; ok && c.epoch == epoch {
			c.mu.Unlock()
			return ds, nil
		}
		c.mu.Unlock()

		start := time.Now()
		ds, err := c.client.Dataset(ctx, kind)
		c.obs.FetchDone(kind, time.Since(start), err)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.epoch == epoch && !c.disposed {
			c.resolved[kind] = ds
		}
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

// Invalidate drops every resolved dataset and detaches every pending fetch,
// starting a new epoch. Callers already joined on an in-flight fetch still
// get its result once; nobody else ever observes it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.epoch++
	c.resolved = make(map[Kind]*Dataset)
	c.mu.Unlock()

	for _, kind := range Kinds {
		c.flight.Forget(string(kind))
	}
}

// Epoch reports the current invalidation epoch.
func (c *Cache) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// Dispose invalidates the cache and makes every later Get fail with
// ErrCacheDisposed.
func (c *Cache) Dispose() {
	c.mu.Lock()
	c.epoch++
	c.resolved = make(map[Kind]*Dataset)
	c.disposed = true
	c.mu.Unlock()

	for _, kind := range Kinds {
		c.flight.Forget(string(kind))
	}
}
