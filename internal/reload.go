package maestrotop

import "sync"

// Reloader is the explicit "load data" signal: a monotonically increasing
// generation counter with registered subscribers. Bump is the only trigger
// for re-fetch and re-render; there is no polling.
//
// Subscribers run synchronously in registration order, so everything that
// must precede the reload (cache invalidation in particular) has completed
// before the first subscriber starts fetching.
type Reloader struct {
	mu   sync.Mutex
	gen  uint64
	subs []func(gen uint64)
}

func NewReloader() *Reloader {
	return &Reloader{}
}

// Subscribe registers fn to run on every Bump.
func (r *Reloader) Subscribe(fn func(gen uint64)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// Generation reports the current reload generation.
func (r *Reloader) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Bump increments the generation and notifies every subscriber with the new
// value. Returns the new generation.
func (r *Reloader) Bump() uint64 {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	subs := make([]func(uint64), len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(gen)
	}
	return gen
}
