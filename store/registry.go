package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"github.com/k3tzchen/conf/config"
)

// Registry caches loaded configurations by key. Concurrent loads of one key
// run the load function once and share its result. Only successful loads
// are cached.
type Registry struct {
	group singleflight.Group

	mu    sync.RWMutex
	items map[uint64]*config.Config
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[uint64]*config.Config)}
}

// Key returns the registry key of a name and normalized version.
func Key(name, version string) uint64 {
	return xxh3.HashString(name + "\x00" + version)
}

// Load returns the configuration cached under key, calling fn to produce
// it on a miss. The second result reports whether the value came from the
// cache or from another caller's concurrent load.
func (r *Registry) Load(
	ctx context.Context,
	key uint64,
	fn func(context.Context) (*config.Config, error),
) (*config.Config, bool, error) {
	if c, ok := r.get(key); ok {
		return c, true, nil
	}

	v, err, shared := r.group.Do(
		strconv.FormatUint(key, 16),
		func() (any, error) {
			if c, ok := r.get(key); ok {
				return c, nil
			}

			c, err := fn(ctx)
			if err != nil {
				return nil, err
			}

			r.mu.Lock()
			r.items[key] = c
			r.mu.Unlock()

			return c, nil
		},
	)
	if err != nil {
		return nil, false, err
	}

	return v.(*config.Config), shared, nil
}

// Forget removes key from the cache.
func (r *Registry) Forget(key uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, key)
}

// Len returns the number of cached configurations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

func (r *Registry) get(key uint64) (*config.Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[key]

	return c, ok
}
