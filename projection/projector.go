package projection

import (
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"kakeibo/ledger"
)

const (
	defaultCacheSize = 16
	defaultCacheTTL  = 5 * time.Minute
)

// Projector memoizes projections of one store. Results are keyed by the
// store revision and the scope, so any mutation invalidates every cached
// series without the cache and the store ever talking to each other.
type Projector struct {
	store *ledger.Store
	cache *resultCache
	group singleflight.Group
}

// ProjectorOptions tunes the memoization cache. The zero value selects
// the defaults.
type ProjectorOptions struct {
	CacheSize int
	CacheTTL  time.Duration
}

// NewProjector creates a memoizing projector bound to the store.
func NewProjector(store *ledger.Store, opts ProjectorOptions) *Projector {
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	return &Projector{
		store: store,
		cache: newResultCache(opts.CacheSize, opts.CacheTTL),
	}
}

// Project returns the current series for the scope, computing it at most
// once per store revision.
func (p *Projector) Project(scope Scope) Result {
	key := fmt.Sprintf("%d/%s", p.store.Revision(), scope.Key())

	if result, ok := p.cache.get(key); ok {
		return result
	}

	v, _, _ := p.group.Do(key, func() (any, error) {
		result := Project(p.store.Accounts(), p.store.Transactions(), scope)
		p.cache.set(key, result)
		return result, nil
	})
	return v.(Result)
}
