package hybridcache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	c "github.com/unkn0wn-root/hybridcache/codec"
	"github.com/unkn0wn-root/hybridcache/tier"
)

// LocalFactory builds the local tier for a named cache.
type LocalFactory func(name string) (tier.Local, error)

// RemoteFactory builds the remote tier for a named cache.
type RemoteFactory func(name string) (tier.Remote, error)

// RegistryOptions configure every cache a Registry builds. Codec is
// required; either factory may be nil, but not both.
type RegistryOptions[V any] struct {
	Codec  c.Codec[V]
	Local  LocalFactory
	Remote RemoteFactory

	Logger         Logger
	Hooks          Hooks
	LocalTTL       time.Duration
	RemoteTTL      time.Duration
	ComputeSetCost SetCostFunc
	CacheRemoteNil bool
}

// Registry resolves a cache name to a Cache[V], building one per name on
// first request and memoizing it for the registry's lifetime. Safe for
// concurrent use: racing first accesses for the same name observe a single
// instance, and the factories run at most once per name.
type Registry[V any] struct {
	opts   RegistryOptions[V]
	caches *xsync.MapOf[string, Cache[V]]
}

func NewRegistry[V any](opts RegistryOptions[V]) (*Registry[V], error) {
	if opts.Codec == nil {
		return nil, fmt.Errorf("hybridcache: registry codec is required")
	}
	if opts.Local == nil && opts.Remote == nil {
		return nil, fmt.Errorf("hybridcache: registry needs at least one tier factory")
	}
	return &Registry[V]{
		opts:   opts,
		caches: xsync.NewMapOf[string, Cache[V]](),
	}, nil
}

// Get returns the cache registered under name, building it on first use.
// A factory failure is returned to every racing caller and nothing is
// memoized, so a later Get can retry.
func (r *Registry[V]) Get(name string) (Cache[V], error) {
	if name == "" {
		return nil, fmt.Errorf("hybridcache: cache name is required")
	}
	if cc, ok := r.caches.Load(name); ok {
		return cc, nil
	}

	var buildErr error
	cc, ok := r.caches.Compute(name, func(cur Cache[V], loaded bool) (Cache[V], bool) {
		if loaded {
			return cur, false
		}
		nc, err := r.build(name)
		if err != nil {
			buildErr = err
			return nil, true // delete: keep the mapping clean on failure
		}
		return nc, false
	})
	if !ok {
		return nil, buildErr
	}
	return cc, nil
}

func (r *Registry[V]) build(name string) (Cache[V], error) {
	var (
		local  tier.Local
		remote tier.Remote
		err    error
	)
	if r.opts.Local != nil {
		if local, err = r.opts.Local(name); err != nil {
			return nil, fmt.Errorf("hybridcache: local tier for %q: %w", name, err)
		}
	}
	if r.opts.Remote != nil {
		if remote, err = r.opts.Remote(name); err != nil {
			if local != nil {
				_ = local.Close(context.Background())
			}
			return nil, fmt.Errorf("hybridcache: remote tier for %q: %w", name, err)
		}
	}
	return New[V](Options[V]{
		Name:           name,
		Codec:          r.opts.Codec,
		Local:          local,
		Remote:         remote,
		Logger:         r.opts.Logger,
		Hooks:          r.opts.Hooks,
		LocalTTL:       r.opts.LocalTTL,
		RemoteTTL:      r.opts.RemoteTTL,
		ComputeSetCost: r.opts.ComputeSetCost,
		CacheRemoteNil: r.opts.CacheRemoteNil,
	})
}

// Names returns a sorted snapshot of the registered cache names.
func (r *Registry[V]) Names() []string {
	names := make([]string, 0, r.caches.Size())
	r.caches.Range(func(name string, _ Cache[V]) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// ClearAll clears every registered cache. Local-tier failures are collected
// and returned joined; remote-tier failures degrade inside each cache.
func (r *Registry[V]) ClearAll(ctx context.Context) error {
	var errs []error
	r.caches.Range(func(name string, cc Cache[V]) bool {
		if err := cc.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("clear %q: %w", name, err))
		}
		return true
	})
	return errors.Join(errs...)
}

// Stats returns a per-cache snapshot of local-tier counters.
func (r *Registry[V]) Stats() map[string]tier.Stats {
	out := make(map[string]tier.Stats, r.caches.Size())
	r.caches.Range(func(name string, cc Cache[V]) bool {
		out[name] = cc.Stats()
		return true
	})
	return out
}

// Close closes every registered cache and forgets the mapping.
func (r *Registry[V]) Close(ctx context.Context) error {
	var errs []error
	r.caches.Range(func(name string, cc Cache[V]) bool {
		if err := cc.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", name, err))
		}
		r.caches.Delete(name)
		return true
	})
	return errors.Join(errs...)
}
