package hybridcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/hybridcache/codec"
	"github.com/unkn0wn-root/hybridcache/tier"
)

// SetCostFunc computes the local-tier admission cost of an entry.
type SetCostFunc func(key string, raw []byte) int64

// Cache is a named two-tier cache. V is the caller's value type;
// serialization for the remote tier is handled by a pluggable Codec[V].
//
// Reads prefer the local tier and fall through to the remote tier with
// promotion on hit. Writes go to the local tier synchronously and to the
// remote tier best-effort. Remote-tier outages are never surfaced as
// errors; callers observe degraded (local-only) caching instead.
type Cache[V any] interface {
	// Name returns the cache's registry name.
	Name() string

	// Get returns the cached value for key. ok distinguishes a present
	// entry (including a present nil) from a miss.
	Get(ctx context.Context, key string) (v V, ok bool, err error)

	// GetOrCompute returns the cached value for key, or runs compute once,
	// caches its result via Put, and returns it. A compute failure is
	// surfaced as *ComputeError and nothing is cached.
	//
	// Concurrent callers missing on the same key each run compute (no
	// single-flight); callers needing at-most-once computation must
	// coordinate themselves.
	GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, error)

	// Put writes value to both tiers. Local failure propagates; remote
	// failure is logged and swallowed.
	Put(ctx context.Context, key string, value V) error

	// Evict removes key from both tiers (same failure split as Put).
	Evict(ctx context.Context, key string) error

	// Clear empties both tiers (same failure split as Put).
	Clear(ctx context.Context) error

	// Stats reports the local tier's counters; zero when no local tier.
	Stats() tier.Stats

	// Close releases both tiers.
	Close(ctx context.Context) error
}

// Options tune the behavior of a cache. Name and Codec are required, and at
// least one tier must be configured; the rest have sensible defaults.
type Options[V any] struct {
	// Required
	Name  string // e.g. "vets", "owners", "visits"
	Codec c.Codec[V]

	// Tiers. Either may be nil (not configured); absence of one must not
	// affect the other.
	Local  tier.Local
	Remote tier.Remote

	Logger         Logger        // if nil, NopLogger is used
	Hooks          Hooks         // if nil, NopHooks is used
	LocalTTL       time.Duration // per-entry local expiry; 0 => 5m
	RemoteTTL      time.Duration // server-side remote expiry; 0 => 30m
	ComputeSetCost SetCostFunc   // default 1

	// CacheRemoteNil also stores nil values in the remote tier. Off by
	// default: the local tier caches a present-nil entry, the remote tier
	// skips it.
	CacheRemoteNil bool
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newHybrid[V](opts)
}
