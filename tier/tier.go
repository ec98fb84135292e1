// Package tier defines the two storage tiers composed by hybridcache.
//
// Local is the in-process tier: bounded, time-expiring, fast, and assumed
// reliable — its errors indicate real defects. Remote is the shared tier:
// reached over a network, so every call may fail and callers must be
// prepared to continue without it.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed so that the bytes returned by Get are identical to the bytes
// provided to Set.
package tier

import (
	"context"
	"time"
)

// Stats is a point-in-time snapshot of a local tier's counters.
// Stores that cannot observe evictions report Evictions as 0.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRatio returns Hits / (Hits + Misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Local is an in-process byte store with a capacity bound and per-entry
// (or store-wide) expiry. Must be safe for concurrent use.
type Local interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write (admission policy
	// or pressure); that is not an error.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key; absence is not an error.
	Del(ctx context.Context, key string) error

	// Clear drops every entry in the store.
	Clear(ctx context.Context) error

	// Stats reports the store's hit/miss/eviction counters.
	Stats() Stats

	// Close releases resources.
	Close(ctx context.Context) error
}

// Remote is a shared byte store with server-enforced TTLs. Any call may
// observe a network round-trip and fail; hybridcache degrades such failures
// rather than surfacing them.
type Remote interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (non-positive means the store's
	// default, or no expiry if it has none).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Clear drops every entry belonging to this store's namespace.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
