package sturdyc

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	sc "github.com/viccon/sturdyc"

	"github.com/unkn0wn-root/hybridcache/tier"
)

// Store is a tier.Local backed by a sturdyc client. sturdyc manages its own
// sharded LRU-ish eviction and store-wide TTL; the per-Set TTL argument is
// ignored. Hit/miss counters are kept in the adapter (sturdyc only exposes
// metrics through its own recorder), and evictions are reported as 0.
type Store struct {
	c *sc.Client[[]byte]

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ tier.Local = (*Store)(nil)

type Config struct {
	Capacity           int
	NumShards          int           // 0 => 64
	TTL                time.Duration // store-wide entry TTL
	EvictionPercentage int           // 0 => 10
}

func New(cfg Config) (*Store, error) {
	if cfg.Capacity <= 0 {
		return nil, errors.New("sturdyc: capacity must be > 0")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("sturdyc: ttl must be > 0")
	}
	shards := cfg.NumShards
	if shards <= 0 {
		shards = 64
	}
	evict := cfg.EvictionPercentage
	if evict <= 0 {
		evict = 10
	}
	return &Store{c: sc.New[[]byte](cfg.Capacity, shards, cfg.TTL, evict)}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := s.c.Get(key)
	if !ok {
		s.misses.Add(1)
		return nil, false, nil
	}
	s.hits.Add(1)
	return b, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	s.c.Set(key, value)
	return true, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.c.Delete(key)
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	for _, key := range s.c.ScanKeys() {
		s.c.Delete(key)
	}
	return nil
}

func (s *Store) Stats() tier.Stats {
	return tier.Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
}

func (s *Store) Close(_ context.Context) error { return nil }
