package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/hybridcache/tier"
)

var (
	ErrNilClient   = errors.New("redis tier: nil client")
	ErrNoNamespace = errors.New("redis tier: namespace is required")
)

// Store is a tier.Remote over a Redis client. Keys are prefixed with a
// per-cache namespace so that Clear can drop one cache's entries without
// touching the rest of the keyspace (the client is typically shared).
type Store struct {
	rdb         goredis.UniversalClient
	ns          string
	ttl         time.Duration
	closeClient bool
}

var _ tier.Remote = (*Store)(nil)

type Config struct {
	Client    goredis.UniversalClient
	Namespace string        // e.g. "vets", "owners"; also isolates Clear
	TTL       time.Duration // default entry TTL when Set gets ttl <= 0

	// CloseClient should be true only if this store exclusively owns the client.
	CloseClient bool
}

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	if cfg.Namespace == "" {
		return nil, ErrNoNamespace
	}
	return &Store{
		rdb:         cfg.Client,
		ns:          cfg.Namespace,
		ttl:         cfg.TTL,
		closeClient: cfg.CloseClient,
	}, nil
}

func (s *Store) key(k string) string { return s.ns + ":" + k }

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl // 0 => no expiry per redis semantics
	}
	return s.rdb.Set(ctx, s.key(key), value, ttl).Err()
}

func (s *Store) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

// Clear removes every key under this store's namespace. SCAN keeps it
// non-blocking on the server; deletes go out in batches.
func (s *Store) Clear(ctx context.Context) error {
	const batch = 512

	iter := s.rdb.Scan(ctx, 0, s.ns+":*", batch).Iterator()
	keys := make([]string, 0, batch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == batch {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return s.rdb.Del(ctx, keys...).Err()
	}
	return nil
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Store) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
