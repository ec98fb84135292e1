package hybridcache

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/hybridcache/codec"
	"github.com/unkn0wn-root/hybridcache/internal/wire"
	"github.com/unkn0wn-root/hybridcache/tier"
)

const (
	defaultLocalTTL  = 5 * time.Minute
	defaultRemoteTTL = 30 * time.Minute
)

type hybrid[V any] struct {
	name   string
	local  tier.Local
	remote tier.Remote
	codec  c.Codec[V]
	log    Logger
	hooks  Hooks

	localTTL       time.Duration
	remoteTTL      time.Duration
	computeSetCost SetCostFunc
	cacheRemoteNil bool
}

func newHybrid[V any](opts Options[V]) (*hybrid[V], error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("hybridcache: name is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("hybridcache: codec is required")
	}
	if opts.Local == nil && opts.Remote == nil {
		return nil, fmt.Errorf("hybridcache: at least one tier is required")
	}

	h := &hybrid[V]{
		name:           opts.Name,
		local:          opts.Local,
		remote:         opts.Remote,
		codec:          opts.Codec,
		cacheRemoteNil: opts.CacheRemoteNil,
	}

	// defaults
	h.log = coalesce[Logger](opts.Logger, NopLogger{})
	h.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	h.localTTL = coalesce[time.Duration](opts.LocalTTL, defaultLocalTTL)
	h.remoteTTL = coalesce[time.Duration](opts.RemoteTTL, defaultRemoteTTL)

	if opts.ComputeSetCost != nil {
		h.computeSetCost = opts.ComputeSetCost
	} else {
		h.computeSetCost = func(_ string, _ []byte) int64 { return 1 }
	}

	return h, nil
}

func (h *hybrid[V]) Name() string { return h.name }

func (h *hybrid[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V

	if h.local != nil {
		raw, ok, err := h.local.Get(ctx, key)
		if err != nil {
			return zero, false, err // local tier is in-process; a fault here is real
		}
		if ok {
			v, valid, null := h.decodeEntry(raw)
			if valid {
				if null {
					return zero, true, nil
				}
				return v, true, nil
			}
			_ = h.local.Del(ctx, key) // self-heal corrupt
		}
	}

	if h.remote == nil {
		return zero, false, nil
	}

	raw, ok, err := h.remote.Get(ctx, key)
	if err != nil {
		h.degrade("get", key, err)
		return zero, false, nil
	}
	if !ok {
		return zero, false, nil
	}

	v, valid, null := h.decodeEntry(raw)
	if !valid {
		// foreign or corrupt remote bytes; treat as miss and drop best-effort
		if derr := h.remote.Del(ctx, key); derr != nil {
			h.degrade("del", key, derr)
		}
		return zero, false, nil
	}

	if h.local != nil {
		h.promote(ctx, key, raw)
	}
	if null {
		return zero, true, nil
	}
	return v, true, nil
}

func (h *hybrid[V]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, error) {
	v, ok, err := h.Get(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	if ok {
		return v, nil
	}

	v, err = compute(ctx)
	if err != nil {
		var zero V
		return zero, &ComputeError{Key: key, Err: err}
	}
	if err := h.Put(ctx, key, v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

func (h *hybrid[V]) Put(ctx context.Context, key string, value V) error {
	null := isNil(value)

	var payload []byte
	if !null {
		p, err := h.codec.Encode(value)
		if err != nil {
			return err
		}
		payload = p
	}
	raw := wire.Encode(null, payload)

	if h.local != nil {
		ok, err := h.local.Set(ctx, key, raw, h.computeSetCost(key, raw), h.localTTL)
		if err != nil {
			return err
		}
		if !ok {
			h.hooks.LocalSetRejected(h.name, key)
			h.log.Debug("local set rejected (pressure)", Fields{"cache": h.name, "key": key})
		}
	}

	if h.remote == nil {
		return nil
	}
	if null && !h.cacheRemoteNil {
		h.hooks.NilSkipped(h.name, key)
		return nil
	}
	if err := h.remote.Set(ctx, key, raw, h.remoteTTL); err != nil {
		h.degrade("set", key, err)
	}
	return nil
}

func (h *hybrid[V]) Evict(ctx context.Context, key string) error {
	if h.local != nil {
		if err := h.local.Del(ctx, key); err != nil {
			return err
		}
	}
	if h.remote != nil {
		if err := h.remote.Del(ctx, key); err != nil {
			h.degrade("del", key, err)
		}
	}
	return nil
}

func (h *hybrid[V]) Clear(ctx context.Context) error {
	if h.local != nil {
		if err := h.local.Clear(ctx); err != nil {
			return err
		}
	}
	if h.remote != nil {
		if err := h.remote.Clear(ctx); err != nil {
			h.degrade("clear", "", err)
		}
	}
	return nil
}

func (h *hybrid[V]) Stats() tier.Stats {
	if h.local == nil {
		return tier.Stats{}
	}
	return h.local.Stats()
}

func (h *hybrid[V]) Close(ctx context.Context) error {
	if h.remote != nil {
		if err := h.remote.Close(ctx); err != nil {
			h.log.Warn("remote tier close failed", Fields{"cache": h.name, "err": err.Error()})
		}
	}
	if h.local != nil {
		return h.local.Close(ctx)
	}
	return nil
}

// promote copies a remote hit into the local tier. The raw bytes go in
// unchanged, so the null marker and payload survive as-is. Failures must
// not fail the surrounding Get.
func (h *hybrid[V]) promote(ctx context.Context, key string, raw []byte) {
	ok, err := h.local.Set(ctx, key, raw, h.computeSetCost(key, raw), h.localTTL)
	if err != nil || !ok {
		h.hooks.PromoteSkipped(h.name, key)
		if err != nil {
			h.log.Warn("promotion into local tier failed", Fields{"cache": h.name, "key": key, "err": err.Error()})
		}
		return
	}
	h.hooks.Promoted(h.name, key)
}

// decodeEntry unwraps wire framing and decodes the payload.
// valid=false means corrupt framing or an undecodable payload.
func (h *hybrid[V]) decodeEntry(raw []byte) (v V, valid, null bool) {
	var zero V
	isNull, payload, err := wire.Decode(raw)
	if err != nil {
		return zero, false, false
	}
	if isNull {
		return zero, true, true
	}
	v, err = h.codec.Decode(payload)
	if err != nil {
		return zero, false, false
	}
	return v, true, false
}

// degrade is the remote-tier fault boundary: log at Warn, notify hooks,
// and let the caller proceed as if the tier were absent for this call.
func (h *hybrid[V]) degrade(op, key string, err error) {
	h.hooks.RemoteFault(h.name, op, key, err)
	h.log.Warn("remote tier "+op+" failed; continuing without it",
		Fields{"cache": h.name, "key": key, "err": err.Error()})
}
