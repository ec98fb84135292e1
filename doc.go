// Package hybridcache composes a local in-process cache tier and a
// distributed cache tier into one named cache with read-through promotion
// and dual-write semantics.
//
// Components:
//   - tier.Local: bounded, time-expiring byte store (e.g. Ristretto,
//     BigCache, sturdyc). In-process and authoritative: its failures are
//     real failures.
//   - tier.Remote: shared byte store with server-side TTLs (e.g. Redis).
//     Treated as an optimization layer, never a single point of failure:
//     every remote call sits inside a fault boundary that degrades errors
//     to a miss (reads) or a skipped write (writes).
//   - Codec[V]: (de)serializes V <-> []byte for the remote tier.
//   - Registry[V]: resolves a cache name to a coordinator, creating and
//     memoizing exactly one per name under concurrent first access.
//
// Read path:
//
//	local hit            -> return, no remote round-trip
//	local miss           -> remote get (fault boundary)
//	remote hit           -> promote into local (best effort), return
//	remote miss/failure  -> miss
//
// Write path: local write is synchronous and its error propagates; the
// remote write is attempted afterwards and degraded on failure. The two
// writes are independent; a failure in between leaves the tiers briefly
// inconsistent and the remote TTL is what heals it.
package hybridcache
