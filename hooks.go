package hybridcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A remote-tier call failed and was degraded (miss for reads, skipped
	// write for the rest). op ∈ {"get", "set", "del", "clear"}
	RemoteFault(cache, op, key string, err error)

	// A remote hit was copied into the local tier.
	Promoted(cache, key string)

	// The local write during promotion failed or was rejected; the get
	// still returned the remote value.
	PromoteSkipped(cache, key string)

	// A nil value was not written to the remote tier (nils are local-only
	// unless Options.CacheRemoteNil is set).
	NilSkipped(cache, key string)

	// Local tier rejected a Set (admission policy/backpressure).
	LocalSetRejected(cache, key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) RemoteFault(string, string, string, error) {}
func (NopHooks) Promoted(string, string)                   {}
func (NopHooks) PromoteSkipped(string, string)             {}
func (NopHooks) NilSkipped(string, string)                 {}
func (NopHooks) LocalSetRejected(string, string)           {}
