package hybridcache

import (
	"fmt"
)

// ComputeError reports that the compute function passed to GetOrCompute
// failed for a key. Nothing was cached; the underlying cause is available
// via Unwrap.
type ComputeError struct {
	Key string
	Err error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("hybridcache: value computation for %q failed: %v", e.Key, e.Err)
}

func (e *ComputeError) Unwrap() error { return e.Err }
