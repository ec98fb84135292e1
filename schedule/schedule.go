// Package schedule drives registry-wide maintenance from a cron trigger.
// A typical deployment clears every registered cache once a day:
//
//	f, _ := schedule.NewFlusher(reg, "0 4 * * *", logger)
//	f.Start()
//	defer f.Stop()
package schedule

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/unkn0wn-root/hybridcache"
)

// Registry is the slice of the hybridcache registry the flusher drives.
type Registry interface {
	ClearAll(ctx context.Context) error
}

// Flusher calls Registry.ClearAll on a cron schedule.
type Flusher struct {
	c    *cron.Cron
	reg  Registry
	log  hybridcache.Logger
	spec string
}

// NewFlusher validates spec (standard 5-field cron or @-descriptors like
// "@daily", "@every 1h") and registers the job. Start must be called before
// anything runs.
func NewFlusher(reg Registry, spec string, log hybridcache.Logger) (*Flusher, error) {
	if reg == nil {
		return nil, fmt.Errorf("schedule: registry is required")
	}
	if log == nil {
		log = hybridcache.NopLogger{}
	}
	f := &Flusher{
		c:    cron.New(),
		reg:  reg,
		log:  log,
		spec: spec,
	}
	if _, err := f.c.AddFunc(spec, f.run); err != nil {
		return nil, fmt.Errorf("schedule: invalid cron spec %q: %w", spec, err)
	}
	return f, nil
}

func (f *Flusher) run() {
	if err := f.reg.ClearAll(context.Background()); err != nil {
		f.log.Warn("scheduled clear-all finished with errors", hybridcache.Fields{"spec": f.spec, "err": err.Error()})
		return
	}
	f.log.Info("scheduled clear-all completed", hybridcache.Fields{"spec": f.spec})
}

// Start launches the cron scheduler in its own goroutine.
func (f *Flusher) Start() { f.c.Start() }

// Stop halts scheduling; the returned context is done once any in-flight
// run has finished.
func (f *Flusher) Stop() context.Context { return f.c.Stop() }
