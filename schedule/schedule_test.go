package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeRegistry struct {
	calls atomic.Int64
	err   error
}

func (f *fakeRegistry) ClearAll(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestNewFlusherValidates(t *testing.T) {
	if _, err := NewFlusher(nil, "@daily", nil); err == nil {
		t.Fatalf("nil registry should fail")
	}
	if _, err := NewFlusher(&fakeRegistry{}, "not a cron spec", nil); err == nil {
		t.Fatalf("invalid spec should fail")
	}
	if _, err := NewFlusher(&fakeRegistry{}, "0 4 * * *", nil); err != nil {
		t.Fatalf("daily spec rejected: %v", err)
	}
}

func TestFlusherFiresAndStops(t *testing.T) {
	reg := &fakeRegistry{}
	f, err := NewFlusher(reg, "@every 50ms", nil)
	if err != nil {
		t.Fatalf("NewFlusher: %v", err)
	}

	f.Start()
	deadline := time.After(2 * time.Second)
	for reg.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("flusher never fired")
		case <-time.After(10 * time.Millisecond):
		}
	}
	<-f.Stop().Done()

	settled := reg.calls.Load()
	time.Sleep(120 * time.Millisecond)
	if got := reg.calls.Load(); got != settled {
		t.Fatalf("flusher fired after Stop: %d -> %d", settled, got)
	}
}

func TestFlusherSwallowsClearErrors(t *testing.T) {
	reg := &fakeRegistry{err: errors.New("local tier fault")}
	f, err := NewFlusher(reg, "@every 50ms", nil)
	if err != nil {
		t.Fatalf("NewFlusher: %v", err)
	}

	// run directly: an error is logged, never panics or halts the schedule
	f.run()
	f.run()
	if got := reg.calls.Load(); got != 2 {
		t.Fatalf("ClearAll ran %d times, want 2", got)
	}
}
