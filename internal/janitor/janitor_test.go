package janitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// fakeStore simulates the idempotency table with an expired backlog and
// a set of live rows that a sweep must never touch.
type fakeStore struct {
	mu      sync.Mutex
	expired int64
	live    int64
	sweeps  int
	failFor int // first N sweeps return an error

	swept chan struct{}
}

func newFakeStore(expired, live int64) *fakeStore {
	return &fakeStore{expired: expired, live: live, swept: make(chan struct{}, 64)}
}

func (f *fakeStore) SweepExpired(ctx context.Context, batch int) (int64, int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	defer func() {
		select {
		case f.swept <- struct{}{}:
		default:
		}
	}()

	if f.failFor > 0 {
		f.failFor--
		return 0, 0, 0, errors.New("connection reset")
	}

	expired := f.expired
	if expired == 0 {
		return 0, 0, 0, nil
	}
	deleted := min(int64(batch), expired)
	f.expired -= deleted
	return expired, deleted, f.expired, nil
}

func (f *fakeStore) state() (expired, live int64, sweeps int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expired, f.live, f.sweeps
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDisabledPerformsNoWork(t *testing.T) {
	fs := newFakeStore(100, 0)
	j := New(fs, Config{Enabled: false, Interval: time.Millisecond, Batch: 10}, testLogger())

	done := make(chan struct{})
	go func() {
		j.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled janitor did not return")
	}
	if _, _, sweeps := fs.state(); sweeps != 0 {
		t.Errorf("storage operations: got %d want 0", sweeps)
	}
}

func TestBatchBoundedSweep(t *testing.T) {
	fs := newFakeStore(2500, 0)
	j := New(fs, Config{Enabled: true, Interval: time.Millisecond, Batch: 1000}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	// 2500 expired at batch 1000 drains in three cycles: 1000, 1000, 500.
	deadline := time.After(2 * time.Second)
	for {
		expired, _, sweeps := fs.state()
		if expired == 0 && sweeps >= 3 {
			break
		}
		select {
		case <-fs.swept:
		case <-deadline:
			t.Fatalf("backlog not drained: expired=%d sweeps=%d", expired, sweeps)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
	if expired, _, _ := fs.state(); expired != 0 {
		t.Errorf("expired remaining: got %d want 0", expired)
	}
}

func TestLiveRowsUntouched(t *testing.T) {
	fs := newFakeStore(50, 70)
	j := New(fs, Config{Enabled: true, Interval: time.Millisecond, Batch: 1000}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		expired, _, _ := fs.state()
		if expired == 0 {
			break
		}
		select {
		case <-fs.swept:
		case <-deadline:
			t.Fatal("backlog not drained")
		}
	}
	cancel()
	<-done

	if _, live, _ := fs.state(); live != 70 {
		t.Errorf("live rows: got %d want 70", live)
	}
}

func TestLoopSurvivesStorageErrors(t *testing.T) {
	fs := newFakeStore(10, 0)
	fs.failFor = 2
	// Interval above the 60s error cap would stall the test; keep both tiny.
	j := New(fs, Config{Enabled: true, Interval: time.Millisecond, Batch: 10}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		expired, _, sweeps := fs.state()
		if expired == 0 && sweeps >= 3 {
			break
		}
		select {
		case <-fs.swept:
		case <-deadline:
			t.Fatalf("loop did not recover: expired=%d sweeps=%d", expired, sweeps)
		}
	}
	cancel()
	<-done
}

func TestCancelDuringSleep(t *testing.T) {
	fs := newFakeStore(0, 0)
	j := New(fs, Config{Enabled: true, Interval: time.Hour, Batch: 10}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	// First sweep happens immediately; the loop then sleeps for an hour.
	select {
	case <-fs.swept:
	case <-time.After(time.Second):
		t.Fatal("first sweep never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cancellation during sleep not honored")
	}
}
