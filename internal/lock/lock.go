// Package lock provides the distributed lock abstraction guarding question
// generation for a given analysis (spec.md §5, "Shared-resource policy").
// The core only needs a SETNX-style atomic acquire with TTL and a release;
// a Redis- or etcd-backed implementation is a deployment concern the core
// does not own (spec.md §1 scope boundary around persistence), so only an
// in-memory implementation ships here, used both by tests and by
// single-process deployments.
package lock

import (
	"context"
	"sync"
	"time"
)

// Locker guards a critical section keyed by an arbitrary string (the
// Pipeline Coordinator uses owner/repo@ref). Acquire is non-blocking: it reports whether the
// lock was obtained, never waits.
type Locker interface {
	// TryAcquire attempts to atomically acquire the lock for key with the
	// given TTL. Returns true if acquired.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release releases a lock previously acquired by this process. Releasing
	// a lock not held by the caller is a no-op, matching SETNX/DEL
	// semantics where a stale release simply does nothing.
	Release(ctx context.Context, key string) error
}

// InMemoryLocker implements Locker with a process-local map. Expired
// entries are treated as absent on the next TryAcquire/Release, so no
// background sweeper goroutine is needed.
type InMemoryLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time // key -> expiry
}

// NewInMemoryLocker constructs an empty InMemoryLocker.
func NewInMemoryLocker() *InMemoryLocker {
	return &InMemoryLocker{held: make(map[string]time.Time)}
}

func (l *InMemoryLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if exp, ok := l.held[key]; ok && time.Now().Before(exp) {
		return false, nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	l.held[key] = time.Now().Add(ttl)
	return true, nil
}

func (l *InMemoryLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

// DefaultTTL is the five-minute lock lifetime specified for question
// generation de-duplication across concurrent requests.
const DefaultTTL = 5 * time.Minute

// PollInterval is the cadence at which a caller waiting on
// GENERATION_IN_PROGRESS should re-check the question cache, per spec.md §5
// ("polling the question cache up to ~50s").
const PollInterval = 500 * time.Millisecond

// MaxWait bounds how long a caller will poll before giving up and
// surfacing GENERATION_IN_PROGRESS to its own caller.
const MaxWait = 50 * time.Second

// ErrGenerationInProgress is returned by callers that chose not to wait, or
// that waited MaxWait without observing a completed result.
type ErrGenerationInProgress struct{ AnalysisID string }

func (e *ErrGenerationInProgress) Error() string {
	return "question generation already in progress for analysis " + e.AnalysisID
}
