package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// Result of one admission check.
type Result struct {
	Allowed   bool
	Remaining int
	// RetryAfter is the whole-second wait (rounded up) until the window
	// resets. Only meaningful when Allowed is false.
	RetryAfter int
	ResetAt    time.Time
}

// Limiter gates admission per caller identifier. Implementations count
// requests in fixed windows: swapping the in-memory store for a shared one
// means substituting the implementation behind this interface, nothing else.
type Limiter interface {
	Check(ctx context.Context, identifier string) (Result, error)
}

type entry struct {
	count   int
	resetAt time.Time
}

// Memory is a fixed-window counter held in process memory. It is not shared
// across instances and does not survive restarts; that scoping is intentional
// for a single low-volume deployment. Entries are never evicted, so the map
// grows with the number of distinct identifiers seen over the process
// lifetime.
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// NewMemory creates an in-memory limiter admitting limit requests per window.
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// WithClock replaces the time source. Tests use it to step through windows
// without real delays.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Check(_ context.Context, identifier string) (Result, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[identifier]
	if !ok || !now.Before(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(m.window)}
		m.entries[identifier] = e
		return Result{Allowed: true, Remaining: m.limit - 1, ResetAt: e.resetAt}, nil
	}

	if e.count < m.limit {
		e.count++
		return Result{Allowed: true, Remaining: m.limit - e.count, ResetAt: e.resetAt}, nil
	}

	return Result{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: retryAfterSeconds(e.resetAt.Sub(now)),
		ResetAt:    e.resetAt,
	}, nil
}

// Size reports the number of tracked identifiers.
func (m *Memory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
