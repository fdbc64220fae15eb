// Package ratelimit holds fixed-window request counters keyed by client address.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store increments the counter for key inside the current window and reports the
// post-increment count and when the window resets.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

type bucket struct {
	count int
	start time.Time
}

// Memory is a process-local Store. Every call sweeps windows that have expired.
type Memory struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *Memory) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for k, b := range m.buckets {
		if now.Sub(b.start) >= window {
			delete(m.buckets, k)
		}
	}

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{start: now}
		m.buckets[key] = b
	}
	b.count++

	return b.count, b.start.Add(window), nil
}

// Len reports how many clients are currently tracked.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}
