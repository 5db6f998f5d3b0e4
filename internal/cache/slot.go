package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a fresh value for a Slot.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// SlotStatus describes the state of a Slot.
type SlotStatus struct {
	Name      string    `json:"name"`
	Loaded    bool      `json:"loaded"`
	Expired   bool      `json:"expired"`
	FetchedAt time.Time `json:"fetchedAt,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Slot memoizes one value for a fixed TTL.
//
// A hit within the TTL never calls fetch. A miss or expiry fetches
// synchronously, stores the value and restarts the TTL. A failed fetch leaves
// the previous value untouched, reachable through Stale. Concurrent misses
// share one fetch.
type Slot[T any] struct {
	name  string
	ttl   time.Duration
	fetch FetchFunc[T]
	now   func() time.Time

	mu        sync.RWMutex
	value     T
	loaded    bool
	fetchedAt time.Time
	expiresAt time.Time

	group singleflight.Group
}

// NewSlot creates a slot. A nil now uses time.Now.
func NewSlot[T any](name string, ttl time.Duration, fetch FetchFunc[T], now func() time.Time) *Slot[T] {
	if now == nil {
		now = time.Now
	}
	return &Slot[T]{name: name, ttl: ttl, fetch: fetch, now: now}
}

// Name returns the slot name.
func (s *Slot[T]) Name() string {
	return s.name
}

// Get returns the memoized value, fetching it when missing or expired.
func (s *Slot[T]) Get(ctx context.Context) (T, error) {
	if v, ok := s.fresh(); ok {
		return v, nil
	}

	res, err, _ := s.group.Do(s.name, func() (interface{}, error) {
		if v, ok := s.fresh(); ok {
			return v, nil
		}
		// Shared by every waiter; detached from the first caller's cancellation.
		return s.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Stale returns the last successfully fetched value, expired or not.
func (s *Slot[T]) Stale() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.loaded
}

// Invalidate expires the current value without discarding it.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Time{}
}

// Status reports the slot state.
func (s *Slot[T]) Status() SlotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SlotStatus{
		Name:      s.name,
		Loaded:    s.loaded,
		Expired:   !s.loaded || !s.now().Before(s.expiresAt),
		FetchedAt: s.fetchedAt,
		ExpiresAt: s.expiresAt,
	}
}

func (s *Slot[T]) fresh() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loaded && s.now().Before(s.expiresAt) {
		return s.value, true
	}
	var zero T
	return zero, false
}

func (s *Slot[T]) load(ctx context.Context) (T, error) {
	v, err := s.fetch(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to fetch %s: %w", s.name, err)
	}

	now := s.now()

	s.mu.Lock()
	s.value = v
	s.loaded = true
	s.fetchedAt = now
	s.expiresAt = now.Add(s.ttl)
	s.mu.Unlock()

	return v, nil
}
