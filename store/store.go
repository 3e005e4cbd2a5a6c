// Package store wraps a Manager around a fixed-capacity backing slice, so
// a Handle's range can be used directly as a view onto the elements it
// reserves. Views of distinct live handles never overlap; that follows
// from handle uniqueness and the disjointness of occupied blocks.
package store

import (
	"errors"
	"sync"
	"time"

	"buddyarena/allocator"
	"buddyarena/allocator/buddy"
	"buddyarena/allocator/types"
)

var ErrTidyWorkerRunning = errors.New("tidy worker already running")

// DefaultTidyInterval is used by StartTidyWorker when no interval is given.
const DefaultTidyInterval = time.Second

// Store is a fixed-capacity array of T with buddy-managed reservations.
//
// Unlike the bare Manager, a Store is safe for concurrent use: it is the
// coarse lock the single-writer contract asks the host for. Views returned
// by View are only synchronized by handle ownership; do not share a live
// handle's elements across goroutines without your own coordination.
type Store[T any] struct {
	mu    sync.Mutex
	elems []T
	mgr   *allocator.Manager

	tidyTicker  *time.Ticker
	tidyDone    chan struct{}
	tidyRunning bool
}

// New creates a Store with cfg.UniverseSize zero-valued elements.
func New[T any](cfg allocator.Config) (*Store[T], error) {
	mgr, err := allocator.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Store[T]{
		elems: make([]T, mgr.Config().UniverseSize),
		mgr:   mgr,
	}, nil
}

// Alloc reserves count elements. See allocator.Manager.Alloc.
func (s *Store[T]) Alloc(count int) (*allocator.Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.Alloc(count)
}

// View returns the slice of elements reserved by h, exactly h.Range() long.
// The slice's capacity is clipped so appends cannot reach past the range.
// Valid until h is released.
func (s *Store[T]) View(h *allocator.Handle) []T {
	r := h.Range()
	return s.elems[r.Start:r.End:r.End]
}

// Tidy drains pending releases and fully coalesces the tree.
func (s *Store[T]) Tidy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mgr.Tidy()
}

// TidyGas runs maintenance bounded by a work budget.
func (s *Store[T]) TidyGas(gas int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mgr.TidyGas(gas)
}

// TidyTimed runs maintenance bounded by an absolute deadline.
func (s *Store[T]) TidyTimed(deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mgr.TidyTimed(deadline)
}

// Snapshot returns a read-only projection of the bookkeeping tree.
func (s *Store[T]) Snapshot() *buddy.BlockInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.Snapshot()
}

// Pending returns the number of undrained releases.
func (s *Store[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mgr.Pending()
}

// StartTidyWorker starts a background worker that calls TidyGas(gas) every
// interval (DefaultTidyInterval if zero), so hosts without a natural tick
// still reclaim released ranges. The worker runs until StopTidyWorker.
func (s *Store[T]) StartTidyWorker(interval time.Duration, gas int) error {
	s.mu.Lock()

	if s.tidyRunning {
		s.mu.Unlock()
		return ErrTidyWorkerRunning
	}
	if interval == 0 {
		interval = DefaultTidyInterval
	}

	s.tidyTicker = time.NewTicker(interval)
	s.tidyDone = make(chan struct{})
	s.tidyRunning = true

	// Capture under the lock so a concurrent StopTidyWorker cannot race
	// the goroutine's view of these fields.
	ticker := s.tidyTicker
	done := s.tidyDone

	s.mu.Unlock()

	go s.tidyWorker(ticker, done, gas)
	return nil
}

// StopTidyWorker stops the background worker if it is running.
func (s *Store[T]) StopTidyWorker() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tidyRunning {
		return
	}
	s.tidyRunning = false
	s.tidyTicker.Stop()
	close(s.tidyDone)
}

func (s *Store[T]) tidyWorker(ticker *time.Ticker, done chan struct{}, gas int) {
	for {
		select {
		case <-ticker.C:
			s.TidyGas(gas)
		case <-done:
			ticker.Stop()
			return
		}
	}
}

var _ types.Tidier = (*Store[byte])(nil)
