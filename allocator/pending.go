package allocator

import (
	"sync"

	"buddyarena/allocator/types"
)

// pendingQueue carries released block references until a maintenance call
// drains them. Producers are handle releases, which may run on any
// goroutine; the sole consumer is the Manager inside the Tidy family.
//
// The queue grows lazily and without bound, so a push never fails and
// never waits on the consumer. Construction cost is independent of the
// universe size.
type pendingQueue struct {
	mu   sync.Mutex
	refs []types.Ref
}

// push appends ref to the queue. Infallible; safe from any goroutine.
func (q *pendingQueue) push(ref types.Ref) {
	q.mu.Lock()
	q.refs = append(q.refs, ref)
	q.mu.Unlock()
}

// pop removes and returns the oldest queued ref, if any.
func (q *pendingQueue) pop() (types.Ref, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.refs) == 0 {
		return types.Ref{}, false
	}
	ref := q.refs[0]
	q.refs = q.refs[1:]
	if len(q.refs) == 0 {
		// Don't pin the drained backing array.
		q.refs = nil
	}
	return ref, true
}

// size returns the number of queued refs.
func (q *pendingQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.refs)
}
