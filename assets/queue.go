package assets

import "sync"

// Queue hands work from loader goroutines to the frame thread. Producers
// Post closures; the frame thread runs them with Drain at the start of a tick,
// so every scene mutation stays on one thread.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

func NewQueue() *Queue {
	return &Queue{}
}

// Post enqueues fn. Safe for concurrent use.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs every queued closure in posting order on the calling goroutine
// and returns how many ran. Closures posted while draining wait for the next
// call.
func (q *Queue) Drain() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
