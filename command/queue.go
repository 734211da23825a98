package command

import (
	"errors"
	"sync"

	"github.com/zyedidia/generic/queue"
)

// ErrClosed is returned when pushing to a closed queue
var ErrClosed = errors.New("command queue closed")

// Queue is an unbounded multi-producer single-consumer FIFO
// Push never blocks; the consumer waits on Ready and Done
type Queue struct {
	mu     sync.Mutex
	items  *queue.Queue[Command]
	size   int
	closed bool

	ready chan struct{} // capacity 1, coalesces wakeups
	done  chan struct{} // closed by Close
	once  sync.Once
}

// NewQueue creates an empty open queue
func NewQueue() *Queue {
	return &Queue{
		items: queue.New[Command](),
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Push appends c and wakes the consumer
func (q *Queue) Push(c Command) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items.Enqueue(c)
	q.size++
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return nil
}

// Pop removes the oldest command without blocking
func (q *Queue) Pop() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Empty() {
		return nil, false
	}
	q.size--
	return q.items.Dequeue(), true
}

// Len returns the number of pending commands
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Ready signals at least one Push since the last receive
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Done is closed once Close has been called
func (q *Queue) Done() <-chan struct{} {
	return q.done
}

// Close rejects further pushes; pending commands stay poppable
func (q *Queue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.done)
	})
}

// Drained reports a closed queue with nothing left to pop
func (q *Queue) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && q.items.Empty()
}
