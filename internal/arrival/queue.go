package arrival

import (
	"context"
	"sync"
)

// workQueue is an unbounded FIFO with a set of paths that are queued or
// being handled. A path in the set is never queued twice. A path pushed while
// it is being handled is held back and queued once when handling ends.
type workQueue struct {
	mu       sync.Mutex
	items    []Candidate
	inFlight map[string]struct{}
	handling map[string]struct{}
	deferred map[string]Candidate
	wake     chan struct{}
}

func newWorkQueue() *workQueue {
	return &workQueue{
		inFlight: make(map[string]struct{}),
		handling: make(map[string]struct{}),
		deferred: make(map[string]Candidate),
		wake:     make(chan struct{}, 1),
	}
}

// push queues candidate unless its path is already in flight. It reports
// whether the candidate was queued now.
func (q *workQueue) push(candidate Candidate) bool {
	q.mu.Lock()
	if _, busy := q.inFlight[candidate.Path]; busy {
		if _, active := q.handling[candidate.Path]; active {
			if _, held := q.deferred[candidate.Path]; !held {
				q.deferred[candidate.Path] = candidate
			}
		}
		q.mu.Unlock()
		return false
	}
	q.appendLocked(candidate)
	q.mu.Unlock()

	q.signal()
	return true
}

func (q *workQueue) appendLocked(candidate Candidate) {
	q.inFlight[candidate.Path] = struct{}{}
	q.items = append(q.items, candidate)
}

func (q *workQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pop blocks until a candidate is available or ctx is done.
func (q *workQueue) pop(ctx context.Context) (Candidate, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			candidate := q.items[0]
			q.items[0] = Candidate{}
			q.items = q.items[1:]
			q.handling[candidate.Path] = struct{}{}
			q.mu.Unlock()
			return candidate, true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Candidate{}, false
		case <-q.wake:
		}
	}
}

// done releases path so it may be queued again. A candidate held back while
// path was handled is queued now.
func (q *workQueue) done(path string) {
	q.mu.Lock()
	delete(q.inFlight, path)
	delete(q.handling, path)
	candidate, held := q.deferred[path]
	if held {
		delete(q.deferred, path)
		q.appendLocked(candidate)
	}
	q.mu.Unlock()

	if held {
		q.signal()
	}
}

func (q *workQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
