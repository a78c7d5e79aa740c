package worklist

import (
	"container/heap"
	"sync"
)

// Strategy selects how the priority Worklist orders tasks by estimated
// size (§3, §5).
type Strategy int

const (
	// LongestFirst dequeues the largest-size task first.
	LongestFirst Strategy = iota
	// ShortestFirst dequeues the smallest-size task first.
	ShortestFirst
)

// Priority is a min-heap-backed Worklist ordered by estimated task size.
// Stop sentinels always compare greater than any task, so heap.Pop never
// returns one until every task Put before it has been drained.
//
// Grounded on the container/heap.Interface shape used in the corpus's
// only heap-based priority queue
// (Keyhole-Koro-InsightifyCore/internal/pipeline/codebase/c2.go),
// adapted from a dependency-weight heap to a task-size heap.
type Priority struct {
	strategy Strategy

	mu   sync.Mutex
	cond *sync.Cond
	pq   taskHeap
	seq  int64
}

// NewPriority creates an empty priority worklist under strategy.
func NewPriority(strategy Strategy) *Priority {
	p := &Priority{strategy: strategy}
	p.cond = sync.NewCond(&p.mu)
	return p
}

func (p *Priority) Put(t Task) {
	size := 0
	if t.SizeFunc != nil {
		// Computed before heap placement, per §4.5.
		size = t.SizeFunc()
	}
	p.mu.Lock()
	p.seq++
	heap.Push(&p.pq, &entry{task: t, size: size, seq: p.seq, strategy: p.strategy})
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *Priority) PutStop() {
	p.mu.Lock()
	p.seq++
	heap.Push(&p.pq, &entry{isStop: true, seq: p.seq, strategy: p.strategy})
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *Priority) Get() (Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.pq.Len() == 0 {
		p.cond.Wait()
	}
	e := heap.Pop(&p.pq).(*entry)
	if e.isStop {
		return Task{}, false
	}
	return e.task, true
}

// entry is one heap element: either a sized task or a stop sentinel.
type entry struct {
	task     Task
	size     int
	seq      int64
	isStop   bool
	strategy Strategy
}

// taskHeap implements container/heap.Interface. Stops always compare
// greater than tasks; among tasks, ordering follows entry.strategy;
// ties break by insertion sequence (oldest first), matching the
// "deterministic given the same size estimates and enqueue order"
// guarantee from §5.
type taskHeap []*entry

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.isStop != b.isStop {
		return !a.isStop // non-stop sorts before stop
	}
	if a.isStop && b.isStop {
		return a.seq < b.seq
	}
	if a.size != b.size {
		switch a.strategy {
		case ShortestFirst:
			return a.size < b.size
		default: // LongestFirst
			return a.size > b.size
		}
	}
	return a.seq < b.seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*entry))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
