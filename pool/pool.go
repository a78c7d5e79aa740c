package pool

import (
	"sync"

	log "github.com/golang/glog"

	"github.com/ctu-tools/panda/worklist"
)

// Pool is a fixed-size set of workers draining a shared Worklist.
//
// Grounded on sync/semaphore.Semaphore's acquire/release-via-channel
// shape in the teacher corpus, generalized from "N permits guarding one
// critical section" to "N long-lived goroutines each draining one
// worklist until its own stop sentinel arrives" (§4.6).
type Pool struct {
	n  int
	wl worklist.Worklist
	wg sync.WaitGroup
}

// New spawns n workers, each looping: Get an item, execute it if it is
// a task, exit if it is a stop. Per §4.6, workers exit only upon
// receiving a stop sentinel — never on an idle worklist, never on a
// task's own failure.
func New(n int, wl worklist.Worklist) *Pool {
	p := &Pool{n: n, wl: wl}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		task, ok := p.wl.Get()
		if !ok {
			log.V(2).Infof("worker %d: stop received", id)
			return
		}
		task.Run()
	}
}

// AddTask wraps fn (with an optional size estimator) into a
// worklist.Task and enqueues it.
func (p *Pool) AddTask(fn func(), sizeFunc func() int) {
	p.wl.Put(worklist.Task{Run: fn, SizeFunc: sizeFunc})
}

// Join posts exactly N stop sentinels — one per worker — and waits for
// every worker to exit. This is the only way workers terminate (§4.6).
func (p *Pool) Join() {
	for i := 0; i < p.n; i++ {
		p.wl.PutStop()
	}
	p.wg.Wait()
}
