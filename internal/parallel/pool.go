// Package parallel provides the worker pool used by the shape binner.
//
// Binning is embarrassingly parallel across primitives: the pool runs one
// job per contiguous shape chunk, each job producing its tile assignments
// into private storage. The merge back into the tile grid stays
// single-threaded, so no shared mutable state is touched while workers run.
//
// Thread safety: WorkerPool is safe for concurrent use.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool distributes jobs across a fixed set of goroutines.
//
// Each worker owns a queue and steals from the others when its own queue
// runs dry, which balances load when some chunks are much denser than
// others (a single oversized primitive can dominate its chunk).
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queues holds one job queue per worker.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to exit.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting jobs.
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers and
// starts them. If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker is the main loop of one goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	mine := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(mine)
			return

		case job := <-mine:
			if job != nil {
				job()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
			} else {
				select {
				case <-p.done:
					p.drain(mine)
					return
				case job := <-mine:
					if job != nil {
						job()
					}
				}
			}
		}
	}
}

// drain runs whatever jobs are still queued.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			if job != nil {
				job()
			}
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll distributes jobs round-robin across the workers and blocks
// until every job has finished. A closed pool executes nothing.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))

	for i, job := range jobs {
		job := job
		wrapped := func() {
			defer wg.Done()
			job()
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wg.Done()
		}
	}

	wg.Wait()
}

// Close stops accepting jobs, waits for queued work to finish, and stops
// all workers. Close is safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the worker count.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts jobs.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
