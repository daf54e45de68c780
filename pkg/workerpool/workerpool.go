// Package workerpool provides a small bounded goroutine pool for
// fire-and-forget background jobs.
package workerpool

import "sync"

// Job is a unit of background work. Jobs must handle their own errors; the
// pool never inspects results.
type Job func()

// Pool runs submitted jobs on a fixed number of workers.
type Pool struct {
	jobs chan Job
	wg   sync.WaitGroup
}

// New creates a pool with the given number of workers and queue capacity.
func New(workers, queueSize int) *Pool {
	p := &Pool{jobs: make(chan Job, queueSize)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

// Submit enqueues a job. When the queue is full the job is dropped and false
// is returned; callers stay non-blocking either way.
func (p *Pool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}
