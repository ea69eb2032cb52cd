package meshing

import (
	"context"
	"sync"

	"voxmesh/internal/palette"
)

// Job is one chunk build request for the worker pool.
type Job struct {
	Blocks []int32
	Origin [3]int32
	Greedy bool
	// Result channel - will be sent the result when done
	ResultChan chan Result
}

// Result pairs a finished build with the origin it was requested for.
type Result struct {
	Origin [3]int32
	Build  BuildResult
}

// WorkerPool meshes many chunks concurrently. Each worker owns a private
// Builder — Builders are non-reentrant — and all workers share one immutable
// palette snapshot, which is safe because snapshots are read-only. Batch mode
// is a per-Builder feature and is not available through the pool.
type WorkerPool struct {
	jobQueue chan Job
	pal      *palette.Palette
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool starts the given number of workers over the shared snapshot.
func NewWorkerPool(workers, queueSize int, pal *palette.Palette) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		pal:      pal,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// SubmitJob submits a build job to the pool.
// Returns true if the job was submitted successfully, false if the queue is full.
func (p *WorkerPool) SubmitJob(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued.
func (p *WorkerPool) SubmitJobBlocking(job Job) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	builder := NewBuilder()
	builder.UsePalette(p.pal)

	for {
		select {
		case job := <-p.jobQueue:
			var build BuildResult
			if job.Greedy {
				build = builder.BuildChunkGreedy(job.Blocks, job.Origin[0], job.Origin[1], job.Origin[2])
			} else {
				build = builder.BuildChunk(job.Blocks, job.Origin[0], job.Origin[1], job.Origin[2])
			}

			select {
			case job.ResultChan <- Result{Origin: job.Origin, Build: build}:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown gracefully shuts down the worker pool.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLength returns the current number of jobs waiting in the queue.
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}
