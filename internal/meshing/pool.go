package meshing

import (
	"context"
	"sync"

	"voxelmesh/internal/world"
)

// Job asks a worker to mesh one chunk. Workers only read chunk data and
// write their own isolated output, so jobs for different chunks may run in
// parallel as long as no block edits happen while the pool is draining.
type Job struct {
	Chunk     *world.Chunk
	Neighbors NeighborFunc
	Result    chan<- Result
}

// Result carries one finished build back to the submitter.
type Result struct {
	Coord world.ChunkCoord
	Mesh  *Mesh
	Err   error
}

// WorkerPool runs mesh builds on a fixed set of goroutines, each with its
// own Builder.
type WorkerPool struct {
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool starts workers goroutines, each owning a builder from
// newBuilder.
func NewWorkerPool(workers, queueSize int, newBuilder func() *Builder) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(newBuilder())
	}
	return p
}

// Submit queues a job without blocking. Returns false when the queue is
// full.
func (p *WorkerPool) Submit(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitBlocking queues a job, waiting for space if needed.
func (p *WorkerPool) SubmitBlocking(job Job) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *WorkerPool) worker(b *Builder) {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			m, err := b.Build(job.Chunk, job.Neighbors)
			result := Result{Coord: job.Chunk.Coord, Mesh: m, Err: err}
			select {
			case job.Result <- result:
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

// QueueLen returns the current number of queued jobs.
func (p *WorkerPool) QueueLen() int {
	return len(p.jobQueue)
}

// Shutdown stops the workers and waits for them to exit.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
