package boostbench

import (
	"runtime"
	"sync"
)

// WorkerPool manages a pool of worker goroutines for engine row sweeps
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*WorkerQueueDepth),
	}

	// Start workers
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Submit adds a task to the pool
func (wp *WorkerPool) Submit(task func()) {
	wp.tasks <- task
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
}

// Workers returns the pool width
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// chunkSpan computes the chunk layout for a row sweep: how many
// contiguous chunks and how many rows per chunk. Sweeps below
// MinChunkRows stay on a single chunk.
func chunkSpan(rows, workers int) (chunks, span int) {
	if rows <= 0 {
		return 0, 0
	}
	w := workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > rows {
		w = rows
	}
	if rows < MinChunkRows || w == 1 {
		return 1, rows
	}
	span = (rows + w - 1) / w
	chunks = (rows + span - 1) / span
	return chunks, span
}

// ChunkCount reports how many chunks a sweep over rows will use with
// the given worker count. Callers sizing per-chunk accumulators use
// this before sweeping.
func ChunkCount(rows, workers int) int {
	chunks, _ := chunkSpan(rows, workers)
	return chunks
}

// Sweep runs fn over [0, rows) split into contiguous chunks, one task
// per chunk, on the pool's workers. Chunks never overlap and cover the
// range exactly; fn receives the chunk ordinal and its row range and
// must be safe to run concurrently on disjoint ranges. Sweep returns
// after every chunk has finished.
func (wp *WorkerPool) Sweep(rows int, fn func(chunk, lo, hi int)) {
	chunks, span := chunkSpan(rows, wp.workers)
	if chunks == 0 {
		return
	}
	if chunks == 1 {
		fn(0, 0, rows)
		return
	}

	var wg sync.WaitGroup
	wg.Add(chunks)
	for c := 0; c < chunks; c++ {
		// Capture loop variables
		chunk := c
		lo := c * span
		hi := lo + span
		if hi > rows {
			hi = rows
		}
		wp.Submit(func() {
			defer wg.Done()
			fn(chunk, lo, hi)
		})
	}
	wg.Wait()
}

// ParallelRows runs fn over [0, rows) in contiguous chunks using
// ad-hoc goroutines, for callers that do not hold a pool. The chunk
// layout matches Sweep with the same worker count.
func ParallelRows(rows, workers int, fn func(lo, hi int)) {
	chunks, span := chunkSpan(rows, workers)
	if chunks == 0 {
		return
	}
	if chunks == 1 {
		fn(0, rows)
		return
	}

	var wg sync.WaitGroup
	wg.Add(chunks)
	for c := 0; c < chunks; c++ {
		lo := c * span
		hi := lo + span
		if hi > rows {
			hi = rows
		}
		start, end := lo, hi
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
