package boostbench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}

	var counter int64
	var wg sync.WaitGroup
	const tasks = 100

	wg.Add(tasks)
	for i := 0; i < tasks; i++ {
		pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		})
	}
	wg.Wait()

	if counter != tasks {
		t.Errorf("Ran %d tasks, want %d", counter, tasks)
	}
}

func TestWorkerPoolDefaultWidth(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	if pool.Workers() <= 0 {
		t.Errorf("Workers() = %d, want positive", pool.Workers())
	}
}

// Test that sweep chunks tile the row range exactly once
func TestSweepCoverage(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	sizes := []int{1, 100, MinChunkRows - 1, MinChunkRows, 10000, 100001}

	for _, rows := range sizes {
		t.Run(fmt.Sprintf("Rows_%d", rows), func(t *testing.T) {
			hits := make([]int32, rows)
			pool.Sweep(rows, func(chunk, lo, hi int) {
				if lo < 0 || hi > rows || lo >= hi {
					t.Errorf("Bad chunk range [%d, %d) for %d rows", lo, hi, rows)
					return
				}
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})

			for i, h := range hits {
				if h != 1 {
					t.Fatalf("Row %d visited %d times", i, h)
				}
			}
		})
	}
}

// Test that chunk ordinals are dense and match ChunkCount
func TestSweepChunkOrdinals(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const rows = 10000
	want := ChunkCount(rows, pool.Workers())
	if want < 2 {
		t.Fatalf("ChunkCount = %d, expected a multi-chunk sweep", want)
	}

	seen := make([]int32, want)
	pool.Sweep(rows, func(chunk, lo, hi int) {
		if chunk < 0 || chunk >= want {
			t.Errorf("Chunk ordinal %d outside [0, %d)", chunk, want)
			return
		}
		atomic.AddInt32(&seen[chunk], 1)
	})

	for c, n := range seen {
		if n != 1 {
			t.Errorf("Chunk %d ran %d times", c, n)
		}
	}
}

// Test that small sweeps stay on one chunk
func TestSweepSmallStaysSingle(t *testing.T) {
	pool := NewWorkerPool(8)
	defer pool.Close()

	rows := MinChunkRows - 1
	if got := ChunkCount(rows, pool.Workers()); got != 1 {
		t.Errorf("ChunkCount(%d, 8) = %d, want 1", rows, got)
	}

	calls := 0
	pool.Sweep(rows, func(chunk, lo, hi int) {
		calls++
		if chunk != 0 || lo != 0 || hi != rows {
			t.Errorf("Single chunk = (%d, %d, %d), want (0, 0, %d)", chunk, lo, hi, rows)
		}
	})
	if calls != 1 {
		t.Errorf("Sweep made %d calls, want 1", calls)
	}
}

func TestSweepZeroRows(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	pool.Sweep(0, func(chunk, lo, hi int) { called = true })
	if called {
		t.Error("Sweep over zero rows invoked the callback")
	}

	if got := ChunkCount(0, 2); got != 0 {
		t.Errorf("ChunkCount(0, 2) = %d, want 0", got)
	}
}

func TestChunkCount(t *testing.T) {
	tests := []struct {
		rows    int
		workers int
		want    int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{MinChunkRows - 1, 4, 1},
		{MinChunkRows, 1, 1},
		{4096, 4, 4},
		{4097, 4, 4},
		{10000, 3, 3},
	}

	for _, tt := range tests {
		if got := ChunkCount(tt.rows, tt.workers); got != tt.want {
			t.Errorf("ChunkCount(%d, %d) = %d, want %d", tt.rows, tt.workers, got, tt.want)
		}
	}
}

// Test the pool-free sweep used by model prediction
func TestParallelRows(t *testing.T) {
	const rows = 50000
	hits := make([]int32, rows)

	ParallelRows(rows, 4, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("Row %d visited %d times", i, h)
		}
	}
}

func TestParallelRowsSmall(t *testing.T) {
	calls := 0
	ParallelRows(10, 8, func(lo, hi int) {
		calls++
		if lo != 0 || hi != 10 {
			t.Errorf("Chunk = [%d, %d), want [0, 10)", lo, hi)
		}
	})
	if calls != 1 {
		t.Errorf("ParallelRows made %d calls, want 1", calls)
	}
}
