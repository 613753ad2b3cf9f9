// Package parallel provides the worker loop used to fan batched matrix
// kernels out across CPU cores. Batch slices write disjoint output
// regions, so no synchronization beyond the final join is needed.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
	MinBatch   int  // Minimum items before goroutines pay off.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
		MinBatch:   4,
	}
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// For executes f(i) for i in [0, n), chunked across workers. Falls back to
// sequential execution when parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinBatch {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForErr is For with error collection: the first error reported by any
// index wins and is returned after all workers finish. Remaining
// iterations still run; kernels are cheap enough that early cancellation
// is not worth the plumbing.
func ForErr(n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || n < cfg.MinBatch {
		var first error
		for i := 0; i < n; i++ {
			if err := f(i); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	chunk := (n + cfg.NumWorkers - 1) / cfg.NumWorkers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				if err := f(i); err != nil {
					mu.Lock()
					if first == nil {
						first = err
					}
					mu.Unlock()
				}
			}
		}(start, end)
	}
	wg.Wait()
	return first
}
