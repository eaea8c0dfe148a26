// Package parallel provides parallel execution utilities for the FTRL engines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// Sequential returns a config that disables worker goroutines entirely.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
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

// PartitionIndex groups the positions of equal values in idx, preserving
// array order inside each group. Group order follows first occurrence.
//
// Sparse updates use this to parallelize across distinct rows while keeping
// repeated rows sequential: positions of the same index land in one group
// and compose back-to-back.
func PartitionIndex[I int32 | int64](idx []I) [][]int {
	order := make(map[I]int, len(idx))
	groups := make([][]int, 0, len(idx))

	for k, v := range idx {
		gi, seen := order[v]
		if !seen {
			gi = len(groups)
			order[v] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], k)
	}
	return groups
}
