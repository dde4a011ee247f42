package geom

import (
	"sync"
)

// ParallelRows executes fn for each x in [0, n). The range is split into
// contiguous chunks, one per worker. If workers <= 1 everything runs on the
// calling goroutine.
func ParallelRows(n, workers int, fn func(x int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for x := 0; x < n; x++ {
			fn(x)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for x := start; x < end; x++ {
				fn(x)
			}
		}(start, end)
	}
	wg.Wait()
}
