package trace

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// parallelFor runs fn for every index in [0, n), handing indices to a
// pool of workers through a shared counter.
func parallelFor(n int, fn func(idx int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1)) - 1
				if idx >= n {
					return
				}
				fn(idx)
			}
		}()
	}
	wg.Wait()
}
