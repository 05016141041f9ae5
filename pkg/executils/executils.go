package executils

import (
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// ParallelExec runs fn over vals, fanning out across CPUs in chunks of step
// once the value count crosses parallelThreshold. Small inputs stay on the
// calling goroutine.
func ParallelExec[T any](vals []T, parallelThreshold, step uint64, fn func(T)) {
	if step == 0 {
		step = 1
	}

	if uint64(len(vals)) < parallelThreshold {
		for _, v := range vals {
			fn(v)
		}
		return
	}

	start := atomic.NewUint64(0)
	end := uint64(len(vals))

	var wg sync.WaitGroup
	numCPU := runtime.NumCPU()
	wg.Add(numCPU)
	for p := 0; p < numCPU; p++ {
		go func() {
			defer wg.Done()
			for {
				n := start.Add(step)
				if n >= end+step {
					return
				}

				for i := n - step; i < n && i < end; i++ {
					fn(vals[i])
				}
			}
		}()
	}
	wg.Wait()
}
