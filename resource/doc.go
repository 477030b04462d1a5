// Package resource implements the Controller that bounds what a sieve run may
// consume.
//
// The Controller governs three resources:
//
//   - Workers: the fan-out degree of the parallel double-sieve strategy
//   - Memory: a fail-fast budget for candidate buffers built during a step
//   - Progress: a token bucket that throttles per-generation progress logs
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for the hard limit and an atomic
// counter for usage. AcquireMemory never blocks; it returns
// ErrMemoryLimitExceeded when the budget would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	})
//	if err := rc.AcquireMemory(n * d * 8); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(n * d * 8)
//
// # Nil Safety
//
// All methods handle a nil Controller: memory is unlimited, Workers returns
// DefaultWorkers bounded by GOMAXPROCS and every progress event is allowed.
package resource
