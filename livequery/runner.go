package livequery

import "github.com/panjf2000/ants/v2"

// Runner schedules query runs off the notifying goroutine. Submit blocks
// while the runner is saturated, so collection writes that trigger a re-run
// may wait behind a shared runner's other work.
type Runner interface {
	Submit(task func()) error
}

// PoolRunner is a Runner backed by an ants worker pool, suitable for sharing
// across many live queries.
type PoolRunner struct {
	pool *ants.Pool
}

// NewPoolRunner creates a pool-backed runner with the given worker count.
// Sizes below one are raised to one.
func NewPoolRunner(size int) (*PoolRunner, error) {
	if size < 1 {
		size = 1
	}

	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	return &PoolRunner{pool: pool}, nil
}

// Submit schedules task on the pool.
func (r *PoolRunner) Submit(task func()) error {
	return r.pool.Submit(task)
}

// Release releases the pool's workers.
// The runner should not be used after calling Release.
func (r *PoolRunner) Release() {
	r.pool.Release()
}
