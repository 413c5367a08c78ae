// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package livequery

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
)

// Func computes one result for a live query. It receives the context bound
// at construction, which is cancelled when the query closes, and typically
// wraps a collection call such as FindAll.
type Func[R any] func(ctx context.Context) (R, error)

// Source publishes change notifications. Subscribe registers fn and returns
// its unsubscribe function. A satchel collection satisfies Source.
type Source interface {
	Subscribe(fn func()) (unsubscribe func())
}

type config struct {
	runner Runner
	logger *slog.Logger
	inputs []any
	empty  func(any) bool
}

// Option configures a live query.
type Option func(*config) error

// WithRunner sets the runner query runs are scheduled on, usually a
// PoolRunner shared across queries. The caller keeps ownership: Close does
// not release a supplied runner. Default is a private single-worker pool.
func WithRunner(r Runner) Option {
	return func(c *config) error {
		if r != nil {
			c.runner = r
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithInputs declares the query's initial inputs, compared against later
// SetInputs calls to decide whether a re-run is due.
func WithInputs(inputs ...any) Option {
	return func(c *config) error {
		c.inputs = inputs
		return nil
	}
}

// WithEmpty overrides the emptiness rule for successful results. The
// predicate must take the query's result type; results of any other type
// fall back to the default rule.
func WithEmpty[R any](fn func(R) bool) Option {
	return func(c *config) error {
		if fn == nil {
			return nil
		}
		c.empty = func(v any) bool {
			if rv, ok := v.(R); ok {
				return fn(rv)
			}
			return isEmpty(v)
		}
		return nil
	}
}

// Query keeps one query function's result live against a change source. It
// runs the function once at construction and again whenever the source
// notifies, the inputs change, or Refresh is called. Runs that overlap are
// coalesced into a single trailing re-run, and a run overtaken by a newer
// trigger never publishes its result.
//
// All methods are safe for concurrent use.
type Query[R any] struct {
	fn     Func[R]
	runner Runner
	owned  *PoolRunner
	logger *slog.Logger
	empty  func(any) bool

	ctx    context.Context
	cancel context.CancelFunc

	unsubscribe func()

	mu       sync.Mutex
	gen      uint64
	running  bool
	rerun    bool
	closed   bool
	inputs   []any
	snapshot Snapshot[R]
	updates  chan Snapshot[R]
}

// New creates a live query over source and starts its first run. The caller
// must Close the query to detach it from the source and stop its runner.
func New[R any](source Source, fn Func[R], opts ...Option) (*Query[R], error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if fn == nil {
		return nil, ErrQueryFuncRequired
	}

	// Default logger
	cfg := config{logger: slog.Default()}

	// Apply options
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	q := &Query[R]{
		fn:       fn,
		runner:   cfg.runner,
		logger:   cfg.logger,
		empty:    cfg.empty,
		ctx:      ctx,
		cancel:   cancel,
		inputs:   cfg.inputs,
		snapshot: Snapshot[R]{Status: StatusIdle},
		updates:  make(chan Snapshot[R], 1),
	}

	if q.runner == nil {
		owned, err := NewPoolRunner(1)
		if err != nil {
			cancel()
			return nil, err
		}
		q.runner = owned
		q.owned = owned
	}

	q.unsubscribe = source.Subscribe(q.Refresh)
	q.Refresh()

	return q, nil
}

// Snapshot returns the current view.
func (q *Query[R]) Snapshot() Snapshot[R] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshot
}

// Updates returns the update channel. It holds at most the newest
// unconsumed snapshot and is closed by Close; a consumer that falls behind
// misses intermediate views, never the latest one.
func (q *Query[R]) Updates() <-chan Snapshot[R] {
	return q.updates
}

// Refresh schedules a re-run. It is the hook the change source drives, and
// is also for consumers that want a fresh read after an error.
func (q *Query[R]) Refresh() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.triggerLocked()
}

// SetInputs replaces the declared inputs, scheduling a re-run when they
// differ from the current ones. Values of uncomparable types always count
// as different.
func (q *Query[R]) SetInputs(inputs ...any) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || sameInputs(q.inputs, inputs) {
		return
	}
	q.inputs = inputs
	q.triggerLocked()
}

// Inputs returns the currently declared inputs.
func (q *Query[R]) Inputs() []any {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]any(nil), q.inputs...)
}

// Close detaches the query from its source, cancels the run context and
// releases the private runner. A run still in flight finishes without
// publishing. Close is idempotent.
func (q *Query[R]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.updates)
	q.mu.Unlock()

	q.unsubscribe()
	q.cancel()
	if q.owned != nil {
		q.owned.Release()
	}
}

// triggerLocked starts a new generation: it publishes a loading view that
// keeps the previous data, then either schedules a run or marks the one in
// flight for a trailing re-run.
func (q *Query[R]) triggerLocked() {
	if q.closed {
		return
	}

	q.gen++
	q.publishLocked(Snapshot[R]{Status: StatusLoading, Data: q.snapshot.Data})

	if q.running {
		q.rerun = true
		return
	}

	gen := q.gen
	q.running = true
	if err := q.runner.Submit(func() { q.run(gen) }); err != nil {
		q.running = false
		q.logger.Error("error scheduling live query run", "err", err)
		q.publishLocked(Snapshot[R]{Status: StatusError, Err: err})
	}
}

// run executes the query function, publishing the result only when its
// generation is still current, and loops while triggers arrived during the
// run. Looping in place keeps one runner slot per query regardless of how
// many triggers coalesced.
func (q *Query[R]) run(gen uint64) {
	for {
		data, err := q.fn(q.ctx)

		q.mu.Lock()
		if q.closed {
			q.running = false
			q.mu.Unlock()
			return
		}
		if gen == q.gen {
			q.publishLocked(settle(data, err, q.empty))
		} else {
			q.logger.Debug("discarding overtaken live query result", "gen", gen, "current", q.gen)
		}
		if !q.rerun {
			q.running = false
			q.mu.Unlock()
			return
		}
		q.rerun = false
		gen = q.gen
		q.mu.Unlock()
	}
}

// publishLocked records s as the current snapshot and pushes it to the
// update channel, displacing an unconsumed predecessor. Callers hold q.mu
// and have checked q.closed, so the drained channel cannot refill before
// the send.
func (q *Query[R]) publishLocked(s Snapshot[R]) {
	q.snapshot = s

	select {
	case <-q.updates:
	default:
	}
	q.updates <- s
}

// sameInputs reports whether two input lists are equal position by
// position. Inputs of differing or uncomparable types are never equal.
func sameInputs(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		av, bv := a[i], b[i]
		if av == nil || bv == nil {
			if av != bv {
				return false
			}
			continue
		}
		ta, tb := reflect.TypeOf(av), reflect.TypeOf(bv)
		if ta != tb || !ta.Comparable() {
			return false
		}
		if av != bv {
			return false
		}
	}
	return true
}
