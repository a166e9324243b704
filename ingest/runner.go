package ingest

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/chunkit/core"
)

// Runner ingests independent chunk sets concurrently through one Pipeline.
// Each set still flows through the pipeline's sequential batch loop, so
// per-set ordering and retry behavior are unchanged; only sets run in
// parallel. The total count is accumulated atomically.
type Runner struct {
	pipeline *Pipeline
	pool     *ants.Pool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner) error

// WithPoolSize sets the worker pool size for concurrent set processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) RunnerOption {
	return func(r *Runner) error {
		if size < 1 {
			size = 1
		}
		if r.pool != nil {
			r.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// NewRunner creates a runner around an existing pipeline.
func NewRunner(pipeline *Pipeline, opts ...RunnerOption) (*Runner, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline required")
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		pipeline: pipeline,
		pool:     pool,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}
	return r, nil
}

// Run ingests every chunk set and returns the combined confirmed count.
// All sets are attempted even when one fails; the returned error joins the
// per-set failures so none is masked.
func (r *Runner) Run(ctx context.Context, sets ...[]*core.Chunk) (int, error) {
	var (
		total int64
		wg    sync.WaitGroup
		mu    sync.Mutex
		errs  []error
	)

	for _, set := range sets {
		wg.Add(1)
		chunks := set
		submitErr := r.pool.Submit(func() {
			defer wg.Done()
			count, err := r.pipeline.Ingest(ctx, chunks)
			atomic.AddInt64(&total, int64(count))
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()
	return int(atomic.LoadInt64(&total)), errors.Join(errs...)
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
