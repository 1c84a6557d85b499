package modpow

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Job is one a^e mod n evaluation.
type Job struct {
	A, E, N uint64
}

// Batch evaluates jobs on up to workers goroutines and returns the results
// in job order. workers <= 0 uses runtime.NumCPU(). Each worker owns a
// private ContextCache, so repeated odd moduli are set up once per worker
// and no state is shared.
//
// Results follow Exp's sentinel conventions; Batch itself only fails when
// ctx is cancelled, which is checked between jobs.
func Batch(ctx context.Context, jobs []Job, workers int) ([]uint64, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	results := make([]uint64, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			cache := NewContextCache()
			// Strided assignment keeps each worker's writes disjoint.
			for i := w; i < len(jobs); i += workers {
				if err := gctx.Err(); err != nil {
					return errors.Wrapf(err, "batch worker %d stopped at job %d", w, i)
				}
				j := jobs[i]
				results[i] = cache.Exp(j.A, j.E, j.N)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
