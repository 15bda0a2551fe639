package orchestration

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/repograde/repograde/internal/models"
)

// ProgressFunc observes per-repository completion during a batch run. It is
// called from worker goroutines and must be safe for concurrent use.
type ProgressFunc func(done, total int, result models.RepoResult)

// EvaluateBatch evaluates every URL with at most workers running
// concurrently. Per-repository failures become failure results instead of
// aborting the batch; only context cancellation stops it early. Results
// keep the input order.
func (e *Evaluator) EvaluateBatch(ctx context.Context, urls []string, workers int, progress ProgressFunc) ([]models.RepoResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]models.RepoResult, len(urls))
	completed := make(chan models.RepoResult, len(urls))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, url := range urls {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcome, err := e.Evaluate(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.WarnContext(ctx, "repository evaluation failed", "url", url, "error", err)
				results[i] = models.Failure(url, err)
			} else {
				results[i] = models.Success(outcome)
			}

			completed <- results[i]
			return nil
		})
	}

	// Drain completions for progress reporting while workers run.
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		done := 0
		for result := range completed {
			done++
			if progress != nil {
				progress(done, len(urls), result)
			}
		}
	}()

	err := group.Wait()
	close(completed)
	<-reporterDone

	if err != nil {
		return nil, err
	}
	return results, nil
}
