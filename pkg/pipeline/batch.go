package pipeline

import (
	"context"
	"sync"

	"github.com/causallab/dagcheck/pkg/scenario"
)

// ValidateBatch validates scenarios concurrently with opts.Workers workers
// and returns one BatchResult per input scenario, in input order.
//
// A scenario that cannot be validated (malformed structure, dangling
// references) gets its Err field set; the batch keeps going. Cancelling ctx
// stops the batch early, and unprocessed scenarios carry ctx.Err().
func (r *Runner) ValidateBatch(ctx context.Context, scenarios []scenario.Scenario, opts Options) []BatchResult {
	results := make([]BatchResult, len(scenarios))
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		for i, sc := range scenarios {
			results[i] = BatchResult{Index: i, Scenario: sc, Err: err}
		}
		return results
	}

	workers := opts.Workers
	if workers > len(scenarios) {
		workers = len(scenarios)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sc := scenarios[i]
				res, err := r.ValidateScenario(ctx, sc, opts)
				results[i] = BatchResult{Index: i, Scenario: sc, Result: res, Err: err}
			}
		}()
	}

feed:
	for i := range scenarios {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	// Mark scenarios the cancelled feed never dispatched.
	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Result == nil && results[i].Err == nil {
				results[i] = BatchResult{Index: i, Scenario: scenarios[i], Err: err}
			}
		}
	}

	return results
}

// BatchSummary aggregates batch outcomes for display and exit codes.
type BatchSummary struct {
	Total     int
	Passed    int
	Failed    int
	Errored   int
	FromCache int
}

// Summarize tallies a slice of batch results.
func Summarize(results []BatchResult) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, br := range results {
		switch {
		case br.Err != nil:
			s.Errored++
		case br.Result.Report.Passed:
			s.Passed++
		default:
			s.Failed++
		}
		if br.Err == nil && br.Result.CacheInfo.ReportHit {
			s.FromCache++
		}
	}
	return s
}
