package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/causallab/dagcheck/pkg/cache"
	pkgerrors "github.com/causallab/dagcheck/pkg/errors"
	"github.com/causallab/dagcheck/pkg/pipeline"
	"github.com/causallab/dagcheck/pkg/scenario"
	"github.com/causallab/dagcheck/pkg/store"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	workers int  // validation concurrency
	refresh bool // bypass report cache
	noCache bool // disable the cache entirely
	archive bool // archive reports to the configured mongo store
}

// batchCommand creates the batch command for high-volume validation.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{}

	cmd := &cobra.Command{
		Use:   "batch <scenario-file>",
		Short: "Validate many scenarios concurrently",
		Long: `Validate many scenarios concurrently with a worker pool.

Unlike "validate", batch prints one line per scenario plus a summary, which
suits generator pipelines emitting hundreds of scenarios per run. With
--archive, every report is stored in the configured MongoDB collection.

Examples:
  dagcheck batch scenarios.json
  dagcheck batch scenarios.yaml --workers 8
  dagcheck batch scenarios.json --archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.workers, "workers", 0, "validation concurrency (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the report cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "archive reports to MongoDB (requires store config)")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, path string, opts batchOpts) error {
	ctx = withLogger(ctx, c.Logger)

	scenarios, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		printWarning("No scenarios in %s", path)
		return nil
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var archive store.Store
	if opts.archive {
		archive, err = c.openStore(ctx)
		if err != nil {
			return err
		}
		defer archive.Close(ctx)
	}

	runOpts := c.pipelineOptions()
	runOpts.Refresh = opts.refresh
	if opts.workers > 0 {
		runOpts.Workers = opts.workers
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Validating %d scenarios...", len(scenarios)))
	spinner.Start()
	results := runner.ValidateBatch(ctx, scenarios, runOpts)
	spinner.Stop()
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, br := range results {
		switch {
		case br.Err != nil:
			printError("%s: %s", br.Scenario.ID, pkgerrors.UserMessage(br.Err))
		case br.Result.Report.Passed:
			printSuccess("%s", br.Scenario.ID)
		default:
			printError("%s (%d issues)", br.Scenario.ID, len(br.Result.Report.Issues))
		}

		if archive != nil && br.Err == nil {
			if err := c.archiveReport(ctx, archive, br); err != nil {
				printWarning("archive %s: %v", br.Scenario.ID, err)
			}
		}
	}

	sum := pipeline.Summarize(results)
	printNewline()
	printDetail("%d passed · %d failed · %d errored · %d from cache",
		sum.Passed, sum.Failed, sum.Errored, sum.FromCache)

	if sum.Failed+sum.Errored > 0 {
		return fmt.Errorf("%d of %d scenarios did not pass", sum.Failed+sum.Errored, sum.Total)
	}
	return nil
}

// openStore connects to the configured MongoDB report archive.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Store
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("--archive requires store.mongo_uri in the config file")
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:        cfg.MongoURI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
	})
}

// archiveReport saves one report, retrying transient store failures.
func (c *CLI) archiveReport(ctx context.Context, archive store.Store, br pipeline.BatchResult) error {
	return cache.RetryWithBackoff(ctx, func() error {
		if err := archive.SaveReport(ctx, br.Result.Report); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
}
