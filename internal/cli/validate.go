package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/causallab/dagcheck/pkg/report"
	"github.com/causallab/dagcheck/pkg/scenario"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	refresh  bool   // bypass report cache
	noCache  bool   // disable the cache entirely
	maxDepth int    // override backdoor path depth limit
	output   string // export the report(s) as JSON to this file
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	opts := validateOpts{}

	cmd := &cobra.Command{
		Use:   "validate <scenario-file>",
		Short: "Validate causal scenarios from a JSON or YAML file",
		Long: `Validate causal scenarios from a JSON or YAML file.

Each scenario is parsed into a causal graph and checked for acyclicity,
backdoor admissibility of the claimed adjustment set, collider conditioning,
and role consistency. The command exits non-zero when any scenario fails.

Examples:
  dagcheck validate scenarios.json
  dagcheck validate scenarios.yaml --refresh
  dagcheck validate scenarios.json -o reports.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the report cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().IntVar(&opts.maxDepth, "max-path-depth", 0, "cap backdoor path enumeration (0 = unbounded)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "export reports as JSON to file")

	return cmd
}

func (c *CLI) runValidate(ctx context.Context, path string, opts validateOpts) error {
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

	runOpts := c.pipelineOptions()
	runOpts.Refresh = opts.refresh
	if opts.maxDepth > 0 {
		runOpts.MaxPathDepth = opts.maxDepth
	}

	prog := newProgress(c.Logger)
	failed := 0
	for i, sc := range scenarios {
		res, err := runner.ValidateScenario(ctx, sc, runOpts)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", sc.ID, err)
		}
		if i > 0 {
			printNewline()
		}
		printReport(res.Report, res.CacheInfo.ReportHit)
		if !res.Report.Passed {
			failed++
		}

		if opts.output != "" {
			out := opts.output
			if len(scenarios) > 1 {
				out = numberedPath(out, i)
			}
			if err := report.ExportJSON(res.Report, out); err != nil {
				return err
			}
			printFile(out)
		}
	}
	prog.done(fmt.Sprintf("Validated %d scenarios", len(scenarios)))

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	return nil
}

// numberedPath inserts a 1-based index before the extension so multi-scenario
// exports don't overwrite each other: reports.json becomes reports.2.json.
func numberedPath(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}
