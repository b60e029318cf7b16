package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/causallab/dagcheck/pkg/cache"
	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/causal/notation"
	"github.com/causallab/dagcheck/pkg/check"
	"github.com/causallab/dagcheck/pkg/observability"
	"github.com/causallab/dagcheck/pkg/scenario"
)

// reportKeyType labels report entries in cache metrics.
const reportKeyType = "report"

// Runner encapsulates scenario validation with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store validation results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ValidateScenario runs the complete parse → fingerprint → check pipeline
// with caching.
func (r *Runner) ValidateScenario(ctx context.Context, sc scenario.Scenario, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	sc.Normalize()
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Scenario: sc}
	hooks := observability.Validation()

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, sc.ID)
	parsed, err := notation.Parse(sc.Structure, sc.Roles)
	result.Stats.ParseTime = time.Since(parseStart)
	if err != nil {
		hooks.OnParseComplete(ctx, sc.ID, 0, 0, result.Stats.ParseTime, err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	g := parsed.Graph
	hooks.OnParseComplete(ctx, sc.ID, g.VariableCount(), g.EdgeCount(), result.Stats.ParseTime, nil)
	result.Graph = g

	opts.Logger.Info("parsed structure",
		"scenario", sc.ID,
		"variables", g.VariableCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Fingerprint and cache lookup
	key := r.reportKey(g.Fingerprint(), sc, parsed.Undeclared, opts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var rep check.Report
			if err := json.Unmarshal(data, &rep); err == nil {
				observability.Cache().OnCacheHit(ctx, reportKeyType)
				rep.ScenarioID = sc.ID
				result.Report = &rep
				result.CacheInfo.ReportHit = true
				opts.Logger.Debug("report cache hit", "scenario", sc.ID, "key", key)
				return result, nil
			}
			// Undecodable entry, recompute below.
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, reportKeyType)
	}

	// Stage 3: Check
	checkStart := time.Now()
	hooks.OnValidateStart(ctx, sc.ID)
	rep, err := check.Evaluate(check.Request{
		Graph:        g,
		Treatment:    sc.Treatment,
		Outcome:      sc.Outcome,
		Adjustment:   sc.AdjustmentSet,
		Undeclared:   parsed.Undeclared,
		MaxPathDepth: opts.MaxPathDepth,
	})
	result.Stats.CheckTime = time.Since(checkStart)
	if err != nil {
		hooks.OnValidateComplete(ctx, sc.ID, false, 0, result.Stats.CheckTime, err)
		return nil, err
	}
	rep.ScenarioID = sc.ID
	result.Report = rep

	hooks.OnValidateComplete(ctx, sc.ID, rep.Passed, len(rep.Issues), result.Stats.CheckTime, nil)
	for _, issue := range rep.Issues {
		hooks.OnIssue(ctx, issue.Rule, issue.Severity.String())
	}

	opts.Logger.Info("validated scenario",
		"scenario", sc.ID,
		"passed", rep.Passed,
		"issues", len(rep.Issues),
		"duration", result.Stats.CheckTime)

	// Cache the report without the scenario id: structurally identical
	// scenarios share the entry.
	stored := *rep
	stored.ScenarioID = ""
	if data, err := json.Marshal(&stored); err == nil {
		if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, reportKeyType, len(data))
		} else {
			opts.Logger.Warn("report cache write failed", "scenario", sc.ID, "err", err)
		}
	}

	return result, nil
}

// reportKey builds the cache key for a scenario's report. Names are
// canonicalized and the adjustment set sorted so spelling variants of the
// same query share an entry.
func (r *Runner) reportKey(fingerprint string, sc scenario.Scenario, undeclared []string, opts Options) string {
	adjustment := make([]string, len(sc.AdjustmentSet))
	for i, a := range sc.AdjustmentSet {
		adjustment[i] = causal.CanonicalName(a)
	}
	slices.Sort(adjustment)

	return r.Keyer.ReportKey(fingerprint, cache.ReportKeyOpts{
		Treatment:    causal.CanonicalName(sc.Treatment),
		Outcome:      causal.CanonicalName(sc.Outcome),
		Adjustment:   adjustment,
		Undeclared:   undeclared,
		MaxPathDepth: opts.MaxPathDepth,
	})
}

// applyLogger fills in the runner's logger when the options carry none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
