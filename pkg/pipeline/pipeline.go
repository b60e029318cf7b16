// Package pipeline provides the core validation pipeline for dagcheck.
//
// This package implements the complete parse → fingerprint → check pipeline
// that can be used by CLI, API, and batch components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Build a sealed causal graph from compact arrow notation
//  2. Fingerprint: Derive the structural cache key
//  3. Check: Run the rule engine and aggregate issues into a report
//
// Reports for structurally identical scenarios are served from the cache.
//
// # Usage
//
// Create a Runner and validate a scenario:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.ValidateScenario(ctx, sc, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.Passed)
//
// Validate many scenarios concurrently:
//
//	results := runner.ValidateBatch(ctx, scenarios, opts)
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/causallab/dagcheck/pkg/causal"
	"github.com/causallab/dagcheck/pkg/check"
	"github.com/causallab/dagcheck/pkg/scenario"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Batch
// =============================================================================

const (
	// DefaultCacheTTL is how long cached reports stay valid. Validation is
	// deterministic, so the TTL only bounds cache growth.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultMaxPathDepth caps backdoor path enumeration. Zero defers to
	// the engine default (the variable count).
	DefaultMaxPathDepth = 0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the validation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// MaxPathDepth caps backdoor path enumeration; <= 0 means the engine
	// default.
	MaxPathDepth int `json:"max_path_depth,omitempty"`

	// Refresh bypasses the cache and recomputes the report.
	Refresh bool `json:"refresh,omitempty"`

	// Workers is the batch validation concurrency. Zero means one worker
	// per CPU.
	Workers int `json:"workers,omitempty"`

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxPathDepth < 0 {
		return fmt.Errorf("max_path_depth must not be negative")
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result Types
// =============================================================================

// Result contains the outputs of a single scenario validation.
type Result struct {
	// Scenario is the normalized input scenario.
	Scenario scenario.Scenario

	// Graph is the parsed causal graph. Always set: parsing happens before
	// the cache lookup because the cache key derives from the fingerprint.
	Graph *causal.Graph

	// Report is the aggregated validation report.
	Report *check.Report

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the report came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ParseTime time.Duration
	CheckTime time.Duration
}

// CacheInfo tracks cache usage for a validation run.
type CacheInfo struct {
	ReportHit bool // Whether the report came from cache
}

// BatchResult pairs a scenario with its validation outcome. Err is set when
// the scenario could not be validated at all (malformed structure, dangling
// references); rule findings land in Result.Report.Issues instead.
type BatchResult struct {
	Index    int
	Scenario scenario.Scenario
	Result   *Result
	Err      error
}
