// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about validation runs, cache operations, and HTTP serving.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetValidationHooks(&myValidationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Validation().OnValidateStart(ctx, scenarioID)
//	// ... do validation ...
//	observability.Validation().OnValidateComplete(ctx, scenarioID, passed, issueCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Validation Hooks
// =============================================================================

// ValidationHooks receives events from the validation pipeline.
type ValidationHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, scenarioID string)
	OnParseComplete(ctx context.Context, scenarioID string, variableCount, edgeCount int, duration time.Duration, err error)

	// Validation events
	OnValidateStart(ctx context.Context, scenarioID string)
	OnValidateComplete(ctx context.Context, scenarioID string, passed bool, issueCount int, duration time.Duration, err error)

	// OnIssue records a single finding by rule and severity.
	OnIssue(ctx context.Context, rule, severity string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopValidationHooks is a no-op implementation of ValidationHooks.
type NoopValidationHooks struct{}

func (NoopValidationHooks) OnParseStart(context.Context, string) {}
func (NoopValidationHooks) OnParseComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopValidationHooks) OnValidateStart(context.Context, string) {}
func (NoopValidationHooks) OnValidateComplete(context.Context, string, bool, int, time.Duration, error) {
}
func (NoopValidationHooks) OnIssue(context.Context, string, string) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	validationHooks ValidationHooks = NoopValidationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetValidationHooks registers custom validation hooks.
// This should be called once at application startup before any validation runs.
func SetValidationHooks(h ValidationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		validationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Validation returns the registered validation hooks.
func Validation() ValidationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return validationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	validationHooks = NoopValidationHooks{}
	cacheHooks = NoopCacheHooks{}
}
