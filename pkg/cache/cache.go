// Package cache caches validation reports keyed by the structural
// fingerprint of a causal graph plus the adjustment-set query.
//
// Keys are never derived from scenario identity: the graph structure and
// the query are the only inputs that affect validation results, so two
// scenarios with identical structure share a cache entry.
//
// Three backends are provided: a file cache for CLI use, a redis cache for
// multi-instance server deployments, and a null cache for tests and
// --no-cache runs.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized validation results.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ReportKeyOpts captures the query parameters that, together with the graph
// fingerprint, determine a validation result.
type ReportKeyOpts struct {
	Treatment    string   `json:"treatment"`
	Outcome      string   `json:"outcome"`
	Adjustment   []string `json:"adjustment"`
	Undeclared   []string `json:"undeclared"`
	MaxPathDepth int      `json:"max_path_depth"`
}

// Keyer generates cache keys for validation reports.
type Keyer interface {
	// ReportKey generates the key for a validation report given the graph's
	// structural fingerprint and the query options.
	ReportKey(fingerprint string, opts ReportKeyOpts) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// ReportKey generates a key in the form "report:hash(fingerprint, opts)".
func (k *DefaultKeyer) ReportKey(fingerprint string, opts ReportKeyOpts) string {
	return hashKey("report", fingerprint, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// separating cache entries per deployment in a shared redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ReportKey generates a prefixed report key.
func (k *ScopedKeyer) ReportKey(fingerprint string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(fingerprint, opts)
}
