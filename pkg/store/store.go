// Package store archives validation reports for later retrieval.
//
// This package defines an interface for report storage with implementations
// for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// Reports are keyed by scenario ID; saving a report for an existing
// scenario replaces the previous record. The archive is append-oriented
// operational history, not a cache: entries never expire.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/causallab/dagcheck/pkg/check"
)

// ErrNotFound is returned when a requested report does not exist.
var ErrNotFound = errors.New("not found")

// Record wraps an archived report with storage metadata.
type Record struct {
	ScenarioID string       `bson:"scenario_id" json:"scenario_id"`
	Report     check.Report `bson:"report" json:"report"`
	SavedAt    time.Time    `bson:"saved_at" json:"saved_at"`
}

// Store is the interface for report archive backends.
type Store interface {
	// SaveReport archives a report, replacing any previous report for the
	// same scenario ID.
	SaveReport(ctx context.Context, rep *check.Report) error

	// GetReport retrieves the archived report for a scenario.
	// Returns ErrNotFound if no report exists.
	GetReport(ctx context.Context, scenarioID string) (*Record, error)

	// ListReports returns archived records, newest first, up to limit.
	// A non-positive limit returns all records.
	ListReports(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
