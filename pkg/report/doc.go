// Package report reads and writes validation reports as JSON documents.
//
// The on-disk format wraps the report in an envelope carrying a schema
// version and generation timestamp, so archived reports stay readable as
// the report shape evolves. Documents written with [WriteJSON] can be
// re-imported with [ReadJSON] for round-trip processing.
package report
