package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/causallab/dagcheck/pkg/check"
)

// SchemaVersion identifies the current document format.
const SchemaVersion = 1

// document is the JSON envelope around a validation report.
type document struct {
	SchemaVersion int           `json:"schema_version"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Report        *check.Report `json:"report"`
}

// WriteJSON encodes a validation report as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(rep *check.Report, w io.Writer) error {
	doc := document{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		Report:        rep,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a validation report to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(rep *check.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(rep, f)
}
