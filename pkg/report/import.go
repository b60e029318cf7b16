package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/causallab/dagcheck/pkg/check"
)

// ReadJSON decodes a report document from r.
//
// The input must be a JSON object written by [WriteJSON]:
//
//	{
//	  "schema_version": 1,
//	  "generated_at": "2026-01-02T15:04:05Z",
//	  "report": { ... }
//	}
//
// ReadJSON returns an error if the JSON is malformed, the schema version is
// newer than this build understands, or the envelope carries no report.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*check.Report, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d", doc.SchemaVersion)
	}
	if doc.Report == nil {
		return nil, fmt.Errorf("document has no report")
	}
	return doc.Report, nil
}

// ImportJSON reads a JSON file at path and returns the decoded report.
func ImportJSON(path string) (*check.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rep, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return rep, nil
}
