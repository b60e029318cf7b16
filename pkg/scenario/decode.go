package scenario

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/causallab/dagcheck/pkg/errors"
)

// batch is the on-disk file shape: either a bare list of scenarios or a
// document with a "scenarios" key.
type batch struct {
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// DecodeJSON decodes scenarios from JSON: a single object, a list, or a
// {"scenarios": [...]} document.
func DecodeJSON(r io.Reader) ([]Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read scenario input")
	}
	return decodeWith(data, func(data []byte, v any) error { return json.Unmarshal(data, v) })
}

// DecodeYAML decodes scenarios from YAML with the same document shapes as
// [DecodeJSON].
func DecodeYAML(r io.Reader) ([]Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read scenario input")
	}
	return decodeWith(data, yaml.Unmarshal)
}

func decodeWith(data []byte, unmarshal func([]byte, any) error) ([]Scenario, error) {
	var doc batch
	if err := unmarshal(data, &doc); err == nil && len(doc.Scenarios) > 0 {
		return finish(doc.Scenarios)
	}

	var list []Scenario
	if err := unmarshal(data, &list); err == nil && len(list) > 0 {
		return finish(list)
	}

	var single Scenario
	if err := unmarshal(data, &single); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scenario input")
	}
	if strings.TrimSpace(single.Structure) == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "scenario input contains no scenarios")
	}
	return finish([]Scenario{single})
}

func finish(scenarios []Scenario) ([]Scenario, error) {
	for i := range scenarios {
		scenarios[i].Normalize()
		if err := scenarios[i].Validate(); err != nil {
			return nil, err
		}
	}
	return scenarios, nil
}

// LoadFile decodes scenarios from a .json, .yaml, or .yml file.
func LoadFile(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(f)
	case ".yaml", ".yml":
		return DecodeYAML(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported scenario file extension %q (want .json, .yaml, or .yml)", filepath.Ext(path))
	}
}
