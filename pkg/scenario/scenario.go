// Package scenario defines the input record consumed by the validation
// pipeline: a compact causal-structure string, declared variable roles, an
// optional adjustment set, the treatment/outcome pair, and a causal-level
// tag from Pearl's ladder of causation.
//
// Scenario records arrive from external generators as JSON or YAML. This
// package owns decoding and field-level validation only; graph construction
// and the causal checks live in
// [github.com/causallab/dagcheck/pkg/causal/notation] and
// [github.com/causallab/dagcheck/pkg/check].
package scenario

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/causallab/dagcheck/pkg/errors"
)

// Causal levels from Pearl's ladder of causation. The tag grades the kind
// of query a scenario poses; it is advisory metadata, not validated against
// structure.
const (
	LevelObservational  = "observational"
	LevelInterventional = "interventional"
	LevelCounterfactual = "counterfactual"
)

// Scenario is one machine-generated causal-reasoning scenario.
type Scenario struct {
	// ID uniquely identifies the scenario. Defaulted to a fresh UUID by
	// Normalize when the generator omitted it.
	ID string `json:"id,omitempty" yaml:"id,omitempty" bson:"_id,omitempty"`

	// Title is an optional human-readable name.
	Title string `json:"title,omitempty" yaml:"title,omitempty" bson:"title,omitempty"`

	// Structure is the compact arrow notation, e.g. "Z -> X, Z -> Y, X -> Y".
	Structure string `json:"structure" yaml:"structure" bson:"structure" validate:"required"`

	// Roles maps variable names to declared roles. Variables referenced only
	// in edges are tolerated and created with role "other".
	Roles map[string]string `json:"roles,omitempty" yaml:"roles,omitempty" bson:"roles,omitempty"`

	// Treatment and Outcome name the causal query endpoints. Either both or
	// neither must be present.
	Treatment string `json:"treatment,omitempty" yaml:"treatment,omitempty" bson:"treatment,omitempty" validate:"required_with=Outcome"`
	Outcome   string `json:"outcome,omitempty" yaml:"outcome,omitempty" bson:"outcome,omitempty" validate:"required_with=Treatment"`

	// AdjustmentSet is the claimed adjustment set for (Treatment, Outcome).
	AdjustmentSet []string `json:"adjustment_set,omitempty" yaml:"adjustment_set,omitempty" bson:"adjustment_set,omitempty"`

	// Level is the claimed rung on Pearl's ladder.
	Level string `json:"level,omitempty" yaml:"level,omitempty" bson:"level,omitempty" validate:"omitempty,oneof=observational interventional counterfactual"`
}

// fieldValidator is shared package-wide. validator.New caches struct
// metadata, so a single instance is cheaper than per-call construction.
var fieldValidator = validator.New()

// Normalize fills defaults in place: a UUID for a missing ID and trimmed
// whitespace on name-valued fields.
func (s *Scenario) Normalize() {
	if strings.TrimSpace(s.ID) == "" {
		s.ID = uuid.NewString()
	}
	s.ID = strings.TrimSpace(s.ID)
	s.Treatment = strings.TrimSpace(s.Treatment)
	s.Outcome = strings.TrimSpace(s.Outcome)
	s.Level = strings.ToLower(strings.TrimSpace(s.Level))
	for i, a := range s.AdjustmentSet {
		s.AdjustmentSet[i] = strings.TrimSpace(a)
	}
}

// Validate checks field-level constraints: structure present, treatment and
// outcome paired, known ladder level, and a safe scenario id. Structural
// problems (malformed notation, dangling references) surface later from the
// parser and engine.
func (s *Scenario) Validate() error {
	if err := fieldValidator.Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScenario, err, "scenario %s", s.ID)
	}
	if s.ID != "" {
		if err := errors.ValidateScenarioID(s.ID); err != nil {
			return err
		}
	}
	return nil
}
