package errors

import (
	"strings"
	"unicode"
)

// ValidateVariableName validates a causal variable name for safety and
// correctness before it enters the graph model.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No arrow fragments (>, -) that would collide with the edge notation
//   - Maximum length of 64 characters
//
// Canonicalization (trimming, case folding) is the graph model's job; this
// only rejects names that can never be valid.
func ValidateVariableName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return New(ErrCodeInvalidVariable, "variable name cannot be empty")
	}

	if len(trimmed) > 64 {
		return New(ErrCodeInvalidVariable, "variable name too long (max 64 characters)")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidVariable, "variable name contains control characters")
		}
	}

	if strings.ContainsAny(trimmed, "<>-,") {
		return New(ErrCodeInvalidVariable, "variable name %q contains arrow notation characters", trimmed)
	}

	return nil
}

// ValidateScenarioID validates a scenario identifier for safety.
// IDs end up in cache keys, file names, and store documents, so path
// separators and control characters are rejected.
func ValidateScenarioID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidScenario, "scenario id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidScenario, "scenario id too long (max 128 characters)")
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidScenario, "scenario id cannot contain path separators")
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidScenario, "scenario id cannot contain whitespace or control characters")
		}
	}

	return nil
}

// ValidateScenarioFilename validates a scenario file name for safety.
// It ensures the name is a simple basename without path components.
func ValidateScenarioFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidFormat, "scenario filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidFormat, "scenario filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidFormat, "scenario filename cannot be a hidden file")
	}

	return nil
}
