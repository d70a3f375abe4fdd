package compiler

import (
	"fmt"
	"strings"

	"daoforge/internal/ledger"
)

// Validation error codes (E100-E199)
const (
	ErrNameEmpty          = "E100" // taxonomy name is required
	ErrNoEntries          = "E101" // at least one entry required
	ErrUnknownType        = "E102" // operation type not in the ledger vocabulary
	ErrRulePositionOOB    = "E103" // rule position outside the entry list
	ErrDuplicateRule      = "E104" // two rules at the same position
	ErrBundleOffsetOOB    = "E105" // bundle offset reaches outside the entry list
	ErrBundleShape        = "E106" // bundle offsets must start at 0 and be contiguous
	ErrOccurrenceBounds   = "E107" // min/max occurrence bounds inconsistent
	ErrRuleWithoutRepeat  = "E108" // rule declared but not repeatable
	ErrAllEntriesOptional = "E109" // every entry optional, nothing can match
)

// ValidationError represents a taxonomy schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled spec against schema rules.
// Returns all errors found (does not fail-fast).
func Validate(spec *Spec) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(spec.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "taxonomy name is required and must be non-empty",
			Code:    ErrNameEmpty,
		})
	}

	if len(spec.Entries) == 0 {
		errs = append(errs, ValidationError{
			Field:   "entries",
			Message: "at least one entry is required",
			Code:    ErrNoEntries,
		})
	}

	anyRequired := false
	for i, entry := range spec.Entries {
		if entry.Required {
			anyRequired = true
		}
		if !ledger.KnownTypes[ledger.OperationType(entry.Type)] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("entries[%d].type", i),
				Message: fmt.Sprintf("unknown operation type %q", entry.Type),
				Code:    ErrUnknownType,
			})
		}
	}
	if len(spec.Entries) > 0 && !anyRequired {
		errs = append(errs, ValidationError{
			Field:   "entries",
			Message: "every entry is optional; no sequence can satisfy the taxonomy",
			Code:    ErrAllEntriesOptional,
		})
	}

	seen := make(map[int]bool)
	for i, rule := range spec.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		if rule.At < 0 || rule.At >= len(spec.Entries) {
			errs = append(errs, ValidationError{
				Field:   field + ".at",
				Message: fmt.Sprintf("position %d is outside the entry list", rule.At),
				Code:    ErrRulePositionOOB,
			})
			continue
		}

		if seen[rule.At] {
			errs = append(errs, ValidationError{
				Field:   field + ".at",
				Message: fmt.Sprintf("duplicate rule at position %d", rule.At),
				Code:    ErrDuplicateRule,
			})
		}
		seen[rule.At] = true

		if !rule.Repeatable {
			errs = append(errs, ValidationError{
				Field:   field + ".repeatable",
				Message: "a rule without repeatable: true has no effect",
				Code:    ErrRuleWithoutRepeat,
			})
		}

		for j, offset := range rule.BundleWith {
			if offset != j {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.bundle_with[%d]", field, j),
					Message: fmt.Sprintf("offsets must be contiguous from 0, got %d at index %d", offset, j),
					Code:    ErrBundleShape,
				})
				break
			}
			if rule.At+offset >= len(spec.Entries) {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.bundle_with[%d]", field, j),
					Message: fmt.Sprintf("offset %d reaches past the last entry", offset),
					Code:    ErrBundleOffsetOOB,
				})
			}
		}

		if rule.MinOccurrences < 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".min_occurrences",
				Message: "must not be negative",
				Code:    ErrOccurrenceBounds,
			})
		}
		if rule.MaxOccurrences < 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".max_occurrences",
				Message: "must not be negative",
				Code:    ErrOccurrenceBounds,
			})
		}
		if rule.MaxOccurrences > 0 && rule.MinOccurrences > rule.MaxOccurrences {
			errs = append(errs, ValidationError{
				Field:   field + ".min_occurrences",
				Message: fmt.Sprintf("min %d exceeds max %d", rule.MinOccurrences, rule.MaxOccurrences),
				Code:    ErrOccurrenceBounds,
			})
		}
	}

	return errs
}
