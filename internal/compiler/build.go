package compiler

import (
	"fmt"

	"daoforge/internal/ledger"
	"daoforge/internal/taxonomy"
)

// Build validates a spec and constructs the runnable taxonomy. The
// first validation error aborts the build; callers that want the full
// error list call Validate directly.
func Build(spec *Spec) (*taxonomy.Taxonomy, error) {
	if errs := Validate(spec); len(errs) > 0 {
		return nil, fmt.Errorf("invalid taxonomy %q: %w", spec.Name, errs[0])
	}

	x := taxonomy.New(spec.Name)
	for _, entry := range spec.Entries {
		x.Append(ledger.OperationType(entry.Type), entry.Required)
	}
	for _, rule := range spec.Rules {
		if err := x.RuleAt(rule.At, taxonomy.Rule{
			BundleWith:     rule.BundleWith,
			Repeatable:     rule.Repeatable,
			MinOccurrences: rule.MinOccurrences,
			MaxOccurrences: rule.MaxOccurrences,
		}); err != nil {
			return nil, fmt.Errorf("invalid taxonomy %q: %w", spec.Name, err)
		}
	}
	return x, nil
}
