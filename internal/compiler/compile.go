// Package compiler parses declarative CUE taxonomy definitions into
// specs and builds validated taxonomies from them. The CUE SDK's Go
// API is used directly (not a CLI subprocess).
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Spec is the raw, position-free form of a taxonomy as written in CUE.
// It is validated by Validate and turned into a runnable taxonomy by
// Build.
type Spec struct {
	Name    string      `json:"name"`
	Entries []EntrySpec `json:"entries"`
	Rules   []RuleSpec  `json:"rules,omitempty"`
}

// EntrySpec is one positional entry of the declared operation sequence.
type EntrySpec struct {
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// RuleSpec attaches repetition behavior to the entry at position At.
type RuleSpec struct {
	At             int   `json:"at"`
	BundleWith     []int `json:"bundle_with,omitempty"`
	Repeatable     bool  `json:"repeatable"`
	MinOccurrences int   `json:"min_occurrences,omitempty"`
	MaxOccurrences int   `json:"max_occurrences,omitempty"`
}

// CompileTaxonomy parses a CUE value into a Spec.
//
// The CUE value should be the taxonomy struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`taxonomy: vote: { ... }`)
//	spec, err := CompileTaxonomy(v.LookupPath(cue.ParsePath("taxonomy.vote")))
func CompileTaxonomy(v cue.Value) (*Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &Spec{}

	// Taxonomy name comes from the struct label (the path selector).
	// Quoted labels like "create-dao" lose their quotes.
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		sel := labels[len(labels)-1]
		if sel.LabelType() == cue.StringLabel {
			spec.Name = sel.Unquoted()
		} else {
			spec.Name = sel.String()
		}
	}

	entriesVal := v.LookupPath(cue.ParsePath("entries"))
	if !entriesVal.Exists() {
		return nil, &CompileError{
			Field:   "entries",
			Message: "entries list is required",
			Pos:     v.Pos(),
		}
	}

	entryIter, err := entriesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for entryIter.Next() {
		entry, err := parseEntry(entryIter.Value())
		if err != nil {
			return nil, err
		}
		spec.Entries = append(spec.Entries, entry)
	}

	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if rulesVal.Exists() {
		ruleIter, err := rulesVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for ruleIter.Next() {
			rule, err := parseRule(ruleIter.Value())
			if err != nil {
				return nil, err
			}
			spec.Rules = append(spec.Rules, rule)
		}
	}

	return spec, nil
}

// CompileCatalog parses every taxonomy declared under the "taxonomy"
// root of a CUE value, in declaration order.
func CompileCatalog(v cue.Value) ([]*Spec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("taxonomy"))
	if !root.Exists() {
		return nil, &CompileError{
			Field:   "taxonomy",
			Message: "no taxonomy declarations found",
			Pos:     v.Pos(),
		}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var specs []*Spec
	for iter.Next() {
		spec, err := CompileTaxonomy(iter.Value())
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// parseEntry parses a single entry. Supports the shorthand string form
// (a bare operation type, implicitly required) and the structured form
// with explicit type and required fields.
func parseEntry(v cue.Value) (EntrySpec, error) {
	var entry EntrySpec

	if opType, err := v.String(); err == nil {
		return EntrySpec{Type: opType, Required: true}, nil
	}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return entry, &CompileError{
			Field:   "entries",
			Message: "entry must be a string or an object with a type field",
			Pos:     v.Pos(),
		}
	}
	opType, err := typeVal.String()
	if err != nil {
		return entry, formatCUEError(err)
	}
	entry.Type = opType

	// required defaults to true; the structured form exists mostly to
	// turn it off.
	entry.Required = true
	if reqVal := v.LookupPath(cue.ParsePath("required")); reqVal.Exists() {
		required, err := reqVal.Bool()
		if err != nil {
			return entry, formatCUEError(err)
		}
		entry.Required = required
	}

	return entry, nil
}

func parseRule(v cue.Value) (RuleSpec, error) {
	var rule RuleSpec

	atVal := v.LookupPath(cue.ParsePath("at"))
	if !atVal.Exists() {
		return rule, &CompileError{
			Field:   "rules",
			Message: "rule position \"at\" is required",
			Pos:     v.Pos(),
		}
	}
	at, err := atVal.Int64()
	if err != nil {
		return rule, formatCUEError(err)
	}
	rule.At = int(at)

	if bwVal := v.LookupPath(cue.ParsePath("bundle_with")); bwVal.Exists() {
		bwIter, err := bwVal.List()
		if err != nil {
			return rule, formatCUEError(err)
		}
		for bwIter.Next() {
			offset, err := bwIter.Value().Int64()
			if err != nil {
				return rule, formatCUEError(err)
			}
			rule.BundleWith = append(rule.BundleWith, int(offset))
		}
	}

	if repVal := v.LookupPath(cue.ParsePath("repeatable")); repVal.Exists() {
		repeatable, err := repVal.Bool()
		if err != nil {
			return rule, formatCUEError(err)
		}
		rule.Repeatable = repeatable
	}

	if minVal := v.LookupPath(cue.ParsePath("min_occurrences")); minVal.Exists() {
		min, err := minVal.Int64()
		if err != nil {
			return rule, formatCUEError(err)
		}
		rule.MinOccurrences = int(min)
	}

	if maxVal := v.LookupPath(cue.ParsePath("max_occurrences")); maxVal.Exists() {
		max, err := maxVal.Int64()
		if err != nil {
			return rule, formatCUEError(err)
		}
		rule.MaxOccurrences = int(max)
	}

	return rule, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
