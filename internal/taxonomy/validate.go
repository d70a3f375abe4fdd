package taxonomy

import "daoforge/internal/ledger"

// Validate reports whether a candidate operation-type sequence matches
// the taxonomy.
//
// The walk keeps three counters, all locally scoped so repeated calls
// on the same inputs are idempotent:
//
//   - skip: entries skipped because an optional entry was absent
//   - bundled: candidate slots consumed by repeatable bundles
//   - cursor: position - skip + bundled, the candidate index the
//     current entry is checked against
//
// An empty sequence never validates, and an empty taxonomy validates
// nothing. A single candidate whose type appears nowhere in the
// taxonomy fails the whole sequence regardless of position.
//
// Bundle repetitions are counted greedily left to right: a repetition
// must match every type in the bundle in order, and a partial match at
// the tail consumes nothing. Zero repetitions is not itself a failure
// unless the rule declares a positive MinOccurrences.
//
// The walk checks only the candidate positions the grammar expects; it
// does not separately confirm that every candidate was consumed.
// Consumption accounting follows from the cursor arithmetic alone,
// so trailing operations of otherwise-accepted types can escape
// positional scrutiny. Taxonomies with the same type at several
// positions deserve extra test coverage for exactly that reason.
func (x *Taxonomy) Validate(seq []ledger.OperationType) bool {
	if len(seq) == 0 || len(x.entries) == 0 {
		return false
	}

	// Global type pre-filter, independent of position.
	for _, t := range seq {
		if !x.accepted[t] {
			return false
		}
	}

	skip := 0
	bundled := 0

	for pos := 0; pos < len(x.entries); {
		entry := x.entries[pos]
		cursor := pos - skip + bundled

		rule, hasRule := x.rules[pos]
		if !hasRule && x.globalRepeatable[entry.Type] {
			// Legacy globally-repeatable type: behave as a
			// single-entry repeatable bundle at this position.
			rule = Rule{BundleWith: []int{0}, Repeatable: true}
			hasRule = true
		}

		if hasRule && rule.Repeatable {
			width := len(rule.BundleWith)
			if width <= 0 {
				width = 1
			}
			if pos+width > len(x.entries) {
				// Malformed rule; RuleAt rejects this, but a
				// hand-built taxonomy could still carry it.
				return false
			}

			reps := x.countRepetitions(seq, cursor, pos, width, rule.MaxOccurrences)
			if reps < rule.MinOccurrences {
				return false
			}

			bundled += reps * width
			pos += width
			continue
		}

		if !entry.Required {
			// Optional entry: absence (or a type mismatch at the
			// cursor) makes it invisible to the rest of the match.
			if cursor >= len(seq) || seq[cursor] != entry.Type {
				skip++
			}
			pos++
			continue
		}

		if cursor >= len(seq) || seq[cursor] != entry.Type {
			return false
		}
		pos++
	}

	return true
}

// countRepetitions counts consecutive full matches of the bundle
// starting at the given candidate index. Counting is strictly greedy;
// a partial repetition at the tail does not count and consumes nothing.
func (x *Taxonomy) countRepetitions(seq []ledger.OperationType, start, pos, width, max int) int {
	reps := 0
	for {
		if max > 0 && reps == max {
			return reps
		}
		base := start + reps*width
		if base+width > len(seq) {
			return reps
		}
		for i := 0; i < width; i++ {
			if seq[base+i] != x.entries[pos+i].Type {
				return reps
			}
		}
		reps++
	}
}
