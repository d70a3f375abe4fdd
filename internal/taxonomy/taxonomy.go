package taxonomy

import (
	"fmt"

	"daoforge/internal/ledger"
)

// Entry is one position in a taxonomy: the operation type expected
// there and whether its absence fails the match.
type Entry struct {
	Type     ledger.OperationType
	Required bool
}

// Rule attaches repetition semantics to a position. BundleWith lists the
// relative offsets of the entries forming one repeatable unit, starting
// at the rule's own position (offset 0); its length is the bundle
// length. MinOccurrences, when positive, is a lower bound on full
// repetitions; MaxOccurrences, when positive, caps greedy counting.
type Rule struct {
	BundleWith     []int
	Repeatable     bool
	MinOccurrences int
	MaxOccurrences int
}

// Taxonomy is the declarative grammar for one contract kind.
type Taxonomy struct {
	name     string
	entries  []Entry
	rules    map[int]Rule
	accepted map[ledger.OperationType]bool

	// globalRepeatable backs the legacy MarkRepeatable operation.
	// New taxonomies declare repetition positionally via rules.
	globalRepeatable map[ledger.OperationType]bool
}

// New creates an empty taxonomy. Until entries are appended it accepts
// nothing and Validate always returns false.
func New(name string) *Taxonomy {
	return &Taxonomy{
		name:             name,
		rules:            make(map[int]Rule),
		accepted:         make(map[ledger.OperationType]bool),
		globalRepeatable: make(map[ledger.OperationType]bool),
	}
}

// Name returns the taxonomy's diagnostic name.
func (x *Taxonomy) Name() string {
	return x.name
}

// Len returns the number of declared entries.
func (x *Taxonomy) Len() int {
	return len(x.entries)
}

// Entries returns a copy of the declared entries in position order.
func (x *Taxonomy) Entries() []Entry {
	out := make([]Entry, len(x.entries))
	copy(out, x.entries)
	return out
}

// Append adds an entry at the next position and returns that position.
func (x *Taxonomy) Append(t ledger.OperationType, required bool) int {
	x.entries = append(x.entries, Entry{Type: t, Required: required})
	x.accepted[t] = true
	return len(x.entries) - 1
}

// RuleAt attaches a semantic rule to an existing position. The bundle
// must fit within the declared entries.
func (x *Taxonomy) RuleAt(pos int, r Rule) error {
	if pos < 0 || pos >= len(x.entries) {
		return fmt.Errorf("taxonomy %s: rule position %d out of range (have %d entries)", x.name, pos, len(x.entries))
	}
	if n := len(r.BundleWith); n > 0 && pos+n > len(x.entries) {
		return fmt.Errorf("taxonomy %s: bundle of %d entries at position %d exceeds %d declared entries", x.name, n, pos, len(x.entries))
	}
	if r.MinOccurrences < 0 {
		return fmt.Errorf("taxonomy %s: negative min occurrences at position %d", x.name, pos)
	}
	if r.MaxOccurrences > 0 && r.MaxOccurrences < r.MinOccurrences {
		return fmt.Errorf("taxonomy %s: max occurrences %d below min %d at position %d", x.name, r.MaxOccurrences, r.MinOccurrences, pos)
	}
	x.rules[pos] = r
	return nil
}

// RuleFor returns the rule at a position, if any.
func (x *Taxonomy) RuleFor(pos int) (Rule, bool) {
	r, ok := x.rules[pos]
	return r, ok
}

// AcceptsType reports whether the type appears anywhere in the taxonomy.
// O(1) set membership; false for an empty taxonomy. Used as a global
// pre-filter before positional matching.
func (x *Taxonomy) AcceptsType(t ledger.OperationType) bool {
	return x.accepted[t]
}

// MarkRepeatable marks an operation type as repeatable wherever it
// appears. Kept for compatibility with callers predating positional
// rules; new taxonomies should declare repeatability via RuleAt.
func (x *Taxonomy) MarkRepeatable(t ledger.OperationType) {
	x.globalRepeatable[t] = true
}
