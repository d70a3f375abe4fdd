package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daoforge/internal/ledger"
)

func seq(types ...ledger.OperationType) []ledger.OperationType {
	return types
}

func TestValidate_EmptySequenceRejected(t *testing.T) {
	x := New("boundary")
	x.Append(ledger.TypeTransfer, true)

	assert.False(t, x.Validate(nil))
	assert.False(t, x.Validate([]ledger.OperationType{}))
}

func TestValidate_EmptyTaxonomyAcceptsNothing(t *testing.T) {
	x := New("unconfigured")

	assert.False(t, x.Validate(seq(ledger.TypeTransfer)))
	assert.False(t, x.AcceptsType(ledger.TypeTransfer))
}

func TestValidate_PreFilterRejectsForeignType(t *testing.T) {
	x := New("prefilter")
	x.Append(ledger.TypeSecretProof, true)
	x.Append(ledger.TypeTransfer, true)

	// A single non-accepted type anywhere fails the whole sequence,
	// independent of position.
	assert.False(t, x.Validate(seq(ledger.TypeSecretProof, ledger.TypeMosaicSupply)))
	assert.False(t, x.Validate(seq(ledger.TypeMosaicSupply, ledger.TypeTransfer)))
}

func TestValidate_SingleOptionalEntry(t *testing.T) {
	x := New("optional-only")
	x.Append(ledger.TypeAccountMetadata, false)

	assert.True(t, x.Validate(seq(ledger.TypeAccountMetadata)))
}

func TestValidate_OptionalEntryAbsentIsSkipped(t *testing.T) {
	x := New("optional-middle")
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeAccountMetadata, false)
	x.Append(ledger.TypeSecretLock, true)

	// Optional present at its cursor position.
	assert.True(t, x.Validate(seq(ledger.TypeTransfer, ledger.TypeAccountMetadata, ledger.TypeSecretLock)))
	// Optional absent: skipped silently, later entries re-align.
	assert.True(t, x.Validate(seq(ledger.TypeTransfer, ledger.TypeSecretLock)))
	// Required entries still enforced.
	assert.False(t, x.Validate(seq(ledger.TypeTransfer)))
}

func TestValidate_RequiredOrderEnforced(t *testing.T) {
	x := New("commit-agreement-shape")
	x.Append(ledger.TypeSecretProof, true)
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeTransfer, true)

	assert.True(t, x.Validate(seq(ledger.TypeSecretProof, ledger.TypeTransfer, ledger.TypeTransfer)))
	// Same multiset, first two swapped: must fail the positional walk
	// even though every type passes the pre-filter.
	assert.False(t, x.Validate(seq(ledger.TypeTransfer, ledger.TypeSecretProof, ledger.TypeTransfer)))
}

func TestValidate_RepeatableBundleAtTail(t *testing.T) {
	x := New("distribution")
	x.Append(ledger.TypeMosaicDefinition, true)
	pos := x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeAccountMetadata, true)
	require.NoError(t, x.RuleAt(pos, Rule{BundleWith: []int{0, 1}, Repeatable: true}))

	head := seq(ledger.TypeMosaicDefinition)

	// Zero repetitions: not an error for the walk itself.
	assert.True(t, x.Validate(head))
	// One repetition.
	assert.True(t, x.Validate(append(head, ledger.TypeTransfer, ledger.TypeAccountMetadata)))
	// Three repetitions, counted greedily.
	three := append(seq(ledger.TypeMosaicDefinition),
		ledger.TypeTransfer, ledger.TypeAccountMetadata,
		ledger.TypeTransfer, ledger.TypeAccountMetadata,
		ledger.TypeTransfer, ledger.TypeAccountMetadata)
	assert.True(t, x.Validate(three))
}

func TestValidate_PartialRepetitionBeforeRequiredEntryFails(t *testing.T) {
	// Bundle of length 2 at the head, then a required entry. Three full
	// repetitions followed by one extra operation leave the required
	// entry's cursor past the end of the sequence.
	x := New("partial-tail")
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeAccountMetadata, true)
	x.Append(ledger.TypeSecretProof, true)
	require.NoError(t, x.RuleAt(0, Rule{BundleWith: []int{0, 1}, Repeatable: true}))

	s := seq(
		ledger.TypeTransfer, ledger.TypeAccountMetadata,
		ledger.TypeTransfer, ledger.TypeAccountMetadata,
		ledger.TypeTransfer, ledger.TypeAccountMetadata,
		ledger.TypeTransfer, // partial fourth repetition
	)
	assert.False(t, x.Validate(s))
}

func TestValidate_MinOccurrencesEnforced(t *testing.T) {
	x := New("floor")
	x.Append(ledger.TypeMosaicDefinition, true)
	pos := x.Append(ledger.TypeTransfer, true)
	require.NoError(t, x.RuleAt(pos, Rule{BundleWith: []int{0}, Repeatable: true, MinOccurrences: 2}))

	assert.False(t, x.Validate(seq(ledger.TypeMosaicDefinition)))
	assert.False(t, x.Validate(seq(ledger.TypeMosaicDefinition, ledger.TypeTransfer)))
	assert.True(t, x.Validate(seq(ledger.TypeMosaicDefinition, ledger.TypeTransfer, ledger.TypeTransfer)))
}

func TestValidate_MaxOccurrencesCapsGreedyCounting(t *testing.T) {
	x := New("ceiling")
	pos := x.Append(ledger.TypeTransfer, true)
	require.NoError(t, x.RuleAt(pos, Rule{BundleWith: []int{0}, Repeatable: true, MaxOccurrences: 2}))

	assert.True(t, x.Validate(seq(ledger.TypeTransfer, ledger.TypeTransfer)))
}

func TestValidate_Idempotent(t *testing.T) {
	x := New("idempotent")
	x.Append(ledger.TypeSecretProof, true)
	pos := x.Append(ledger.TypeTransfer, true)
	require.NoError(t, x.RuleAt(pos, Rule{BundleWith: []int{0}, Repeatable: true}))

	s := seq(ledger.TypeSecretProof, ledger.TypeTransfer, ledger.TypeTransfer)
	first := x.Validate(s)
	second := x.Validate(s)

	assert.True(t, first)
	assert.Equal(t, first, second)
}

func TestValidate_LegacyMarkRepeatable(t *testing.T) {
	x := New("legacy")
	x.Append(ledger.TypeSecretProof, true)
	x.Append(ledger.TypeTransfer, true)
	x.MarkRepeatable(ledger.TypeTransfer)

	assert.True(t, x.Validate(seq(ledger.TypeSecretProof, ledger.TypeTransfer)))
	assert.True(t, x.Validate(seq(ledger.TypeSecretProof, ledger.TypeTransfer, ledger.TypeTransfer, ledger.TypeTransfer)))
}

func TestRuleAt_RejectsMalformedRules(t *testing.T) {
	x := New("malformed")
	x.Append(ledger.TypeTransfer, true)

	assert.Error(t, x.RuleAt(5, Rule{Repeatable: true}))
	assert.Error(t, x.RuleAt(0, Rule{BundleWith: []int{0, 1}, Repeatable: true}))
	assert.Error(t, x.RuleAt(0, Rule{Repeatable: true, MinOccurrences: -1}))
	assert.Error(t, x.RuleAt(0, Rule{Repeatable: true, MinOccurrences: 3, MaxOccurrences: 1}))
}

func TestAcceptsType_UnionOfEntryTypes(t *testing.T) {
	x := New("accepted")
	x.Append(ledger.TypeSecretProof, true)
	x.Append(ledger.TypeTransfer, false)

	assert.True(t, x.AcceptsType(ledger.TypeSecretProof))
	assert.True(t, x.AcceptsType(ledger.TypeTransfer))
	assert.False(t, x.AcceptsType(ledger.TypeMosaicSupply))
}
