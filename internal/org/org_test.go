package org

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daoforge/internal/contract"
	"daoforge/internal/ledger"
	"daoforge/internal/testutil"
)

var (
	orgTarget = ledger.PublicIdentity{
		PublicKey: "TARGET-PUBLIC-KEY",
		Address:   ledger.Address("TARGET-ADDRESS"),
	}
	alice = ledger.PublicIdentity{
		PublicKey: "ALICE-PUBLIC-KEY",
		Address:   ledger.Address("ALICE-ADDRESS"),
	}
	mallory = ledger.PublicIdentity{
		PublicKey: "MALLORY-PUBLIC-KEY",
		Address:   ledger.Address("MALLORY-ADDRESS"),
	}
)

func testConfig(t *testing.T, reader ledger.Reader, agreementRef string) Config {
	t.Helper()
	return Config{
		Identifier:         "garden-collective",
		Revision:           1,
		Seed:               "test seed phrase",
		DerivationPath:     "m/44'/4343'/0'",
		Keys:               &testutil.StaticKeys{Identity: orgTarget},
		AgreementReference: agreementRef,
		AssetID:            "0x5AD4",
		Reader:             reader,
		Tokens:             NewFixedGenerator("attempt-1", "attempt-2", "attempt-3"),
	}
}

func confirmedReader(t *testing.T) *testutil.FakeReader {
	t.Helper()
	record, err := testutil.ValidAgreementRecord("AGREEMENT-REF", "garden-collective", 1, orgTarget)
	require.NoError(t, err)
	return &testutil.FakeReader{
		Agreements: map[string]*ledger.AggregateRecord{"AGREEMENT-REF": record},
		Graph: &ledger.OperatorGraph{
			Target:        orgTarget.Address,
			Cosignatories: []ledger.Address{alice.Address},
			MinApproval:   1,
		},
		Metadata: ledger.MetadataBucket{"dao_description": "a community garden"},
		Asset:    &ledger.AssetInfo{ID: "0x5AD4", Supply: 2},
	}
}

func TestNew_RequiresIdentifierAndKeys(t *testing.T) {
	_, err := New(Config{Keys: &testutil.StaticKeys{}})
	assert.Error(t, err)

	_, err = New(Config{Identifier: "garden-collective"})
	assert.Error(t, err)
}

func TestNew_DerivesTargetOnce(t *testing.T) {
	o, err := New(testConfig(t, nil, ""))
	require.NoError(t, err)
	assert.Equal(t, orgTarget, o.Target())
}

func TestParseKind_UnknownNameFailsBeforeAnythingElse(t *testing.T) {
	reader := &testutil.FakeReader{}
	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	_, err = o.Execute(context.Background(), alice, "SelfDestruct", nil)
	require.Error(t, err)
	assert.Equal(t, contract.CodeInvalidContract, contract.CodeOf(err))
	// Dispatch failed before any synchronization was attempted.
	assert.Zero(t, reader.Calls["ReadAgreementRecord"])
}

func TestSynchronize_NoReferenceConfigured(t *testing.T) {
	reader := &testutil.FakeReader{}
	o, err := New(testConfig(t, reader, ""))
	require.NoError(t, err)

	ok, err := o.Synchronize(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, reader.Calls)
}

func TestSynchronize_ReplacesSnapshotWholesale(t *testing.T) {
	reader := confirmedReader(t)
	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	ok, err := o.Synchronize(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	snap := o.Snapshot()
	require.NotNil(t, snap.Agreement)
	assert.Equal(t, "AGREEMENT-REF", snap.Agreement.Reference)
	assert.Equal(t, []ledger.Address{alice.Address}, snap.Operators)
	assert.Equal(t, "a community garden", snap.Metadata["dao_description"])
	require.NotNil(t, snap.Asset)
	assert.Equal(t, "0x5AD4", snap.Asset.ID)
}

func TestSynchronize_MissingRecordIsInvalidAgreement(t *testing.T) {
	o, err := New(testConfig(t, &testutil.FakeReader{}, "AGREEMENT-REF"))
	require.NoError(t, err)

	_, err = o.Synchronize(context.Background())
	require.Error(t, err)
	assert.True(t, contract.IsInvalidAgreement(err))
}

func TestSynchronize_TamperedRecordIsInvalidAgreement(t *testing.T) {
	reader := confirmedReader(t)
	// Swap the proof-digest message: the record no longer proves it was
	// announced for this organization.
	record := reader.Agreements["AGREEMENT-REF"]
	record.Operations[2].Payload["message"] = ledger.String("not-the-digest")

	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	_, err = o.Synchronize(context.Background())
	require.Error(t, err)
	assert.True(t, contract.IsInvalidAgreement(err))
	// Hard stop: none of the best-effort reads ran.
	assert.Zero(t, reader.Calls["ReadOperatorGraph"])
	assert.Zero(t, reader.Calls["ReadMetadata"])
}

func TestSynchronize_WrongOperationCountIsInvalidAgreement(t *testing.T) {
	reader := confirmedReader(t)
	record := reader.Agreements["AGREEMENT-REF"]
	record.Operations = record.Operations[:2]

	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	_, err = o.Synchronize(context.Background())
	require.Error(t, err)
	assert.True(t, contract.IsInvalidAgreement(err))
}

func TestSynchronize_BestEffortReadsFailIndependently(t *testing.T) {
	reader := confirmedReader(t)
	reader.ErrGraph = assert.AnError
	reader.ErrAsset = assert.AnError

	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	ok, err := o.Synchronize(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	snap := o.Snapshot()
	require.NotNil(t, snap.Agreement)
	// Failed reads leave their fields at the previous (zero) value.
	assert.Empty(t, snap.Operators)
	assert.Nil(t, snap.Asset)
	// The metadata read still ran and succeeded.
	assert.Equal(t, "a community garden", snap.Metadata["dao_description"])
	assert.Equal(t, 1, reader.Calls["ReadMetadata"])
}

func TestSynchronize_KeepsPreviousValueOnLaterFailure(t *testing.T) {
	reader := confirmedReader(t)
	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	_, err = o.Synchronize(context.Background())
	require.NoError(t, err)
	require.Equal(t, []ledger.Address{alice.Address}, o.Snapshot().Operators)

	// Second synchronization: the graph read now fails; the operator
	// set from the first synchronization survives.
	reader.ErrGraph = assert.AnError
	_, err = o.Synchronize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ledger.Address{alice.Address}, o.Snapshot().Operators)
}

func TestExecute_SynchronizesBeforeAuthorization(t *testing.T) {
	reader := confirmedReader(t)
	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	unit, err := o.Execute(context.Background(), alice, DispatchCreateDAO,
		[]contract.Arg{{Name: "daoName", Value: "garden"}})
	require.NoError(t, err)

	// Authorization passed because Execute synchronized the operator
	// set first; the snapshot started empty.
	assert.Equal(t, 1, reader.Calls["ReadAgreementRecord"])
	assert.Equal(t, "dao(v1):create-dao:garden-collective", unit.Descriptor)
	assert.Equal(t, "attempt-1", unit.AttemptToken)
}

func TestExecute_PropagatesMissingArgument(t *testing.T) {
	o, err := New(testConfig(t, confirmedReader(t), "AGREEMENT-REF"))
	require.NoError(t, err)

	_, err = o.Execute(context.Background(), alice, DispatchCreateDAO, nil)
	require.Error(t, err)
	assert.True(t, contract.IsMissingArgument(err))
}

func TestExecuteOffline_SkipsSynchronization(t *testing.T) {
	reader := confirmedReader(t)
	o, err := New(testConfig(t, reader, "AGREEMENT-REF"))
	require.NoError(t, err)

	// Offline, the snapshot is still empty: no agreement, no
	// operators. create-agreement is the only contract that can run.
	unit, err := o.ExecuteOffline(context.Background(), alice, DispatchCreateAgreement,
		[]contract.Arg{
			{Name: "agreementSecret", Value: "hunter2"},
			{Name: "operators", Value: []string{"ALICE-ADDRESS"}},
		})
	require.NoError(t, err)
	assert.Empty(t, reader.Calls)
	assert.Equal(t, "dao(v1):create-agreement:garden-collective", unit.Descriptor)
}

func TestCanExecute_OnlyCreateAgreementBeforeConfirmation(t *testing.T) {
	o, err := New(testConfig(t, &testutil.FakeReader{}, ""))
	require.NoError(t, err)
	ctx := context.Background()

	args := []contract.Arg{
		{Name: "agreementSecret", Value: "hunter2"},
		{Name: "operators", Value: []string{"ALICE-ADDRESS"}},
		{Name: "target", Value: orgTarget.PublicKey},
		{Name: "daoName", Value: "garden"},
		{Name: "voteTopic", Value: "rename"},
		{Name: "choices", Value: []string{"yes", "no"}},
		{Name: "voteAsset", Value: "0x5AD4"},
		{Name: "choice", Value: "yes"},
	}

	res, err := o.CanExecute(ctx, alice, DispatchCreateAgreement, args)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	for _, name := range []string{DispatchCommitAgreement, DispatchCreateDAO, DispatchCreateVote, DispatchVote} {
		res, err := o.CanExecute(ctx, orgTarget, name, args)
		require.NoError(t, err, name)
		assert.False(t, res.Allowed, "%s must refuse while no agreement is confirmed", name)
	}
}

func TestCanExecute_OperatorsOnlyRefusesOutsiders(t *testing.T) {
	o, err := New(testConfig(t, confirmedReader(t), "AGREEMENT-REF"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = o.Synchronize(ctx)
	require.NoError(t, err)

	args := []contract.Arg{{Name: "daoName", Value: "garden"}}

	res, err := o.CanExecute(ctx, mallory, DispatchCreateDAO, args)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = o.CanExecute(ctx, alice, DispatchCreateDAO, args)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
