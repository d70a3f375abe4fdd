package org

import (
	"context"
	"fmt"
	"log/slog"

	"daoforge/internal/contract"
	"daoforge/internal/ledger"
)

// agreementOperationCount is the exact shape of a committed agreement:
// secret proof, descriptor transfer, proof-digest transfer.
const agreementOperationCount = 3

// Synchronize refreshes the snapshot from the ledger.
//
// With no agreement reference configured there is nothing to read and
// the call returns true immediately. Otherwise the agreement record is
// read and verified first, a hard stop on failure, and only then are
// asset info, operator graph, and metadata refreshed, each
// independently best-effort.
//
// On success the snapshot is replaced wholesale, never field-by-field.
func (o *Organization) Synchronize(ctx context.Context) (bool, error) {
	if o.agreementRef == "" {
		return true, nil
	}
	if o.reader == nil {
		return false, fmt.Errorf("agreement reference configured but no ledger reader attached")
	}

	record, err := o.reader.ReadAgreementRecord(ctx, o.agreementRef)
	if err != nil {
		return false, fmt.Errorf("read agreement record %s: %w", o.agreementRef, err)
	}
	if record == nil {
		return false, contract.NewInvalidAgreement("agreement record %s not found", o.agreementRef)
	}
	if err := o.verifyAgreement(record); err != nil {
		return false, err
	}

	next := o.snapshot
	next.Agreement = record

	if o.assetID != "" {
		if asset, err := o.reader.ReadAssetInfo(ctx, o.assetID); err != nil {
			slog.Warn("asset info refresh failed", "asset_id", o.assetID, "error", err)
		} else {
			next.Asset = asset
		}
	}

	if graph, err := o.reader.ReadOperatorGraph(ctx, o.target); err != nil {
		slog.Warn("operator graph refresh failed", "target", o.target.Address, "error", err)
	} else {
		next.Operators = graph.Cosignatories
	}

	if metadata, err := o.reader.ReadMetadata(ctx, o.target); err != nil {
		slog.Warn("metadata refresh failed", "target", o.target.Address, "error", err)
	} else {
		next.Metadata = metadata
	}

	o.snapshot = next
	o.journalSnapshot(ctx, next)
	return true, nil
}

// verifyAgreement checks the authenticity of a confirmed agreement
// record: the exact operation count, the leading secret proof bound to
// the target, the descriptor transfer, and the proof-digest transfer
// derived from the organization identifier and target identity. A
// record announced for any other organization cannot reproduce these
// values.
func (o *Organization) verifyAgreement(record *ledger.AggregateRecord) error {
	ops := record.Operations
	if len(ops) != agreementOperationCount {
		return contract.NewInvalidAgreement("agreement record %s has %d operations, want %d",
			record.Reference, len(ops), agreementOperationCount)
	}

	if ops[0].Type != ledger.TypeSecretProof {
		return contract.NewInvalidAgreement("agreement operation 0 is %s, want %s",
			ops[0].Type, ledger.TypeSecretProof)
	}
	if recipient := ops[0].Payload["recipient"]; recipient != ledger.String(o.target.Address) {
		return contract.NewInvalidAgreement("agreement proof recipient does not match target")
	}

	descriptor := fmt.Sprintf("%s(v%d):%s:%s",
		contract.Standard, o.revision, contract.NameCommitAgreement, o.identifier)
	if ops[1].Type != ledger.TypeTransfer || ops[1].Payload["message"] != ledger.String(descriptor) {
		return contract.NewInvalidAgreement("agreement operation 1 does not carry the expected descriptor")
	}

	digest, err := ledger.ProofDigest(o.identifier, o.target, 2)
	if err != nil {
		return fmt.Errorf("compute proof digest: %w", err)
	}
	if ops[2].Type != ledger.TypeTransfer || ops[2].Payload["message"] != ledger.String(digest) {
		return contract.NewInvalidAgreement("agreement operation 2 does not carry the expected proof digest")
	}

	return nil
}

// journalSnapshot records a synchronized snapshot. Best-effort: a
// journal failure is logged and never fails the synchronization.
func (o *Organization) journalSnapshot(ctx context.Context, snap Snapshot) {
	if o.journal == nil {
		return
	}
	if err := o.journal.RecordSnapshot(ctx, o.clock.Next(), snap); err != nil {
		slog.Warn("snapshot journaling failed", "organization", o.identifier, "error", err)
	}
}

// journalExecution records a wrapped unit. Best-effort, like
// journalSnapshot.
func (o *Organization) journalExecution(ctx context.Context, actor ledger.PublicIdentity, unit *ledger.AtomicUnit) {
	if o.journal == nil {
		return
	}
	if err := o.journal.RecordExecution(ctx, o.clock.Next(), actor, unit); err != nil {
		slog.Warn("execution journaling failed",
			"organization", o.identifier,
			"descriptor", unit.Descriptor,
			"error", err)
	}
}
