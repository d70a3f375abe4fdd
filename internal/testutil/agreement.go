package testutil

import (
	"fmt"

	"daoforge/internal/ledger"
)

// ValidAgreementRecord builds an aggregate record that passes the
// orchestrator's authenticity check for the given organization
// identifier, revision, and target identity.
func ValidAgreementRecord(reference, identifier string, revision int, target ledger.PublicIdentity) (*ledger.AggregateRecord, error) {
	digest, err := ledger.ProofDigest(identifier, target, 2)
	if err != nil {
		return nil, err
	}

	descriptor := fmt.Sprintf("dao(v%d):commit-agreement:%s", revision, identifier)

	return &ledger.AggregateRecord{
		Reference: reference,
		Operations: []ledger.Operation{
			{
				Type: ledger.TypeSecretProof,
				Payload: ledger.Object{
					"recipient": ledger.String(target.Address),
				},
				Issuer: target,
			},
			{
				Type: ledger.TypeTransfer,
				Payload: ledger.Object{
					"recipient": ledger.String(target.Address),
					"amount":    ledger.Int(0),
					"message":   ledger.String(descriptor),
				},
				Issuer: target,
			},
			{
				Type: ledger.TypeTransfer,
				Payload: ledger.Object{
					"recipient": ledger.String(target.Address),
					"amount":    ledger.Int(0),
					"message":   ledger.String(digest),
				},
				Issuer: target,
			},
		},
	}, nil
}
