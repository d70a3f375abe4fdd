package store

import (
	"fmt"

	"daoforge/internal/contract"
	"daoforge/internal/ledger"
)

// marshalUnit serializes an atomic unit to canonical JSON.
func marshalUnit(unit *ledger.AtomicUnit) (string, error) {
	out, err := ledger.MarshalCanonical(unitValue(unit))
	if err != nil {
		return "", fmt.Errorf("marshal unit: %w", err)
	}
	return string(out), nil
}

// marshalSnapshot serializes a synchronized snapshot to canonical JSON.
func marshalSnapshot(snap contract.State) (string, error) {
	obj := ledger.Object{}

	if snap.Agreement != nil {
		obj["agreement"] = ledger.Object{
			"reference":  ledger.String(snap.Agreement.Reference),
			"operations": operationsValue(snap.Agreement.Operations),
		}
	}

	operators := make(ledger.Array, len(snap.Operators))
	for i, op := range snap.Operators {
		operators[i] = ledger.String(op)
	}
	obj["operators"] = operators

	// Map iteration order is irrelevant here, the canonical encoder
	// sorts object keys. Sorting would only duplicate its work.
	metadata := ledger.Object{}
	for k, v := range snap.Metadata {
		metadata[k] = ledger.String(v)
	}
	obj["metadata"] = metadata

	if snap.Asset != nil {
		obj["asset"] = ledger.Object{
			"id":           ledger.String(snap.Asset.ID),
			"supply":       ledger.Int(snap.Asset.Supply),
			"divisibility": ledger.Int(snap.Asset.Divisibility),
			"owner":        ledger.String(snap.Asset.Owner),
			"mutable":      ledger.Bool(snap.Asset.Mutable),
		}
	}

	out, err := ledger.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return string(out), nil
}

func unitValue(unit *ledger.AtomicUnit) ledger.Object {
	return ledger.Object{
		"descriptor":    ledger.String(unit.Descriptor),
		"attempt_token": ledger.String(unit.AttemptToken),
		"operations":    operationsValue(unit.Operations),
	}
}

func operationsValue(ops []ledger.Operation) ledger.Array {
	arr := make(ledger.Array, len(ops))
	for i, op := range ops {
		arr[i] = ledger.Object{
			"type":    ledger.String(op.Type),
			"payload": op.Payload,
			"issuer": ledger.Object{
				"public_key": ledger.String(op.Issuer.PublicKey),
				"address":    ledger.String(op.Issuer.Address),
			},
		}
	}
	return arr
}
