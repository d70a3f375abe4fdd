package ledger

import "context"

// Reader is the ledger-read capability the orchestrator synchronizes
// through. Implementations wrap an actual ledger SDK; the engine never
// depends on concrete SDK types.
//
// ReadAgreementRecord returns (nil, nil) when no record exists under the
// reference; the other readers return errors for absence, which callers
// treat as best-effort failures.
type Reader interface {
	ReadAgreementRecord(ctx context.Context, reference string) (*AggregateRecord, error)
	ReadOperatorGraph(ctx context.Context, target PublicIdentity) (*OperatorGraph, error)
	ReadAssetInfo(ctx context.Context, assetID string) (*AssetInfo, error)
	ReadMetadata(ctx context.Context, target PublicIdentity) (MetadataBucket, error)
}

// KeyProvider derives identities from seed material. Used exactly once,
// at organization construction, to compute the deterministic target
// identity. The derivation scheme is opaque to the engine.
type KeyProvider interface {
	DeriveIdentity(seed, path string) (PublicIdentity, error)
}

// Signer is the signing capability passed through the execution context.
// The engine type-tags it and hands it to the encoder untouched.
type Signer interface {
	Sign(payload []byte) ([]byte, error)
	Identity() PublicIdentity
}

// Encoder serializes a frozen atomic unit into the ledger's native
// payload format and a transport URI. The engine's only contract with
// an encoder: operation order is preserved exactly, and the unit's
// descriptor string is embedded verbatim as the payload of the leading
// proof operation.
type Encoder interface {
	Encode(unit *AtomicUnit) ([]byte, error)
	EncodeURI(unit *AtomicUnit) (string, error)
}
