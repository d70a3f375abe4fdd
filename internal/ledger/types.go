package ledger

// OperationType identifies the kind of ledger effect an operation carries.
// The engine treats operations as opaque typed payloads; the type is the
// only field the sequence validator inspects.
type OperationType string

const (
	TypeTransfer             OperationType = "transfer"
	TypeSecretLock           OperationType = "secret_lock"
	TypeSecretProof          OperationType = "secret_proof"
	TypeMultisigModification OperationType = "multisig_modification"
	TypeAccountMetadata      OperationType = "account_metadata"
	TypeMosaicDefinition     OperationType = "mosaic_definition"
	TypeMosaicSupply         OperationType = "mosaic_supply"
	TypeAddressAlias         OperationType = "address_alias"
)

// KnownTypes lists every operation type the engine understands.
// The taxonomy compiler rejects entries whose type is not in this set.
var KnownTypes = map[OperationType]bool{
	TypeTransfer:             true,
	TypeSecretLock:           true,
	TypeSecretProof:          true,
	TypeMultisigModification: true,
	TypeMosaicDefinition:     true,
	TypeMosaicSupply:         true,
	TypeAccountMetadata:      true,
	TypeAddressAlias:         true,
}

// Address is a ledger account address in its string form.
type Address string

// PublicIdentity is the public half of a ledger account: the key the
// account signs with and the address derived from it.
type PublicIdentity struct {
	PublicKey string  `json:"public_key"`
	Address   Address `json:"address"`
}

// Equal reports whether two identities refer to the same account.
// Comparison is by public key; the address is derived from it.
func (p PublicIdentity) Equal(other PublicIdentity) bool {
	return p.PublicKey == other.PublicKey
}

// Operation is one typed unit of ledger-bound effect. The issuer is the
// identity the operation must be signed by once the surrounding unit is
// announced.
type Operation struct {
	Type    OperationType  `json:"type"`
	Payload Object         `json:"payload"`
	Issuer  PublicIdentity `json:"issuer"`
}

// AtomicUnit is a frozen, ordered bundle of operations that succeed or
// fail together. Descriptor is the contract's unique descriptor string,
// embedded verbatim as the payload of the leading proof operation.
// AttemptToken correlates the unit with the execution attempt that
// produced it.
type AtomicUnit struct {
	Descriptor   string      `json:"descriptor"`
	AttemptToken string      `json:"attempt_token"`
	Operations   []Operation `json:"operations"`
}

// Types returns the ordered operation-type sequence of the unit.
// This is the shape the sequence validator checks.
func (u *AtomicUnit) Types() []OperationType {
	types := make([]OperationType, len(u.Operations))
	for i, op := range u.Operations {
		types[i] = op.Type
	}
	return types
}

// AggregateRecord is a previously confirmed atomic unit read back from
// the ledger, keyed by the reference it was announced under.
type AggregateRecord struct {
	Reference  string      `json:"reference"`
	Operations []Operation `json:"operations"`
}

// AssetInfo describes the organization's governance asset.
type AssetInfo struct {
	ID           string  `json:"id"`
	Supply       int64   `json:"supply"`
	Divisibility int64   `json:"divisibility"`
	Owner        Address `json:"owner"`
	Mutable      bool    `json:"mutable"`
}

// MetadataBucket is the key/value metadata attached to the target account.
type MetadataBucket map[string]string

// OperatorGraph is the multi-signature cosignatory view of the target
// account. Cosignatories of the target are the organization's operators.
type OperatorGraph struct {
	Target        Address   `json:"target"`
	Cosignatories []Address `json:"cosignatories"`
	MinApproval   int       `json:"min_approval"`
	MinRemoval    int       `json:"min_removal"`
}
