// Package ledger defines the primitives the contract engine sequences and
// validates: typed operations, identities, atomic units, and the capability
// interfaces through which the engine talks to an actual ledger.
//
// The package owns no wire format. Concrete encodings of operations, key
// derivation from seed phrases, and network access all live behind the
// Reader, KeyProvider, and Encoder interfaces; the engine only depends on
// the small surface declared here.
//
// Payload values are constrained to strings, integers, booleans, arrays,
// and objects. Floats and nulls are forbidden: payloads feed canonical
// JSON digests, and both break determinism.
package ledger
