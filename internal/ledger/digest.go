package ledger

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for digest computation. The version suffix leaves room
// for algorithm migration without ambiguity.
const (
	domainProof     = "daoforge/proof/v1"
	domainOperation = "daoforge/operation/v1"
)

// hashWithDomain computes SHA-256 over domain + 0x00 + data.
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProofDigest computes the expected proof payload digest for an
// organization. Agreement verification compares each confirmed
// sub-operation's message against digests derived this way; a record
// that was not announced for this identifier/target pair cannot
// reproduce them.
func ProofDigest(identifier string, target PublicIdentity, index int) (string, error) {
	obj := Object{
		"identifier": String(identifier),
		"target":     String(target.PublicKey),
		"index":      Int(int64(index)),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", err
	}
	return hashWithDomain(domainProof, canonical), nil
}

// OperationDigest computes a content digest for an operation payload.
// Used by the execution journal to detect duplicate announcements.
func OperationDigest(op Operation) (string, error) {
	obj := Object{
		"type":    String(op.Type),
		"payload": op.Payload,
		"issuer":  String(op.Issuer.PublicKey),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", err
	}
	return hashWithDomain(domainOperation, canonical), nil
}
