package contract

import (
	"daoforge/internal/ledger"
	"daoforge/internal/taxonomy"
)

// NameCommitAgreement is the dispatch name of the commit-agreement
// contract.
const NameCommitAgreement = "commit-agreement"

// CommitAgreement finalizes a proposed agreement: it reveals the shared
// secret against the founding lock and settles the two transfers that
// bind the descriptor and the proof digest to the target account.
//
// Executable only when the supplied target matches the organization's
// deterministic target identity and an agreement is confirmed.
type CommitAgreement struct {
	base
}

// NewCommitAgreement constructs the contract for one execution attempt.
func NewCommitAgreement(d Deps) *CommitAgreement {
	c := &CommitAgreement{base: base{
		deps:     d,
		name:     NameCommitAgreement,
		required: []string{"agreementSecret", "target"},
		tax:      commitAgreementTaxonomy(),
	}}
	c.policy = c.allowance
	c.build = c.operations
	return c
}

func commitAgreementTaxonomy() *taxonomy.Taxonomy {
	x := taxonomy.New(NameCommitAgreement)
	x.Append(ledger.TypeSecretProof, true)
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeTransfer, true)
	return x
}

func (c *CommitAgreement) allowance() AllowanceResult {
	if supplied := c.stringArg("target"); supplied != c.deps.Target.PublicKey {
		return refuse("supplied target does not match the organization target")
	}
	if c.deps.State.Agreement == nil {
		return refuse("no confirmed agreement for %s", c.deps.Identifier)
	}
	return allow()
}

func (c *CommitAgreement) operations() ([]ledger.Operation, error) {
	actor := c.deps.Context.Actor
	secret := c.stringArg("agreementSecret")

	proof, err := ledger.ProofDigest(c.deps.Identifier, c.deps.Target, 2)
	if err != nil {
		return nil, err
	}

	return []ledger.Operation{
		{
			Type: ledger.TypeSecretProof,
			Payload: ledger.Object{
				"secret":    ledger.String(secretHash(secret)),
				"proof":     ledger.String(secret),
				"recipient": ledger.String(c.deps.Target.Address),
			},
			Issuer: actor,
		},
		{
			Type: ledger.TypeTransfer,
			Payload: ledger.Object{
				"recipient": ledger.String(c.deps.Target.Address),
				"amount":    ledger.Int(0),
				"message":   ledger.String(c.Descriptor()),
			},
			Issuer: actor,
		},
		{
			Type: ledger.TypeTransfer,
			Payload: ledger.Object{
				"recipient": ledger.String(c.deps.Target.Address),
				"amount":    ledger.Int(0),
				"message":   ledger.String(proof),
			},
			Issuer: c.deps.Target,
		},
	}, nil
}
