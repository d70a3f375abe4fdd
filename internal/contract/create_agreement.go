package contract

import (
	"crypto/sha256"
	"encoding/hex"

	"daoforge/internal/ledger"
	"daoforge/internal/taxonomy"
)

// NameCreateAgreement is the dispatch name of the create-agreement
// contract.
const NameCreateAgreement = "create-agreement"

// CreateAgreement proposes the organization's founding agreement: a
// descriptor proof, a secret lock binding the commit step to a shared
// secret, and an optional endowment transfer to the target account.
//
// Only executable while no agreement is confirmed; once Synchronize has
// verified an agreement record, the contract refuses every actor.
type CreateAgreement struct {
	base
}

// NewCreateAgreement constructs the contract for one execution attempt.
func NewCreateAgreement(d Deps) *CreateAgreement {
	c := &CreateAgreement{base: base{
		deps:     d,
		name:     NameCreateAgreement,
		required: []string{"agreementSecret", "operators"},
		tax:      createAgreementTaxonomy(),
	}}
	c.policy = c.allowance
	c.build = c.operations
	return c
}

func createAgreementTaxonomy() *taxonomy.Taxonomy {
	x := taxonomy.New(NameCreateAgreement)
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeSecretLock, true)
	x.Append(ledger.TypeTransfer, false) // endowment
	return x
}

func (c *CreateAgreement) allowance() AllowanceResult {
	if c.deps.State.Agreement != nil {
		return refuse("an agreement is already confirmed for %s", c.deps.Identifier)
	}
	return allow()
}

func (c *CreateAgreement) operations() ([]ledger.Operation, error) {
	actor := c.deps.Context.Actor

	ops := []ledger.Operation{
		c.proofOperation(actor),
		{
			Type: ledger.TypeSecretLock,
			Payload: ledger.Object{
				"secret":    ledger.String(secretHash(c.stringArg("agreementSecret"))),
				"recipient": ledger.String(c.deps.Target.Address),
				"duration":  ledger.Int(c.intArg("lockDuration", 5760)),
			},
			Issuer: actor,
		},
	}

	if endowment := c.intArg("endowment", 0); endowment > 0 {
		ops = append(ops, ledger.Operation{
			Type: ledger.TypeTransfer,
			Payload: ledger.Object{
				"recipient": ledger.String(c.deps.Target.Address),
				"amount":    ledger.Int(endowment),
			},
			Issuer: actor,
		})
	}

	return ops, nil
}

// secretHash is the lock/proof hash of the shared agreement secret.
func secretHash(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
