package contract

import (
	"daoforge/internal/ledger"
	"daoforge/internal/taxonomy"
)

// NameCreateDAO is the dispatch name of the create-dao contract.
const NameCreateDAO = "create-dao"

// CreateDAO converts the target account into the organization's
// multi-signature account: a descriptor proof, the cosignatory
// modification installing the operator set, an optional description
// metadata entry, and one invite bundle (transfer + role metadata) per
// operator.
//
// Operators only.
type CreateDAO struct {
	base
}

// NewCreateDAO constructs the contract for one execution attempt.
func NewCreateDAO(d Deps) *CreateDAO {
	c := &CreateDAO{base: base{
		deps:     d,
		name:     NameCreateDAO,
		required: []string{"daoName"},
		tax:      createDAOTaxonomy(),
	}}
	c.policy = c.allowance
	c.build = c.operations
	return c
}

func createDAOTaxonomy() *taxonomy.Taxonomy {
	x := taxonomy.New(NameCreateDAO)
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeMultisigModification, true)
	x.Append(ledger.TypeAccountMetadata, false) // description
	pos := x.Append(ledger.TypeTransfer, true)  // per-operator invite
	x.Append(ledger.TypeAccountMetadata, true)  // per-operator role

	// One invite bundle per operator; the walk has no view of the
	// operator count, so the floor is a single bundle.
	if err := x.RuleAt(pos, taxonomy.Rule{
		BundleWith:     []int{0, 1},
		Repeatable:     true,
		MinOccurrences: 1,
	}); err != nil {
		panic(err) // static taxonomy, construction cannot fail
	}
	return x
}

func (c *CreateDAO) allowance() AllowanceResult {
	if c.deps.State.Agreement == nil {
		return refuse("no confirmed agreement for %s", c.deps.Identifier)
	}
	if !c.deps.State.IsOperator(c.deps.Context.Actor.Address) {
		return refuse("actor %s is not an operator of %s", c.deps.Context.Actor.Address, c.deps.Identifier)
	}
	return allow()
}

func (c *CreateDAO) operations() ([]ledger.Operation, error) {
	actor := c.deps.Context.Actor
	operators := c.deps.State.Operators

	additions := make(ledger.Array, len(operators))
	for i, op := range operators {
		additions[i] = ledger.String(op)
	}

	ops := []ledger.Operation{
		c.proofOperation(actor),
		{
			Type: ledger.TypeMultisigModification,
			Payload: ledger.Object{
				"additions":    additions,
				"min_approval": ledger.Int(c.intArg("minApproval", int64(len(operators)))),
				"min_removal":  ledger.Int(c.intArg("minRemoval", int64(len(operators)))),
			},
			Issuer: c.deps.Target,
		},
	}

	if desc := c.stringArg("daoDescription"); desc != "" {
		ops = append(ops, ledger.Operation{
			Type: ledger.TypeAccountMetadata,
			Payload: ledger.Object{
				"target": ledger.String(c.deps.Target.Address),
				"key":    ledger.String("dao_description"),
				"value":  ledger.String(desc),
			},
			Issuer: c.deps.Target,
		})
	}

	name := c.stringArg("daoName")
	for _, operator := range operators {
		ops = append(ops,
			ledger.Operation{
				Type: ledger.TypeTransfer,
				Payload: ledger.Object{
					"recipient": ledger.String(operator),
					"amount":    ledger.Int(0),
					"message":   ledger.String("operator of " + name),
				},
				Issuer: c.deps.Target,
			},
			ledger.Operation{
				Type: ledger.TypeAccountMetadata,
				Payload: ledger.Object{
					"target": ledger.String(operator),
					"key":    ledger.String("dao_role"),
					"value":  ledger.String("operator"),
				},
				Issuer: c.deps.Target,
			},
		)
	}

	return ops, nil
}
