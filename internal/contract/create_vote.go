package contract

import (
	"daoforge/internal/ledger"
	"daoforge/internal/taxonomy"
)

// NameCreateVote is the dispatch name of the create-vote contract.
const NameCreateVote = "create-vote"

// CreateVote opens a ballot: a descriptor proof, the definition and
// supply of a single-use vote asset, and one distribution transfer per
// operator placing exactly one vote token in each operator's account.
//
// Operators only.
type CreateVote struct {
	base
}

// NewCreateVote constructs the contract for one execution attempt.
func NewCreateVote(d Deps) *CreateVote {
	c := &CreateVote{base: base{
		deps:     d,
		name:     NameCreateVote,
		required: []string{"voteTopic", "choices"},
		tax:      createVoteTaxonomy(),
	}}
	c.policy = c.allowance
	c.build = c.operations
	return c
}

func createVoteTaxonomy() *taxonomy.Taxonomy {
	x := taxonomy.New(NameCreateVote)
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeMosaicDefinition, true)
	x.Append(ledger.TypeMosaicSupply, true)
	pos := x.Append(ledger.TypeTransfer, true) // per-operator distribution

	if err := x.RuleAt(pos, taxonomy.Rule{
		BundleWith:     []int{0},
		Repeatable:     true,
		MinOccurrences: 1,
	}); err != nil {
		panic(err) // static taxonomy, construction cannot fail
	}
	return x
}

func (c *CreateVote) allowance() AllowanceResult {
	if c.deps.State.Agreement == nil {
		return refuse("no confirmed agreement for %s", c.deps.Identifier)
	}
	if !c.deps.State.IsOperator(c.deps.Context.Actor.Address) {
		return refuse("actor %s is not an operator of %s", c.deps.Context.Actor.Address, c.deps.Identifier)
	}
	return allow()
}

func (c *CreateVote) operations() ([]ledger.Operation, error) {
	operators := c.deps.State.Operators
	topic := c.stringArg("voteTopic")

	choices := make(ledger.Array, 0)
	for _, choice := range c.stringListArg("choices") {
		choices = append(choices, ledger.String(choice))
	}

	ops := []ledger.Operation{
		c.proofOperation(c.deps.Context.Actor),
		{
			Type: ledger.TypeMosaicDefinition,
			Payload: ledger.Object{
				"topic":        ledger.String(topic),
				"choices":      choices,
				"divisibility": ledger.Int(0),
				"transferable": ledger.Bool(true),
			},
			Issuer: c.deps.Target,
		},
		{
			Type: ledger.TypeMosaicSupply,
			Payload: ledger.Object{
				"delta":  ledger.Int(int64(len(operators))),
				"action": ledger.String("increase"),
			},
			Issuer: c.deps.Target,
		},
	}

	for _, operator := range operators {
		ops = append(ops, ledger.Operation{
			Type: ledger.TypeTransfer,
			Payload: ledger.Object{
				"recipient": ledger.String(operator),
				"amount":    ledger.Int(1),
				"message":   ledger.String("ballot: " + topic),
			},
			Issuer: c.deps.Target,
		})
	}

	return ops, nil
}
