package contract

import (
	"daoforge/internal/ledger"
	"daoforge/internal/taxonomy"
)

// NameVote is the dispatch name of the vote contract.
const NameVote = "vote"

// Vote returns a vote token to the target account with the chosen
// option in the transfer message, optionally annotated with a metadata
// note.
//
// Executable by operators and by the target identity itself.
type Vote struct {
	base
}

// NewVote constructs the contract for one execution attempt.
func NewVote(d Deps) *Vote {
	c := &Vote{base: base{
		deps:     d,
		name:     NameVote,
		required: []string{"voteAsset", "choice"},
		tax:      voteTaxonomy(),
	}}
	c.policy = c.allowance
	c.build = c.operations
	return c
}

func voteTaxonomy() *taxonomy.Taxonomy {
	x := taxonomy.New(NameVote)
	x.Append(ledger.TypeTransfer, true)
	x.Append(ledger.TypeAccountMetadata, false) // note
	return x
}

func (c *Vote) allowance() AllowanceResult {
	if c.deps.State.Agreement == nil {
		return refuse("no confirmed agreement for %s", c.deps.Identifier)
	}
	actor := c.deps.Context.Actor
	if actor.Equal(c.deps.Target) {
		return allow()
	}
	if !c.deps.State.IsOperator(actor.Address) {
		return refuse("actor %s holds no vote in %s", actor.Address, c.deps.Identifier)
	}
	return allow()
}

func (c *Vote) operations() ([]ledger.Operation, error) {
	actor := c.deps.Context.Actor

	ops := []ledger.Operation{
		{
			Type: ledger.TypeTransfer,
			Payload: ledger.Object{
				"recipient": ledger.String(c.deps.Target.Address),
				"asset":     ledger.String(c.stringArg("voteAsset")),
				"amount":    ledger.Int(1),
				"message":   ledger.String(c.stringArg("choice")),
			},
			Issuer: actor,
		},
	}

	if note := c.stringArg("note"); note != "" {
		ops = append(ops, ledger.Operation{
			Type: ledger.TypeAccountMetadata,
			Payload: ledger.Object{
				"target": ledger.String(actor.Address),
				"key":    ledger.String("vote_note"),
				"value":  ledger.String(note),
			},
			Issuer: actor,
		})
	}

	return ops, nil
}
