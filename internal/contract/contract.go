package contract

import (
	"fmt"

	"daoforge/internal/ledger"
	"daoforge/internal/taxonomy"
)

// Standard is the descriptor standard tag shared by every contract.
const Standard = "dao"

// AllowanceResult is the value outcome of an authorization check.
// A negative result is not an error; only Execute escalates it.
type AllowanceResult struct {
	Allowed bool
	Message string
}

// allow and refuse are the two allowance constructors.
func allow() AllowanceResult {
	return AllowanceResult{Allowed: true}
}

func refuse(format string, args ...any) AllowanceResult {
	return AllowanceResult{Allowed: false, Message: fmt.Sprintf(format, args...)}
}

// State is the organization state a contract executes against. It is a
// copy of the orchestrator's synchronized snapshot: contracts read it,
// never write it, and never see later synchronizations.
type State struct {
	// Agreement is the confirmed agreement record. Until it is set,
	// only create-agreement may report a positive authorization.
	Agreement *ledger.AggregateRecord

	// Operators are the governance addresses synchronized from the
	// target account's cosignatory graph.
	Operators []ledger.Address

	// Metadata is the synchronized target-account metadata, if any.
	Metadata ledger.MetadataBucket

	// Asset is the synchronized governance asset, if any.
	Asset *ledger.AssetInfo
}

// IsOperator reports whether the address is in the synchronized
// operator set.
func (s State) IsOperator(addr ledger.Address) bool {
	for _, op := range s.Operators {
		if op == addr {
			return true
		}
	}
	return false
}

// Deps is everything a contract instance needs at construction: the
// execution context, a copy of the synchronized state, the
// organization's deterministic target identity and identifier, and the
// attempt token stamped into the wrapped unit.
type Deps struct {
	Context      *ExecutionContext
	State        State
	Target       ledger.PublicIdentity
	Identifier   string
	AttemptToken string
}

// Contract is one executable digital contract. Instances live for a
// single execution attempt.
type Contract interface {
	// Name is the contract's kebab-case name.
	Name() string

	// Descriptor is the contract's unique descriptor string,
	// "dao(v<revision>):<kebab-name>:<organization-identifier>",
	// embedded verbatim in the wrapped unit's proof operation.
	Descriptor() string

	// RequiredArgs lists the input names that must be present before
	// authorization or build proceeds.
	RequiredArgs() []string

	// Taxonomy declares the exact operation sequence Execute is
	// expected to produce.
	Taxonomy() *taxonomy.Taxonomy

	// CanExecute asserts the required arguments (hard failure when one
	// is missing) and then applies the contract's authorization
	// policy, returned as a value.
	CanExecute() (AllowanceResult, error)

	// Execute re-runs the authorization assertion, fails hard on a
	// negative result, builds the deferred operation list, and freezes
	// it into an atomic unit. Fails hard when the list is empty.
	Execute() (*ledger.AtomicUnit, error)
}

// base carries the shared contract mechanics. Concrete contracts embed
// it and wire their name, required arguments, taxonomy, authorization
// policy, and operation builder at construction.
type base struct {
	deps     Deps
	name     string
	required []string
	tax      *taxonomy.Taxonomy
	policy   func() AllowanceResult
	build    func() ([]ledger.Operation, error)
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Descriptor() string {
	return fmt.Sprintf("%s(v%d):%s:%s", Standard, b.deps.Context.Revision, b.name, b.deps.Identifier)
}

func (b *base) RequiredArgs() []string {
	out := make([]string, len(b.required))
	copy(out, b.required)
	return out
}

func (b *base) Taxonomy() *taxonomy.Taxonomy {
	return b.tax
}

// assertArgs fails hard on the first required argument absent from the
// execution context. Runs before any authorization or build logic.
func (b *base) assertArgs() error {
	for _, name := range b.required {
		if !b.deps.Context.Has(name) {
			return NewMissingArgument(b.name, name)
		}
	}
	return nil
}

func (b *base) CanExecute() (AllowanceResult, error) {
	if err := b.assertArgs(); err != nil {
		return AllowanceResult{}, err
	}
	return b.policy(), nil
}

func (b *base) Execute() (*ledger.AtomicUnit, error) {
	res, err := b.CanExecute()
	if err != nil {
		return nil, err
	}
	if !res.Allowed {
		return nil, NewForbidden(b.name, res.Message)
	}

	ops, err := b.build()
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return nil, NewEmptyContract(b.name)
	}

	return &ledger.AtomicUnit{
		Descriptor:   b.Descriptor(),
		AttemptToken: b.deps.AttemptToken,
		Operations:   ops,
	}, nil
}

// proofOperation is the designated descriptor-carrying transfer every
// contract leads with (commit-agreement leads with a secret proof
// instead and carries the descriptor on its first transfer).
func (b *base) proofOperation(issuer ledger.PublicIdentity) ledger.Operation {
	return ledger.Operation{
		Type: ledger.TypeTransfer,
		Payload: ledger.Object{
			"recipient": ledger.String(b.deps.Target.Address),
			"amount":    ledger.Int(0),
			"message":   ledger.String(b.Descriptor()),
		},
		Issuer: issuer,
	}
}

// stringArg returns the named argument rendered as a string. The
// required-argument assertion has already run when builders call this,
// so absence yields the zero value.
func (b *base) stringArg(name string) string {
	v, ok := b.deps.Context.Lookup(name)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// intArg returns the named argument as an int64, or def when absent or
// not integral.
func (b *base) intArg(name string, def int64) int64 {
	v, ok := b.deps.Context.Lookup(name)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case ledger.Int:
		return int64(n)
	default:
		return def
	}
}

// addressListArg returns the named argument as a list of addresses.
// Accepts []ledger.Address, []string, and []any of strings.
func (b *base) addressListArg(name string) []ledger.Address {
	v, ok := b.deps.Context.Lookup(name)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []ledger.Address:
		return list
	case []string:
		out := make([]ledger.Address, len(list))
		for i, s := range list {
			out[i] = ledger.Address(s)
		}
		return out
	case []any:
		out := make([]ledger.Address, 0, len(list))
		for _, elem := range list {
			if s, ok := elem.(string); ok {
				out = append(out, ledger.Address(s))
			}
		}
		return out
	default:
		return nil
	}
}

// stringListArg returns the named argument as a list of strings.
func (b *base) stringListArg(name string) []string {
	v, ok := b.deps.Context.Lookup(name)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, elem := range list {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
