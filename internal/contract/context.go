package contract

import (
	"time"

	"daoforge/internal/ledger"
)

// DefaultDeadline bounds how long a wrapped unit stays announceable.
const DefaultDeadline = 2 * time.Hour

// Params are the transaction-shaping knobs for one execution attempt.
type Params struct {
	Epoch    int64         // network epoch adjustment, seconds
	Deadline time.Duration // unit announce deadline
	MaxFee   int64         // 0 means network default
}

// DefaultParams returns the defaulted execution parameters.
func DefaultParams() Params {
	return Params{Deadline: DefaultDeadline}
}

// Arg is one named input value. Names are NOT unique by construction;
// lookup returns the first match, so insertion order defines shadowing.
type Arg struct {
	Name  string
	Value any
}

// ExecutionContext carries actor identity, named input values, and
// transaction-shaping parameters for one execution attempt. Treated as
// immutable once handed to a contract.
//
// Reader and Signer are pass-through capabilities: the engine
// type-tags them and never inspects their contents.
type ExecutionContext struct {
	Revision int
	Actor    ledger.PublicIdentity
	Reader   ledger.Reader
	Signer   ledger.Signer
	Params   Params
	Args     []Arg
}

// Option configures an ExecutionContext at construction.
type Option func(*ExecutionContext)

// WithReader attaches the ledger-read capability.
func WithReader(r ledger.Reader) Option {
	return func(ec *ExecutionContext) { ec.Reader = r }
}

// WithSigner attaches the signing capability.
func WithSigner(s ledger.Signer) Option {
	return func(ec *ExecutionContext) { ec.Signer = s }
}

// WithParams overrides the defaulted execution parameters.
func WithParams(p Params) Option {
	return func(ec *ExecutionContext) { ec.Params = p }
}

// WithArg appends one named input value.
func WithArg(name string, value any) Option {
	return func(ec *ExecutionContext) {
		ec.Args = append(ec.Args, Arg{Name: name, Value: value})
	}
}

// WithArgs appends input values in order.
func WithArgs(args ...Arg) Option {
	return func(ec *ExecutionContext) {
		ec.Args = append(ec.Args, args...)
	}
}

// NewExecutionContext creates a context for one execution attempt with
// defaulted parameters.
func NewExecutionContext(revision int, actor ledger.PublicIdentity, opts ...Option) *ExecutionContext {
	ec := &ExecutionContext{
		Revision: revision,
		Actor:    actor,
		Params:   DefaultParams(),
	}
	for _, opt := range opts {
		opt(ec)
	}
	return ec
}

// Lookup returns the first value recorded under name. Later entries
// never shadow earlier ones.
func (ec *ExecutionContext) Lookup(name string) (any, bool) {
	for _, arg := range ec.Args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}

// LookupOr returns the first value recorded under name, or def when the
// name is absent.
func (ec *ExecutionContext) LookupOr(name string, def any) any {
	if v, ok := ec.Lookup(name); ok {
		return v
	}
	return def
}

// Has reports whether any value is recorded under name.
func (ec *ExecutionContext) Has(name string) bool {
	_, ok := ec.Lookup(name)
	return ok
}
