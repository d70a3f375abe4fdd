package org

import (
	"context"
	"fmt"

	"daoforge/internal/contract"
	"daoforge/internal/ledger"
)

// Snapshot is the organization's synchronized state. It is the same
// shape contracts execute against; the orchestrator hands contracts a
// copy, never the live value.
type Snapshot = contract.State

// Journal records synchronized snapshots and executed units for audit.
// Implemented by the SQLite store; journaling is best-effort and never
// fails an execution.
type Journal interface {
	RecordSnapshot(ctx context.Context, seq int64, snap Snapshot) error
	RecordExecution(ctx context.Context, seq int64, actor ledger.PublicIdentity, unit *ledger.AtomicUnit) error
}

// Config assembles an Organization. Identifier, Revision, and Keys are
// mandatory; the rest depends on how the organization is used.
type Config struct {
	// Identifier is the organization's stable identifier, embedded in
	// every contract descriptor.
	Identifier string

	// Revision is the protocol revision tag.
	Revision int

	// Seed and DerivationPath feed the key provider exactly once, at
	// construction, to compute the deterministic target identity.
	Seed           string
	DerivationPath string

	// Keys derives the target identity. Opaque to the engine.
	Keys ledger.KeyProvider

	// AgreementReference locates the founding agreement record on the
	// ledger. Empty means nothing to synchronize.
	AgreementReference string

	// AssetID locates the governance asset for best-effort refresh.
	AssetID string

	// Reader and Signer are the pass-through ledger capabilities.
	Reader ledger.Reader
	Signer ledger.Signer

	// Journal, when set, records snapshots and executions.
	Journal Journal

	// Tokens generates attempt tokens. Defaults to UUIDv7.
	Tokens TokenGenerator
}

// Organization owns organization-wide synchronized facts and dispatches
// contract execution by name. Not safe for concurrent use.
type Organization struct {
	identifier   string
	revision     int
	target       ledger.PublicIdentity
	agreementRef string
	assetID      string
	reader       ledger.Reader
	signer       ledger.Signer
	journal      Journal
	tokens       TokenGenerator
	clock        *Clock

	snapshot Snapshot
}

// New derives the deterministic target identity and assembles the
// orchestrator. The derivation runs exactly once; the target never
// changes for the organization's lifetime.
func New(cfg Config) (*Organization, error) {
	if cfg.Identifier == "" {
		return nil, fmt.Errorf("organization identifier is required")
	}
	if cfg.Keys == nil {
		return nil, fmt.Errorf("key provider is required")
	}

	target, err := cfg.Keys.DeriveIdentity(cfg.Seed, cfg.DerivationPath)
	if err != nil {
		return nil, fmt.Errorf("derive target identity: %w", err)
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}

	return &Organization{
		identifier:   cfg.Identifier,
		revision:     cfg.Revision,
		target:       target,
		agreementRef: cfg.AgreementReference,
		assetID:      cfg.AssetID,
		reader:       cfg.Reader,
		signer:       cfg.Signer,
		journal:      cfg.Journal,
		tokens:       tokens,
		clock:        NewClock(),
	}, nil
}

// Identifier returns the organization's stable identifier.
func (o *Organization) Identifier() string {
	return o.identifier
}

// Target returns the deterministic target identity.
func (o *Organization) Target() ledger.PublicIdentity {
	return o.target
}

// Snapshot returns the current synchronized snapshot.
func (o *Organization) Snapshot() Snapshot {
	return o.snapshot
}

// CanExecute builds an execution context for the actor and named
// contract, copies the synchronized snapshot into a fresh contract
// instance, and delegates the authorization decision to it. No
// synchronization happens here.
func (o *Organization) CanExecute(ctx context.Context, actor ledger.PublicIdentity, name string, args []contract.Arg) (contract.AllowanceResult, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return contract.AllowanceResult{}, err
	}
	return o.instantiate(kind, actor, args).CanExecute()
}

// Execute synchronizes, then resolves the named contract and runs it.
// Every failure (invalid contract name, synchronization, missing
// argument, forbidden operation, empty build) propagates to the caller
// unchanged.
func (o *Organization) Execute(ctx context.Context, actor ledger.PublicIdentity, name string, args []contract.Arg) (*ledger.AtomicUnit, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	if _, err := o.Synchronize(ctx); err != nil {
		return nil, err
	}
	return o.run(ctx, kind, actor, args)
}

// ExecuteOffline is Execute without the synchronization step. A
// deliberate, documented bypass for callers who already hold fresh
// state; authorization is evaluated against the snapshot as-is.
func (o *Organization) ExecuteOffline(ctx context.Context, actor ledger.PublicIdentity, name string, args []contract.Arg) (*ledger.AtomicUnit, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return o.run(ctx, kind, actor, args)
}

func (o *Organization) run(ctx context.Context, kind Kind, actor ledger.PublicIdentity, args []contract.Arg) (*ledger.AtomicUnit, error) {
	unit, err := o.instantiate(kind, actor, args).Execute()
	if err != nil {
		return nil, err
	}
	o.journalExecution(ctx, actor, unit)
	return unit, nil
}

// instantiate builds a fresh contract instance from the current
// snapshot. Instances are never reused across attempts.
func (o *Organization) instantiate(kind Kind, actor ledger.PublicIdentity, args []contract.Arg) contract.Contract {
	ec := contract.NewExecutionContext(o.revision, actor,
		contract.WithReader(o.reader),
		contract.WithSigner(o.signer),
		contract.WithArgs(args...),
	)
	deps := contract.Deps{
		Context:      ec,
		State:        o.snapshot,
		Target:       o.target,
		Identifier:   o.identifier,
		AttemptToken: o.tokens.Generate(),
	}
	return kind.build(deps)
}
