// Package harness runs declarative YAML scenarios against the contract
// engine: an organization is assembled with deterministic fakes, steps
// execute contracts in order, and outcomes are checked against the
// scenario's expectations and the contracts' own taxonomies.
package harness

import (
	"context"
	"fmt"

	"daoforge/internal/contract"
	"daoforge/internal/ledger"
	"daoforge/internal/org"
	"daoforge/internal/taxonomy"
	"daoforge/internal/testutil"
)

// agreementReference is the fixed ledger reference scenarios use for a
// confirmed agreement record.
const agreementReference = "AGREEMENT-REF"

// Run executes a scenario and checks every step's expectation.
// Deterministic by construction: attempt tokens are fixed per step, the
// ledger reader is an in-memory fake, and the target identity comes
// straight from the scenario.
func Run(s *Scenario) (*Result, error) {
	o, err := assemble(s)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	result := &Result{Scenario: s.Name}

	for i, step := range s.Steps {
		actor, err := resolveActor(s, step.Actor)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}

		unit, execErr := o.Execute(ctx, actor, step.Invoke, argsOf(step))
		result.Steps = append(result.Steps, StepResult{
			Invoke: step.Invoke,
			Unit:   unit,
			Err:    execErr,
		})

		if err := checkStep(i, step, unit, execErr); err != nil {
			return result, err
		}
	}

	return result, nil
}

func assemble(s *Scenario) (*org.Organization, error) {
	target := s.Target.Identity()

	reader := &testutil.FakeReader{
		Metadata: ledger.MetadataBucket{},
	}
	for k, v := range s.Metadata {
		reader.Metadata[k] = v
	}

	operators := make([]ledger.Address, len(s.Operators))
	for i, addr := range s.Operators {
		operators[i] = ledger.Address(addr)
	}
	reader.Graph = &ledger.OperatorGraph{
		Target:        target.Address,
		Cosignatories: operators,
		MinApproval:   len(operators),
	}

	assetID := ""
	if s.Asset != nil {
		assetID = s.Asset.ID
		reader.Asset = &ledger.AssetInfo{
			ID:           s.Asset.ID,
			Supply:       s.Asset.Supply,
			Divisibility: s.Asset.Divisibility,
			Owner:        target.Address,
		}
	}

	agreementRef := ""
	if s.Agreement == "confirmed" {
		record, err := testutil.ValidAgreementRecord(agreementReference, s.Organization, s.Revision, target)
		if err != nil {
			return nil, fmt.Errorf("seed agreement record: %w", err)
		}
		reader.Agreements = map[string]*ledger.AggregateRecord{agreementReference: record}
		agreementRef = agreementReference
	}

	tokens := make([]string, len(s.Steps))
	for i := range tokens {
		tokens[i] = fmt.Sprintf("attempt-%d", i+1)
	}

	return org.New(org.Config{
		Identifier:         s.Organization,
		Revision:           s.Revision,
		Keys:               &testutil.StaticKeys{Identity: target},
		AgreementReference: agreementRef,
		AssetID:            assetID,
		Reader:             reader,
		Tokens:             org.NewFixedGenerator(tokens...),
	})
}

func resolveActor(s *Scenario, name string) (ledger.PublicIdentity, error) {
	if name == "target" {
		return s.Target.Identity(), nil
	}
	spec, ok := s.Actors[name]
	if !ok {
		return ledger.PublicIdentity{}, fmt.Errorf("unknown actor %q", name)
	}
	return spec.Identity(), nil
}

func argsOf(step Step) []contract.Arg {
	args := make([]contract.Arg, 0, len(step.Args))
	for name, value := range step.Args {
		args = append(args, contract.Arg{Name: name, Value: value})
	}
	return args
}

// checkStep verifies a step result against its expectation. Wrapped
// units are additionally validated against the executed contract's own
// taxonomy regardless of what the expectation says.
func checkStep(index int, step Step, unit *ledger.AtomicUnit, execErr error) error {
	expect := step.Expect
	if expect == nil {
		expect = &Expect{Outcome: OutcomeWrapped}
	}

	switch expect.Outcome {
	case OutcomeFailed:
		if execErr == nil {
			return fmt.Errorf("steps[%d] %s: expected failure, got wrapped unit %s",
				index, step.Invoke, unit.Descriptor)
		}
		if expect.ErrorCode != "" {
			if code := contract.CodeOf(execErr); string(code) != expect.ErrorCode {
				return fmt.Errorf("steps[%d] %s: expected error code %s, got %s (%v)",
					index, step.Invoke, expect.ErrorCode, code, execErr)
			}
		}
		return nil

	case OutcomeWrapped:
		if execErr != nil {
			return fmt.Errorf("steps[%d] %s: expected wrapped unit, got error: %w",
				index, step.Invoke, execErr)
		}

		x, err := taxonomyFor(step.Invoke)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", index, err)
		}
		if !x.Validate(unit.Types()) {
			return fmt.Errorf("steps[%d] %s: wrapped unit violates its own taxonomy: %v",
				index, step.Invoke, unit.Types())
		}

		if len(expect.Sequence) > 0 {
			got := unit.Types()
			if len(got) != len(expect.Sequence) {
				return fmt.Errorf("steps[%d] %s: expected %d operations, got %d",
					index, step.Invoke, len(expect.Sequence), len(got))
			}
			for j, want := range expect.Sequence {
				if string(got[j]) != want {
					return fmt.Errorf("steps[%d] %s: operation %d is %s, want %s",
						index, step.Invoke, j, got[j], want)
				}
			}
		}

		if expect.Descriptor != "" && unit.Descriptor != expect.Descriptor {
			return fmt.Errorf("steps[%d] %s: descriptor %q, want %q",
				index, step.Invoke, unit.Descriptor, expect.Descriptor)
		}
		return nil
	}

	return fmt.Errorf("steps[%d]: unknown expected outcome %q", index, expect.Outcome)
}

// taxonomyFor returns the static taxonomy of the named contract.
func taxonomyFor(name string) (*taxonomy.Taxonomy, error) {
	var d contract.Deps
	switch name {
	case org.DispatchCreateAgreement:
		return contract.NewCreateAgreement(d).Taxonomy(), nil
	case org.DispatchCommitAgreement:
		return contract.NewCommitAgreement(d).Taxonomy(), nil
	case org.DispatchCreateDAO:
		return contract.NewCreateDAO(d).Taxonomy(), nil
	case org.DispatchCreateVote:
		return contract.NewCreateVote(d).Taxonomy(), nil
	case org.DispatchVote:
		return contract.NewVote(d).Taxonomy(), nil
	default:
		return nil, fmt.Errorf("no taxonomy for contract %q", name)
	}
}
