package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"daoforge/internal/ledger"
)

// RunWithGolden executes a scenario and compares the wrapped units
// against a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files hold the canonical JSON of every wrapped unit, so any
// drift in operation content, ordering, or serialization fails the
// comparison byte-for-byte.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	snapshot, err := ledger.MarshalCanonicalAny(snapshotOf(result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)

	return nil
}

// snapshotOf converts a result to the loosely typed shape the canonical
// encoder accepts. Failed steps contribute nothing; their absence from
// the unit list is itself part of the golden shape.
func snapshotOf(result *Result) map[string]any {
	units := make([]any, 0, len(result.Steps))
	for _, step := range result.Steps {
		if step.Unit == nil {
			continue
		}
		units = append(units, unitMap(step.Unit))
	}
	return map[string]any{
		"scenario": result.Scenario,
		"units":    units,
	}
}

func unitMap(unit *ledger.AtomicUnit) map[string]any {
	ops := make([]any, len(unit.Operations))
	for i, op := range unit.Operations {
		ops[i] = map[string]any{
			"type":    string(op.Type),
			"payload": op.Payload,
			"issuer": map[string]any{
				"public_key": op.Issuer.PublicKey,
				"address":    string(op.Issuer.Address),
			},
		}
	}
	return map[string]any{
		"descriptor":    unit.Descriptor,
		"attempt_token": unit.AttemptToken,
		"operations":    ops,
	}
}
