// Package harness provides scenario-based conformance testing for the
// contract engine.
//
// The harness loads an organization fixture and a list of contract
// invocations from a YAML file, executes them against a fake ledger
// reader, and checks each step's outcome.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	organization: garden-collective
//	revision: 1
//	agreement: confirmed      # or "none" (default)
//	operators: [ALICE-ADDRESS]
//	metadata: { key: value }
//	asset: { id: "0x5AD4", supply: 2 }
//	target: { public_key: K, address: A }
//	actors:
//	  alice: { public_key: K, address: A }
//	steps:
//	  - actor: alice
//	    invoke: CreateVote
//	    args: { voteTopic: "...", choices: [a, b] }
//	    expect:
//	      outcome: wrapped    # or "failed"
//	      error_code: OPERATION_FORBIDDEN
//	      sequence: [transfer, mosaic_definition]
//	      descriptor: "dao(v1):create-vote:garden-collective"
//
// The reserved actor name "target" refers to the organization's derived
// target identity and cannot be redefined in the actors map.
//
// # Checks
//
// Every wrapped step is self-validated: the unit's operation-type
// sequence must satisfy the invoked contract's own taxonomy. Explicit
// expectations (outcome, error code, sequence, descriptor) are checked
// on top of that.
//
// # Deterministic Execution
//
// Scenarios run with fixed attempt tokens (attempt-1, attempt-2, ...),
// a static key provider, and a fake reader, so the wrapped units are
// identical across runs and can be compared against golden snapshots
// with RunWithGolden.
package harness
