// Package contract implements the executable digital-contract
// abstraction: a named, versioned procedure that authorizes an actor
// and emits an ordered operation list for atomic execution.
//
// A contract instance is created per execution attempt, owned
// exclusively by the call that created it, and discarded after
// producing its operation list or failing. Authorization checks return
// a value result (AllowanceResult); hard failures (a missing required
// argument, an empty operation list, an unknown contract name) are
// errors with structured codes. The two never mix: a negative
// authorization is escalated to an error only by Execute, never by
// CanExecute itself.
//
// Every concrete contract owns a taxonomy describing the exact
// operation sequence its Execute is expected to produce. The output of
// a successful Execute always validates against that taxonomy; tests
// cross-check the two surfaces against each other.
package contract
