// Package org implements the organization orchestrator: the long-lived
// owner of synchronized organization state and the dispatcher for
// named-contract execution.
//
// SYNCHRONIZATION MODEL:
//
// The orchestrator's synchronized fields live in one immutable snapshot
// struct that Synchronize replaces wholesale on success. Contracts
// receive copies of the snapshot and never mutate orchestrator state;
// the snapshot is the only long-lived mutable state, and Synchronize is
// its only writer.
//
// Synchronize is two-phased. Agreement verification is a hard stop: a
// record that fails the authenticity check raises INVALID_AGREEMENT and
// nothing else runs. The three refreshes that follow (asset info,
// operator graph, metadata) are each independently best-effort: any one
// failing is swallowed, logged, and leaves that field at its previous
// value. This is the only place the engine intentionally suppresses an
// error.
//
// Execute always completes a full Synchronize before authorization is
// evaluated, so authorization decisions see the freshest obtainable
// state. ExecuteOffline is the documented bypass for callers who
// already hold fresh state.
package org
