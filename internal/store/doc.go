// Package store provides the durable SQLite journal: synchronized
// snapshots and executed atomic units, recorded per organization.
//
// The journal is an audit trail, not a source of truth. The ledger
// itself remains authoritative; the store exists so an operator can
// answer "what did this engine produce, and against which state"
// without replaying the ledger.
//
// All JSON stored here is RFC 8785 canonical, so identical state
// always journals to identical bytes.
package store
