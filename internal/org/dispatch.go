package org

import "daoforge/internal/contract"

// Kind is the closed set of dispatchable contracts. An unknown name
// fails in ParseKind before any execution context is built.
type Kind int

const (
	KindCreateAgreement Kind = iota
	KindCommitAgreement
	KindCreateDAO
	KindCreateVote
	KindVote
)

// Dispatch names fixed by the external interface.
const (
	DispatchCreateAgreement = "CreateAgreement"
	DispatchCommitAgreement = "CommitAgreement"
	DispatchCreateDAO       = "CreateDAO"
	DispatchCreateVote      = "CreateVote"
	DispatchVote            = "Vote"
)

var kindsByName = map[string]Kind{
	DispatchCreateAgreement: KindCreateAgreement,
	DispatchCommitAgreement: KindCommitAgreement,
	DispatchCreateDAO:       KindCreateDAO,
	DispatchCreateVote:      KindCreateVote,
	DispatchVote:            KindVote,
}

// ParseKind resolves a dispatch name. Unknown names raise
// INVALID_CONTRACT immediately, before any authorization logic runs.
func ParseKind(name string) (Kind, error) {
	kind, ok := kindsByName[name]
	if !ok {
		return 0, contract.NewInvalidContract(name)
	}
	return kind, nil
}

// String returns the dispatch name.
func (k Kind) String() string {
	switch k {
	case KindCreateAgreement:
		return DispatchCreateAgreement
	case KindCommitAgreement:
		return DispatchCommitAgreement
	case KindCreateDAO:
		return DispatchCreateDAO
	case KindCreateVote:
		return DispatchCreateVote
	case KindVote:
		return DispatchVote
	default:
		return "Unknown"
	}
}

// build constructs the contract instance for this kind. The switch is
// exhaustive over the closed set; ParseKind guards the input space.
func (k Kind) build(d contract.Deps) contract.Contract {
	switch k {
	case KindCreateAgreement:
		return contract.NewCreateAgreement(d)
	case KindCommitAgreement:
		return contract.NewCommitAgreement(d)
	case KindCreateDAO:
		return contract.NewCreateDAO(d)
	case KindCreateVote:
		return contract.NewCreateVote(d)
	case KindVote:
		return contract.NewVote(d)
	default:
		panic("unreachable: ParseKind admits only known kinds")
	}
}
