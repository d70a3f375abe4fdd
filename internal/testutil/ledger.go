// Package testutil provides deterministic ledger fakes shared by tests
// across the engine: a configurable in-memory reader with per-call
// error injection, and a static key provider.
package testutil

import (
	"context"
	"fmt"

	"daoforge/internal/ledger"
)

// FakeReader is an in-memory ledger.Reader. Zero value returns
// not-found/absent for everything; populate fields to configure reads
// and the Err* fields to inject failures.
type FakeReader struct {
	Agreements map[string]*ledger.AggregateRecord
	Graph      *ledger.OperatorGraph
	Asset      *ledger.AssetInfo
	Metadata   ledger.MetadataBucket

	ErrAgreement error
	ErrGraph     error
	ErrAsset     error
	ErrMetadata  error

	// Calls counts reads by method name, for asserting call order
	// independence and best-effort behavior.
	Calls map[string]int
}

var _ ledger.Reader = (*FakeReader)(nil)

func (f *FakeReader) record(method string) {
	if f.Calls == nil {
		f.Calls = make(map[string]int)
	}
	f.Calls[method]++
}

func (f *FakeReader) ReadAgreementRecord(_ context.Context, reference string) (*ledger.AggregateRecord, error) {
	f.record("ReadAgreementRecord")
	if f.ErrAgreement != nil {
		return nil, f.ErrAgreement
	}
	return f.Agreements[reference], nil
}

func (f *FakeReader) ReadOperatorGraph(_ context.Context, target ledger.PublicIdentity) (*ledger.OperatorGraph, error) {
	f.record("ReadOperatorGraph")
	if f.ErrGraph != nil {
		return nil, f.ErrGraph
	}
	if f.Graph == nil {
		return nil, fmt.Errorf("no operator graph for %s", target.Address)
	}
	return f.Graph, nil
}

func (f *FakeReader) ReadAssetInfo(_ context.Context, assetID string) (*ledger.AssetInfo, error) {
	f.record("ReadAssetInfo")
	if f.ErrAsset != nil {
		return nil, f.ErrAsset
	}
	if f.Asset == nil {
		return nil, fmt.Errorf("no asset info for %s", assetID)
	}
	return f.Asset, nil
}

func (f *FakeReader) ReadMetadata(_ context.Context, target ledger.PublicIdentity) (ledger.MetadataBucket, error) {
	f.record("ReadMetadata")
	if f.ErrMetadata != nil {
		return nil, f.ErrMetadata
	}
	if f.Metadata == nil {
		return nil, fmt.Errorf("no metadata for %s", target.Address)
	}
	return f.Metadata, nil
}

// StaticKeys is a ledger.KeyProvider returning a fixed identity for
// every derivation. Tests that need distinct identities per path use
// the ByPath map instead.
type StaticKeys struct {
	Identity ledger.PublicIdentity
	ByPath   map[string]ledger.PublicIdentity
	Err      error
}

var _ ledger.KeyProvider = (*StaticKeys)(nil)

func (s *StaticKeys) DeriveIdentity(_, path string) (ledger.PublicIdentity, error) {
	if s.Err != nil {
		return ledger.PublicIdentity{}, s.Err
	}
	if id, ok := s.ByPath[path]; ok {
		return id, nil
	}
	return s.Identity, nil
}
