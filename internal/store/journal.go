package store

import (
	"context"
	"fmt"

	"daoforge/internal/ledger"
	"daoforge/internal/org"
)

// Journal is a store handle bound to one organization. It implements
// org.Journal; an engine process holding several organizations shares
// one Store and binds one Journal per organization.
type Journal struct {
	store        *Store
	organization string
}

var _ org.Journal = (*Journal)(nil)

// Journal binds the store to an organization identifier.
func (s *Store) Journal(organization string) *Journal {
	return &Journal{store: s, organization: organization}
}

// RecordSnapshot inserts a synchronized snapshot.
// Uses ON CONFLICT DO NOTHING for idempotency: replaying the same
// (organization, seq) pair is silently ignored.
func (j *Journal) RecordSnapshot(ctx context.Context, seq int64, snap org.Snapshot) error {
	snapJSON, err := marshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}

	_, err = j.store.db.ExecContext(ctx, `
		INSERT INTO snapshots (organization, seq, snapshot)
		VALUES (?, ?, ?)
		ON CONFLICT(organization, seq) DO NOTHING
	`, j.organization, seq, snapJSON)
	if err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}

	return nil
}

// RecordExecution inserts an executed unit.
// Uses ON CONFLICT(attempt_token) DO NOTHING for idempotency: an
// attempt token identifies exactly one execution, so replaying a write
// is silently ignored.
func (j *Journal) RecordExecution(ctx context.Context, seq int64, actor ledger.PublicIdentity, unit *ledger.AtomicUnit) error {
	unitJSON, err := marshalUnit(unit)
	if err != nil {
		return fmt.Errorf("record execution: %w", err)
	}

	_, err = j.store.db.ExecContext(ctx, `
		INSERT INTO executions
		(organization, seq, attempt_token, actor_address, actor_public_key, descriptor, unit)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(attempt_token) DO NOTHING
	`,
		j.organization,
		seq,
		unit.AttemptToken,
		string(actor.Address),
		actor.PublicKey,
		unit.Descriptor,
		unitJSON,
	)
	if err != nil {
		return fmt.Errorf("record execution: %w", err)
	}

	return nil
}
