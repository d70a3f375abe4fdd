package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ExecutionRecord is one journaled execution, unit JSON included
// verbatim as stored.
type ExecutionRecord struct {
	Seq            int64  `json:"seq"`
	AttemptToken   string `json:"attempt_token"`
	ActorAddress   string `json:"actor_address"`
	ActorPublicKey string `json:"actor_public_key"`
	Descriptor     string `json:"descriptor"`
	UnitJSON       string `json:"unit"`
	RecordedAt     string `json:"recorded_at"`
}

// SnapshotRecord is one journaled snapshot.
type SnapshotRecord struct {
	Seq          int64  `json:"seq"`
	SnapshotJSON string `json:"snapshot"`
	RecordedAt   string `json:"recorded_at"`
}

// ReadExecutions returns every journaled execution for an organization.
// Results are ordered deterministically: ORDER BY seq ASC, then attempt
// token with binary collation as the tiebreaker.
//
// Returns an empty slice (not nil) if no records exist.
func (s *Store) ReadExecutions(ctx context.Context, organization string) ([]ExecutionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, attempt_token, actor_address, actor_public_key, descriptor, unit, recorded_at
		FROM executions
		WHERE organization = ?
		ORDER BY seq ASC, attempt_token COLLATE BINARY ASC
	`, organization)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	records := []ExecutionRecord{}
	for rows.Next() {
		var rec ExecutionRecord
		if err := rows.Scan(
			&rec.Seq,
			&rec.AttemptToken,
			&rec.ActorAddress,
			&rec.ActorPublicKey,
			&rec.Descriptor,
			&rec.UnitJSON,
			&rec.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate executions: %w", err)
	}

	return records, nil
}

// ReadLatestSnapshot returns the highest-seq snapshot for an
// organization, or nil when nothing has been journaled yet.
func (s *Store) ReadLatestSnapshot(ctx context.Context, organization string) (*SnapshotRecord, error) {
	var rec SnapshotRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, snapshot, recorded_at
		FROM snapshots
		WHERE organization = ?
		ORDER BY seq DESC
		LIMIT 1
	`, organization).Scan(&rec.Seq, &rec.SnapshotJSON, &rec.RecordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return &rec, nil
}
