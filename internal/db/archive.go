package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/VoidMesh/noise/internal/field"
	"github.com/VoidMesh/noise/internal/logging"
)

// Archive stores completed fields and keeps only the newest retain of them.
type Archive struct {
	db      *sql.DB
	queries *LoggingQueries
	retain  int64
}

// NewArchive wraps an open, migrated database. retain <= 0 keeps everything.
func NewArchive(database *sql.DB, retain int) *Archive {
	return &Archive{
		db:      database,
		queries: NewLoggingQueries(database),
		retain:  int64(retain),
	}
}

// Save archives f and prunes old snapshots in the same transaction.
func (a *Archive) Save(ctx context.Context, f *field.Field) (int64, error) {
	start := time.Now()
	params, err := snapshotParams(f)
	if err != nil {
		return 0, err
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := a.queries.WithTx(tx)
	id, err := q.CreateSnapshot(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("failed to create snapshot: %w", err)
	}

	if a.retain > 0 {
		if _, err := q.PruneSnapshots(ctx, a.retain); err != nil {
			return 0, fmt.Errorf("failed to prune snapshots: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	logging.WithDuration("archive_snapshot", time.Since(start)).Debug("Snapshot archived",
		"snapshot_id", id,
		"field_id", f.ID,
		"blob_bytes", len(params.ValuesBlob),
	)
	return id, nil
}

// List returns up to limit snapshot summaries, newest first.
func (a *Archive) List(ctx context.Context, limit int64) ([]SnapshotSummary, error) {
	items, err := a.queries.ListSnapshots(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return items, nil
}

// Load rebuilds the archived field with the given snapshot id.
func (a *Archive) Load(ctx context.Context, id int64) (*field.Field, error) {
	s, err := a.queries.GetSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Field()
}

// LoadByFieldID rebuilds an archived field from its field id.
func (a *Archive) LoadByFieldID(ctx context.Context, fieldID string) (*field.Field, error) {
	s, err := a.queries.GetSnapshotByFieldID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	return s.Field()
}

// Count returns the number of archived snapshots.
func (a *Archive) Count(ctx context.Context) (int64, error) {
	return a.queries.CountSnapshots(ctx)
}

// Field decodes the snapshot back into a field.
func (s Snapshot) Field() (*field.Field, error) {
	values, err := DecodeValues(s.ValuesBlob, int(s.Samples*s.Samples))
	if err != nil {
		return nil, fmt.Errorf("snapshot %d: %w", s.ID, err)
	}
	return &field.Field{
		ID:          s.FieldID,
		Params:      field.Params{Step: s.Step, Extent: s.Extent},
		Samples:     int(s.Samples),
		Values:      values,
		Min:         s.MinValue,
		Max:         s.MaxValue,
		Mean:        s.MeanValue,
		Gradients:   int(s.Gradients),
		GeneratedAt: s.GeneratedAt,
		Duration:    time.Duration(s.DurationNs),
	}, nil
}

func snapshotParams(f *field.Field) (CreateSnapshotParams, error) {
	blob, err := EncodeValues(f.Values)
	if err != nil {
		return CreateSnapshotParams{}, err
	}
	return CreateSnapshotParams{
		FieldID:     f.ID,
		Samples:     int64(f.Samples),
		Step:        f.Params.Step,
		Extent:      f.Params.Extent,
		MinValue:    f.Min,
		MaxValue:    f.Max,
		MeanValue:   f.Mean,
		Gradients:   int64(f.Gradients),
		DurationNs:  int64(f.Duration),
		GeneratedAt: f.GeneratedAt.UTC(),
		ValuesBlob:  blob,
	}, nil
}
