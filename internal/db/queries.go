package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// SnapshotSummary is a snapshot row without its values.
type SnapshotSummary struct {
	ID          int64     `json:"id"`
	FieldID     string    `json:"field_id"`
	Samples     int64     `json:"samples"`
	Step        float64   `json:"step"`
	Extent      float64   `json:"extent"`
	MinValue    float64   `json:"min"`
	MaxValue    float64   `json:"max"`
	MeanValue   float64   `json:"mean"`
	Gradients   int64     `json:"gradients"`
	DurationNs  int64     `json:"duration_ns"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Snapshot struct {
	SnapshotSummary
	ValuesBlob []byte `json:"-"`
}

type CreateSnapshotParams struct {
	FieldID     string
	Samples     int64
	Step        float64
	Extent      float64
	MinValue    float64
	MaxValue    float64
	MeanValue   float64
	Gradients   int64
	DurationNs  int64
	GeneratedAt time.Time
	ValuesBlob  []byte
}

const createSnapshot = `
INSERT INTO snapshots (
    field_id, samples, step, extent, min_value, max_value, mean_value,
    gradients, duration_ns, generated_at, values_blob
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createSnapshot,
		arg.FieldID,
		arg.Samples,
		arg.Step,
		arg.Extent,
		arg.MinValue,
		arg.MaxValue,
		arg.MeanValue,
		arg.Gradients,
		arg.DurationNs,
		arg.GeneratedAt,
		arg.ValuesBlob,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const snapshotColumns = `id, field_id, samples, step, extent, min_value, max_value, mean_value,
    gradients, duration_ns, generated_at`

const getSnapshot = `SELECT ` + snapshotColumns + `, values_blob FROM snapshots WHERE id = ?`

func (q *Queries) GetSnapshot(ctx context.Context, id int64) (Snapshot, error) {
	return scanSnapshot(q.db.QueryRowContext(ctx, getSnapshot, id))
}

const getSnapshotByFieldID = `SELECT ` + snapshotColumns + `, values_blob FROM snapshots WHERE field_id = ?`

func (q *Queries) GetSnapshotByFieldID(ctx context.Context, fieldID string) (Snapshot, error) {
	return scanSnapshot(q.db.QueryRowContext(ctx, getSnapshotByFieldID, fieldID))
}

const listSnapshots = `SELECT ` + snapshotColumns + ` FROM snapshots ORDER BY generated_at DESC, id DESC LIMIT ?`

func (q *Queries) ListSnapshots(ctx context.Context, limit int64) ([]SnapshotSummary, error) {
	rows, err := q.db.QueryContext(ctx, listSnapshots, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []SnapshotSummary
	for rows.Next() {
		var s SnapshotSummary
		if err := rows.Scan(summaryDest(&s)...); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countSnapshots = `SELECT COUNT(*) FROM snapshots`

func (q *Queries) CountSnapshots(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countSnapshots).Scan(&count)
	return count, err
}

const pruneSnapshots = `
DELETE FROM snapshots
WHERE id NOT IN (
    SELECT id FROM snapshots ORDER BY generated_at DESC, id DESC LIMIT ?
)
`

// PruneSnapshots deletes all but the newest keep snapshots and returns how
// many rows were removed.
func (q *Queries) PruneSnapshots(ctx context.Context, keep int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneSnapshots, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func summaryDest(s *SnapshotSummary) []interface{} {
	return []interface{}{
		&s.ID,
		&s.FieldID,
		&s.Samples,
		&s.Step,
		&s.Extent,
		&s.MinValue,
		&s.MaxValue,
		&s.MeanValue,
		&s.Gradients,
		&s.DurationNs,
		&s.GeneratedAt,
	}
}

func scanSnapshot(row *sql.Row) (Snapshot, error) {
	var s Snapshot
	err := row.Scan(append(summaryDest(&s.SnapshotSummary), &s.ValuesBlob)...)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	return s, nil
}
