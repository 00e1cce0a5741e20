package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/noise/internal/logging"
)

// LoggingQueries wraps the Queries struct to add debug logging
type LoggingQueries struct {
	*Queries
}

// NewLoggingQueries creates a new LoggingQueries instance
func NewLoggingQueries(db DBTX) *LoggingQueries {
	return &LoggingQueries{
		Queries: New(db),
	}
}

// WithTx creates a new LoggingQueries with a transaction
func (lq *LoggingQueries) WithTx(tx *sql.Tx) *LoggingQueries {
	return &LoggingQueries{
		Queries: lq.Queries.WithTx(tx),
	}
}

func (lq *LoggingQueries) logger() *log.Logger {
	return logging.WithComponent("db")
}

// Helper function to log query execution
func (lq *LoggingQueries) logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		lq.logger().Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		lq.logger().Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

// CreateSnapshot with logging. The values blob is left out of the log line.
func (lq *LoggingQueries) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) (int64, error) {
	start := time.Now()
	lq.logger().Debug("Executing CreateSnapshot",
		"field_id", arg.FieldID,
		"samples", arg.Samples,
		"blob_bytes", len(arg.ValuesBlob),
	)

	result, err := lq.Queries.CreateSnapshot(ctx, arg)
	lq.logQuery("CreateSnapshot", start, err, arg.FieldID)

	if err == nil {
		lq.logger().Debug("CreateSnapshot result", "snapshot_id", result)
	}

	return result, err
}

// GetSnapshot with logging
func (lq *LoggingQueries) GetSnapshot(ctx context.Context, id int64) (Snapshot, error) {
	start := time.Now()
	lq.logger().Debug("Executing GetSnapshot", "snapshot_id", id)

	result, err := lq.Queries.GetSnapshot(ctx, id)
	lq.logQuery("GetSnapshot", start, err, id)

	return result, err
}

// GetSnapshotByFieldID with logging
func (lq *LoggingQueries) GetSnapshotByFieldID(ctx context.Context, fieldID string) (Snapshot, error) {
	start := time.Now()
	lq.logger().Debug("Executing GetSnapshotByFieldID", "field_id", fieldID)

	result, err := lq.Queries.GetSnapshotByFieldID(ctx, fieldID)
	lq.logQuery("GetSnapshotByFieldID", start, err, fieldID)

	return result, err
}

// ListSnapshots with logging
func (lq *LoggingQueries) ListSnapshots(ctx context.Context, limit int64) ([]SnapshotSummary, error) {
	start := time.Now()
	lq.logger().Debug("Executing ListSnapshots", "limit", limit)

	result, err := lq.Queries.ListSnapshots(ctx, limit)
	lq.logQuery("ListSnapshots", start, err, limit)

	if err == nil {
		lq.logger().Debug("ListSnapshots result", "snapshot_count", len(result))
	}

	return result, err
}

// CountSnapshots with logging
func (lq *LoggingQueries) CountSnapshots(ctx context.Context) (int64, error) {
	start := time.Now()
	lq.logger().Debug("Executing CountSnapshots")

	result, err := lq.Queries.CountSnapshots(ctx)
	lq.logQuery("CountSnapshots", start, err)

	return result, err
}

// PruneSnapshots with logging
func (lq *LoggingQueries) PruneSnapshots(ctx context.Context, keep int64) (int64, error) {
	start := time.Now()
	lq.logger().Debug("Executing PruneSnapshots", "keep", keep)

	result, err := lq.Queries.PruneSnapshots(ctx, keep)
	lq.logQuery("PruneSnapshots", start, err, keep)

	if err == nil && result > 0 {
		lq.logger().Debug("PruneSnapshots result", "deleted", result)
	}

	return result, err
}
