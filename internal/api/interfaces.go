package api

import (
	"context"

	"github.com/VoidMesh/noise/internal/db"
	"github.com/VoidMesh/noise/internal/field"
)

//go:generate mockgen -source=interfaces.go -destination=../testmocks/mock_interfaces.go -package=testmocks

// FieldSource exposes the most recent completed field, or nil.
type FieldSource interface {
	Load() *field.Field
}

// Regenerator queues an extra generation pass.
type Regenerator interface {
	Trigger() bool
}

// SnapshotStore reads archived fields.
type SnapshotStore interface {
	List(ctx context.Context, limit int64) ([]db.SnapshotSummary, error)
	Load(ctx context.Context, id int64) (*field.Field, error)
}
