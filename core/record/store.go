package record

import (
	"context"

	"github.com/classforge/classforge/core"
)

// Kind identifies the kinds of records the core mutates.
type Kind string

const (
	KindClass      Kind = "class"
	KindAssignment Kind = "assignment"
	KindSubmission Kind = "submission"
)

// Table returns the record store table/collection backing the kind.
func (k Kind) Table() string {
	switch k {
	case KindClass:
		return "classes"
	case KindAssignment:
		return "assignments"
	case KindSubmission:
		return "submissions"
	}
	return string(k)
}

// Store is the opaque record store the core persists through.
// All records crossing this boundary are in PERSISTED (snake_cased) form;
// canonicalization is the core's job.
type Store interface {
	// GetByID returns the row identified by id, or a not-found PersistenceError.
	GetByID(ctx context.Context, table, id string) (Record, error)

	// SelectWhere returns all rows where field = value, ordered as requested.
	SelectWhere(ctx context.Context, table, field string, value interface{}, ordering ...core.DBOrdering) ([]Record, error)

	// Insert creates a new row; the store assigns the identifier.
	// The full created row is returned.
	Insert(ctx context.Context, table string, rec Record) (Record, error)

	// UpdateByID applies a partial update scoped to id, atomically per row,
	// and returns the full updated row; not-found if no row matched.
	UpdateByID(ctx context.Context, table, id string, patch Record) (Record, error)
}
