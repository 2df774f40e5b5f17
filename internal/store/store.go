// Package store defines the entry persistence contract consumed by the
// journal service and the CSV import/export engines. Backends live in the
// sqlite and postgres subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mlazarev/logbook/internal/models"
)

// ErrNotFound is returned by point lookups that match no entry.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("entry not found")

// Store is the persistence contract for journal entries.
//
// Point lookups, insert and update are the read-modify-decide-write cycle
// the import engine runs per row. List is the paged non-deleted scan the
// export engine streams from; its order is stable but unspecified beyond
// newest-first. Search takes an already sanitized match expression, see
// internal/search.
type Store interface {
	// GetByUID returns the entry with the given surrogate key, deleted
	// or not. ErrNotFound when absent.
	GetByUID(ctx context.Context, uid int64) (*models.Entry, error)

	// GetByStableID returns the entry with the given merge key, deleted
	// or not. ErrNotFound when absent.
	GetByStableID(ctx context.Context, id uuid.UUID) (*models.Entry, error)

	// GetByCreatedAt returns a non-deleted entry whose creation instant
	// matches at exactly, at millisecond precision. ErrNotFound when absent.
	GetByCreatedAt(ctx context.Context, at time.Time) (*models.Entry, error)

	// Insert stores a new entry and returns the assigned surrogate key.
	Insert(ctx context.Context, e *models.Entry) (int64, error)

	// Update overwrites the entry identified by e.UID.
	Update(ctx context.Context, e *models.Entry) error

	// SoftDelete tombstones an entry by surrogate key.
	SoftDelete(ctx context.Context, uid int64) error

	// List returns a page of non-deleted entries, newest first.
	List(ctx context.Context, offset, limit int) ([]models.Entry, error)

	// Search returns non-deleted entries matching a sanitized full-text
	// expression, best match first.
	Search(ctx context.Context, match string, limit int) ([]models.Entry, error)

	// Purge permanently removes tombstones older than the given instant
	// and returns how many were dropped.
	Purge(ctx context.Context, olderThan time.Time) (int64, error)

	Close() error
}
