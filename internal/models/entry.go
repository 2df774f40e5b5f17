// Package models defines the journal entry type and the per-row outcome
// used by the CSV import pipeline.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one logged observation: free text, an optional quantity and a
// creation timestamp with millisecond precision.
type Entry struct {
	// UID is the store-local surrogate key, assigned on insert.
	UID int64

	// StableID identifies the entry across devices and installs. It is the
	// merge key for CSV re-import and never changes once assigned.
	StableID uuid.UUID

	Content string

	// Amount is interpreted according to Unit, see internal/units.
	Amount float64

	// Unit is the stable id of the unit variant, never a localized name.
	Unit string

	CreatedAt time.Time

	// Deleted marks a tombstone. Tombstones are excluded from listings and
	// exports but kept around for undo until purged.
	Deleted bool
}

// CreatedAtMs returns the creation instant as milliseconds since epoch,
// which is the granularity entries are persisted and compared with.
func (e *Entry) CreatedAtMs() int64 {
	return e.CreatedAt.UnixMilli()
}
