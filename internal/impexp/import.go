package impexp

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mlazarev/logbook/internal/catalog"
	"github.com/mlazarev/logbook/internal/logging"
	"github.com/mlazarev/logbook/internal/models"
	"github.com/mlazarev/logbook/internal/store"
	"github.com/mlazarev/logbook/internal/units"
)

// Importer merges CSV rows into the entry store.
//
// Reconciliation mode is decided once from the header: when the stableId
// column is present, rows update-or-insert by merge key (a re-import
// undeletes); without it, rows insert-or-skip by exact creation timestamp.
//
// Store mutations happen incrementally, row by row, not as one
// transaction. The first invalid row aborts the remaining rows but rows
// already reconciled stay committed; the caller gets the partial counts
// plus the failure reason in the Summary.
type Importer struct {
	store store.Store
	units *units.Model
	cat   *catalog.Catalog
	log   logging.Logger
}

func NewImporter(st store.Store, um *units.Model, cat *catalog.Catalog, log logging.Logger) *Importer {
	return &Importer{store: st, units: um, cat: cat, log: log}
}

// Run imports the CSV stream r. Row validation failures end up in the
// Summary; only I/O and store errors are returned as errors. Cancellation
// is honored between rows, committed rows are kept.
func (im *Importer) Run(ctx context.Context, r io.Reader) (*Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	sum := &Summary{}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		sum.Empty = true
		return sum, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := indexColumns(header)
	_, mergeMode := cols[colStableID]

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				sum.Reason = im.cat.Sprintf("line %d: malformed row", line)
				break
			}
			return nil, fmt.Errorf("reading row: %w", err)
		}

		res := im.parseRow(cols, rec, line, mergeMode)
		if !res.OK() {
			sum.Reason = res.Reason()
			break
		}
		if err := im.reconcile(ctx, res.Entry(), mergeMode, sum); err != nil {
			return nil, err
		}
	}

	if sum.Imported == 0 && sum.Updated == 0 && sum.Skipped == 0 && sum.Reason == "" {
		sum.Empty = true
	}

	im.log.Info(ctx, "import finished",
		"imported", sum.Imported, "updated", sum.Updated, "skipped", sum.Skipped,
		"failed", sum.Reason != "")
	return sum, nil
}

// parseRow validates one record and builds the entry it describes.
func (im *Importer) parseRow(cols map[string]int, rec []string, line int, mergeMode bool) models.RowResult {
	unitText, ok := field(cols, rec, colUnit)
	if !ok || unitText == "" {
		return models.Failed(im.cat.Sprintf("line %d: missing unit", line))
	}
	unit, ok := im.units.Resolve(unitText)
	if !ok {
		return models.Failed(im.cat.Sprintf("line %d: unknown unit %q", line, unitText))
	}

	raw, ok := field(cols, rec, colRawAmount)
	if !ok {
		return models.Failed(im.cat.Sprintf("line %d: missing amount", line))
	}
	amount := units.Deserialize(unit, raw)

	content, ok := field(cols, rec, colContent)
	if !ok || content == "" {
		return models.Failed(im.cat.Sprintf("line %d: note text is empty", line))
	}

	createdText, ok := field(cols, rec, colCreatedAt)
	if !ok {
		return models.Failed(im.cat.Sprintf("line %d: missing date", line))
	}
	createdAt, err := time.Parse(TimeLayout, createdText)
	if err != nil {
		return models.Failed(im.cat.Sprintf("line %d: invalid date %q", line, createdText))
	}

	var stableID uuid.UUID
	if mergeMode {
		idText, _ := field(cols, rec, colStableID)
		stableID, err = uuid.Parse(idText)
		if err != nil {
			return models.Failed(im.cat.Sprintf("line %d: invalid id %q", line, idText))
		}
	} else {
		stableID = uuid.New()
	}

	return models.Succeeded(&models.Entry{
		StableID:  stableID,
		Content:   content,
		Amount:    amount,
		Unit:      unit.ID,
		CreatedAt: createdAt.UTC(),
	})
}

// reconcile applies one parsed row to the store and bumps the matching
// counter.
func (im *Importer) reconcile(ctx context.Context, e *models.Entry, mergeMode bool, sum *Summary) error {
	if mergeMode {
		existing, err := im.store.GetByStableID(ctx, e.StableID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if _, err := im.store.Insert(ctx, e); err != nil {
				return fmt.Errorf("inserting entry: %w", err)
			}
			sum.Imported++
		case err != nil:
			return fmt.Errorf("looking up entry: %w", err)
		default:
			// Overwrite in place; an import is also an undelete.
			e.UID = existing.UID
			e.Deleted = false
			if err := im.store.Update(ctx, e); err != nil {
				return fmt.Errorf("updating entry: %w", err)
			}
			sum.Updated++
		}
		return nil
	}

	_, err := im.store.GetByCreatedAt(ctx, e.CreatedAt)
	switch {
	case errors.Is(err, store.ErrNotFound):
		if _, err := im.store.Insert(ctx, e); err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}
		sum.Imported++
	case err != nil:
		return fmt.Errorf("looking up entry: %w", err)
	default:
		// Timestamp mode never updates.
		sum.Skipped++
	}
	return nil
}
