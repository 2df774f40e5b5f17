package impexp

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mlazarev/logbook/internal/catalog"
	"github.com/mlazarev/logbook/internal/logging"
	"github.com/mlazarev/logbook/internal/models"
	"github.com/mlazarev/logbook/internal/units"
)

// Source yields one page of entries per call. The export engine keeps
// asking until a short page signals the end, so the whole result set never
// has to fit in memory. internal/store List satisfies it directly; callers
// can pass a pre-filtered source instead.
type Source func(ctx context.Context, offset, limit int) ([]models.Entry, error)

var exportHeader = []string{colCreatedAt, colContent, colAmount, colRawAmount, colUnit, colStableID}

// Exporter streams entries as CSV: RFC 4180 quoting, CRLF records,
// timestamps rendered in the configured location. Records are written in
// whatever order the source yields them.
type Exporter struct {
	units *units.Model
	cat   *catalog.Catalog
	log   logging.Logger
	loc   *time.Location
	chunk int
}

// NewExporter builds an exporter rendering timestamps in loc. A chunk of
// 0 or less falls back to DefaultChunkSize.
func NewExporter(um *units.Model, cat *catalog.Catalog, log logging.Logger, loc *time.Location, chunk int) *Exporter {
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	return &Exporter{units: um, cat: cat, log: log, loc: loc, chunk: chunk}
}

// Run writes all entries the source yields to w and returns the localized
// success message. Write errors are fatal for the whole run; cancellation
// is honored between records.
func (ex *Exporter) Run(ctx context.Context, w io.Writer, src Source) (string, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(exportHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}

	total := 0
	for offset := 0; ; {
		page, err := src(ctx, offset, ex.chunk)
		if err != nil {
			return "", fmt.Errorf("reading entries: %w", err)
		}
		for i := range page {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			if err := cw.Write(ex.record(&page[i])); err != nil {
				return "", fmt.Errorf("writing record: %w", err)
			}
		}
		total += len(page)
		if len(page) < ex.chunk {
			break
		}
		offset += len(page)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	ex.log.Info(ctx, "export finished", "exported", total)
	return ex.cat.Sprintf("exported %d notes", total), nil
}

func (ex *Exporter) record(e *models.Entry) []string {
	u := ex.units.UnitOrNone(e.Unit)
	return []string{
		e.CreatedAt.In(ex.loc).Format(TimeLayout),
		e.Content,
		ex.units.Format(u, e.Amount),
		units.Serialize(e.Amount),
		u.ID,
		e.StableID.String(),
	}
}
