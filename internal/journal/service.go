// Package journal is the application service over the entry store: adding,
// listing, searching and deleting entries, plus the CSV import/export
// entry points.
package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mlazarev/logbook/internal/catalog"
	"github.com/mlazarev/logbook/internal/impexp"
	"github.com/mlazarev/logbook/internal/logging"
	"github.com/mlazarev/logbook/internal/models"
	"github.com/mlazarev/logbook/internal/search"
	"github.com/mlazarev/logbook/internal/store"
	"github.com/mlazarev/logbook/internal/units"
)

var (
	ErrEmptyContent = errors.New("note text is empty")
	ErrUnknownUnit  = errors.New("unknown unit")
)

// Service wires the store, the unit model and the import/export engines.
//
// Import and Export runs against the same service are serialized with a
// mutex: the engines mutate the store incrementally and interleaving two
// runs would interleave their partial writes.
type Service struct {
	store    store.Store
	units    *units.Model
	cat      *catalog.Catalog
	log      logging.Logger
	importer *impexp.Importer
	exporter *impexp.Exporter

	mu sync.Mutex
}

// New builds a service. Exported timestamps are rendered in loc.
func New(st store.Store, um *units.Model, cat *catalog.Catalog, log logging.Logger, loc *time.Location, chunk int) *Service {
	return &Service{
		store:    st,
		units:    um,
		cat:      cat,
		log:      log,
		importer: impexp.NewImporter(st, um, cat, log),
		exporter: impexp.NewExporter(um, cat, log, loc, chunk),
	}
}

// Add validates and stores a new entry, stamping it with a fresh stable id
// and the current instant at millisecond precision.
func (s *Service) Add(ctx context.Context, content string, amount float64, unitID string) (*models.Entry, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	u, ok := s.units.Set().ByID(unitID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, unitID)
	}
	e := &models.Entry{
		StableID:  uuid.New(),
		Content:   content,
		Amount:    amount,
		Unit:      u.ID,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.store.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("adding entry: %w", err)
	}
	return e, nil
}

// Update overwrites an edited entry.
func (s *Service) Update(ctx context.Context, e *models.Entry) error {
	if e.Content == "" {
		return ErrEmptyContent
	}
	if _, ok := s.units.Set().ByID(e.Unit); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, e.Unit)
	}
	return s.store.Update(ctx, e)
}

// Get returns one entry by surrogate key.
func (s *Service) Get(ctx context.Context, uid int64) (*models.Entry, error) {
	return s.store.GetByUID(ctx, uid)
}

// List returns a page of entries, newest first.
func (s *Service) List(ctx context.Context, offset, limit int) ([]models.Entry, error) {
	return s.store.List(ctx, offset, limit)
}

// Search sanitizes raw user input and runs it against the store's
// full-text index.
func (s *Service) Search(ctx context.Context, raw string, limit int) ([]models.Entry, error) {
	return s.store.Search(ctx, search.Sanitize(raw), limit)
}

// Delete tombstones an entry.
func (s *Service) Delete(ctx context.Context, uid int64) error {
	return s.store.SoftDelete(ctx, uid)
}

// Import merges a CSV stream into the store. See impexp.Importer for the
// reconciliation and abort semantics.
func (s *Service) Import(ctx context.Context, r io.Reader) (*impexp.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.importer.Run(ctx, r)
}

// Export streams all non-deleted entries to w as CSV and returns the
// localized success message.
func (s *Service) Export(ctx context.Context, w io.Writer) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporter.Run(ctx, w, s.store.List)
}

// Purge permanently drops tombstones older than the given age.
func (s *Service) Purge(ctx context.Context, age time.Duration) (int64, error) {
	n, err := s.store.Purge(ctx, time.Now().UTC().Add(-age))
	if err != nil {
		return 0, err
	}
	s.log.Info(ctx, "purge finished", "dropped", n)
	return n, nil
}

// FormatAmount renders an entry's quantity for display.
func (s *Service) FormatAmount(e *models.Entry) string {
	return s.units.Format(s.units.UnitOrNone(e.Unit), e.Amount)
}

// EditorUnit returns the unit the editor should offer for an entry,
// applying the visibility coercion without touching persisted data.
func (s *Service) EditorUnit(e *models.Entry) *units.Unit {
	return s.units.EditorUnit(s.units.UnitOrNone(e.Unit), e.Amount)
}

// Message renders an import summary for the user.
func (s *Service) Message(sum *impexp.Summary) string {
	return sum.Message(s.cat)
}
