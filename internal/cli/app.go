package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mlazarev/logbook/internal/catalog"
	"github.com/mlazarev/logbook/internal/config"
	"github.com/mlazarev/logbook/internal/journal"
	"github.com/mlazarev/logbook/internal/logging"
	"github.com/mlazarev/logbook/internal/store"
	"github.com/mlazarev/logbook/internal/store/postgres"
	"github.com/mlazarev/logbook/internal/store/sqlite"
	"github.com/mlazarev/logbook/internal/units"
)

// App is the interactive logbook client.
type App struct {
	config  *config.Config
	log     logging.Logger
	store   store.Store
	units   *units.Model
	cat     *catalog.Catalog
	journal *journal.Service
	reader  *bufio.Reader
}

// NewApp wires config, store backend, unit tables and services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	st, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	cat, err := catalog.New(c.Locale)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	um := units.NewModel(units.DefaultSet(), cat)
	svc := journal.New(st, um, cat, logger, time.Local, c.ExportChunkSize)

	return &App{
		config:  c,
		log:     logger,
		store:   st,
		units:   um,
		cat:     cat,
		journal: svc,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	switch c.DatabaseDriver {
	case "sqlite", "":
		return sqlite.Open(ctx, c.DatabaseDSN)
	case "postgres":
		return postgres.Open(ctx, c.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", c.DatabaseDriver)
	}
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.log.Error(ctx, "closing store", "err", err)
		}
	}()
	a.Root(ctx)
}
