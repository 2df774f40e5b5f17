// Package postgres implements the entry store over PostgreSQL, for
// deployments that keep the journal on a shared database server.
//
// Postgres has no FTS5, so Search approximates the sanitized match
// expression: boolean operators and wildcards are stripped and the
// remaining terms are matched with ILIKE, all of them required.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mlazarev/logbook/internal/models"
	"github.com/mlazarev/logbook/internal/store"
	"github.com/mlazarev/logbook/internal/store/postgres/migrations"
)

// Store implements store.Store over a *sql.DB opened with the pgx stdlib
// driver.
type Store struct {
	db *sql.DB
}

// Open connects to the database at dsn and applies pending migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating postgres db: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// New wraps an existing connection without running migrations. Used by
// tests.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const entryColumns = `uid, stable_id, content, amount, unit, created_at_ms, deleted`

func scanEntry(row interface{ Scan(...any) error }) (*models.Entry, error) {
	var e models.Entry
	var ms int64
	if err := row.Scan(&e.UID, &e.StableID, &e.Content, &e.Amount, &e.Unit, &ms, &e.Deleted); err != nil {
		return nil, err
	}
	e.CreatedAt = time.UnixMilli(ms).UTC()
	return &e, nil
}

func (s *Store) GetByUID(ctx context.Context, uid int64) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE uid = $1`, uid)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting entry by uid: %w", err)
	}
	return e, nil
}

func (s *Store) GetByStableID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE stable_id = $1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting entry by stable id: %w", err)
	}
	return e, nil
}

func (s *Store) GetByCreatedAt(ctx context.Context, at time.Time) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE created_at_ms = $1 AND deleted = FALSE LIMIT 1`,
		at.UnixMilli())
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting entry by created at: %w", err)
	}
	return e, nil
}

func (s *Store) Insert(ctx context.Context, e *models.Entry) (int64, error) {
	var uid int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO entries (stable_id, content, amount, unit, created_at_ms, deleted)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING uid`,
		e.StableID, e.Content, e.Amount, e.Unit, e.CreatedAtMs(), e.Deleted).Scan(&uid)
	if err != nil {
		return 0, fmt.Errorf("inserting entry: %w", err)
	}
	e.UID = uid
	return uid, nil
}

func (s *Store) Update(ctx context.Context, e *models.Entry) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET stable_id = $1, content = $2, amount = $3, unit = $4, created_at_ms = $5, deleted = $6
		 WHERE uid = $7`,
		e.StableID, e.Content, e.Amount, e.Unit, e.CreatedAtMs(), e.Deleted, e.UID)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SoftDelete(ctx context.Context, uid int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET deleted = TRUE WHERE uid = $1 AND deleted = FALSE`, uid)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) List(ctx context.Context, offset, limit int) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE deleted = FALSE
		 ORDER BY created_at_ms DESC, uid DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("selecting entries: %w", err)
	}
	return collect(rows)
}

func (s *Store) Search(ctx context.Context, match string, limit int) ([]models.Entry, error) {
	terms := matchTerms(match)
	query := `SELECT ` + entryColumns + ` FROM entries WHERE deleted = FALSE`
	args := make([]any, 0, len(terms)+1)
	for _, term := range terms {
		query += fmt.Sprintf(" AND content ILIKE $%d", len(args)+1)
		args = append(args, "%"+term+"%")
	}
	query += fmt.Sprintf(" ORDER BY created_at_ms DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}
	return collect(rows)
}

// matchTerms reduces a sanitized FTS expression to its bare terms.
func matchTerms(match string) []string {
	var terms []string
	for _, f := range strings.Fields(match) {
		switch f {
		case "AND", "OR", "NOT":
			continue
		}
		f = strings.TrimLeft(f, "-^")
		f = strings.Trim(f, `"*`)
		f = strings.ReplaceAll(f, `\:`, ":")
		f = strings.ReplaceAll(f, `""`, `"`)
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

func collect(rows *sql.Rows) ([]models.Entry, error) {
	defer rows.Close()
	var result []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM entries WHERE deleted = TRUE AND created_at_ms < $1`, olderThan.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("purging entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
