// Package sqlite implements the entry store over a local SQLite database
// with an FTS5 index for full-text search. It is the default backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mlazarev/logbook/internal/dbx"
	"github.com/mlazarev/logbook/internal/filex"
	"github.com/mlazarev/logbook/internal/models"
	"github.com/mlazarev/logbook/internal/store"
	"github.com/mlazarev/logbook/internal/store/sqlite/migrations"
)

// Store implements store.Store over a *sql.DB opened with the modernc
// sqlite driver.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and applies pending
// migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating sqlite db: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
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

// GetByUID returns the entry with the given surrogate key, including
// tombstones.
func (s *Store) GetByUID(ctx context.Context, uid int64) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE uid = ?`, uid)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting entry by uid: %w", err)
	}
	return e, nil
}

// GetByStableID returns the entry carrying the given merge key, including
// tombstones, so a re-import can undelete.
func (s *Store) GetByStableID(ctx context.Context, id uuid.UUID) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE stable_id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting entry by stable id: %w", err)
	}
	return e, nil
}

// GetByCreatedAt returns a non-deleted entry created at exactly the given
// instant (millisecond precision).
func (s *Store) GetByCreatedAt(ctx context.Context, at time.Time) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE created_at_ms = ? AND deleted = 0 LIMIT 1`,
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

// Insert stores a new entry and returns the assigned uid.
func (s *Store) Insert(ctx context.Context, e *models.Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (stable_id, content, amount, unit, created_at_ms, deleted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.StableID, e.Content, e.Amount, e.Unit, e.CreatedAtMs(), e.Deleted)
	if err != nil {
		return 0, fmt.Errorf("inserting entry: %w", err)
	}
	uid, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted uid: %w", err)
	}
	e.UID = uid
	return uid, nil
}

// Update overwrites the entry identified by e.UID.
func (s *Store) Update(ctx context.Context, e *models.Entry) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET stable_id = ?, content = ?, amount = ?, unit = ?, created_at_ms = ?, deleted = ?
		 WHERE uid = ?`,
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

// SoftDelete tombstones an entry.
func (s *Store) SoftDelete(ctx context.Context, uid int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET deleted = 1 WHERE uid = ? AND deleted = 0`, uid)
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

// List returns a page of non-deleted entries, newest first.
func (s *Store) List(ctx context.Context, offset, limit int) ([]models.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE deleted = 0
		 ORDER BY created_at_ms DESC, uid DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("selecting entries: %w", err)
	}
	return collect(rows)
}

// Search runs a sanitized match expression against the FTS index. An
// expression with no searchable terms degrades to a plain listing.
func (s *Store) Search(ctx context.Context, match string, limit int) ([]models.Entry, error) {
	q := fts5Match(match)
	if q == "" {
		return s.List(ctx, 0, limit)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.uid, e.stable_id, e.content, e.amount, e.unit, e.created_at_ms, e.deleted
		 FROM entries_fts JOIN entries e ON e.uid = entries_fts.rowid
		 WHERE entries_fts MATCH ? AND e.deleted = 0
		 ORDER BY rank LIMIT ?`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("searching entries: %w", err)
	}
	return collect(rows)
}

var matchTokenRe = regexp.MustCompile(`[-^]?"[^"]*"|\S+`)

// fts5Match rewrites a portable match expression into the FTS5 dialect.
// Term bodies are re-quoted so reserved characters cannot break the query,
// leading wildcards are dropped (FTS5 prefixes are trailing only) and the
// exclusion marker becomes a NOT operator. An exclusion with nothing to
// subtract from is dropped.
func fts5Match(match string) string {
	var b strings.Builder
	for _, tok := range matchTokenRe.FindAllString(match, -1) {
		switch tok {
		case "AND", "OR", "NOT":
			if b.Len() > 0 {
				b.WriteString(" " + tok)
			}
			continue
		}

		anchor := ""
		negate := false
		switch tok[0] {
		case '^':
			anchor, tok = "^", tok[1:]
		case '-':
			negate, tok = true, tok[1:]
		}
		if tok == "" {
			continue
		}

		prefix := ""
		if strings.HasSuffix(tok, "*") {
			prefix = "*"
		}

		var body string
		if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
			body = strings.Trim(tok[1:len(tok)-1], "*")
			body = strings.ReplaceAll(body, `""`, `"`)
			prefix = ""
		} else {
			body = strings.Trim(tok, "*")
			body = strings.ReplaceAll(body, `\:`, ":")
			body = strings.ReplaceAll(body, `""`, `"`)
		}
		if body == "" {
			continue
		}

		term := anchor + `"` + strings.ReplaceAll(body, `"`, `""`) + `"` + prefix
		switch {
		case b.Len() == 0 && negate:
			continue
		case b.Len() == 0:
			b.WriteString(term)
		case negate:
			b.WriteString(" NOT " + term)
		default:
			b.WriteString(" " + term)
		}
	}
	return b.String()
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

// Purge permanently drops tombstones older than the given instant and
// compacts the FTS index afterwards.
func (s *Store) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	var n int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM entries WHERE deleted = 1 AND created_at_ms < ?`, olderThan.UnixMilli())
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO entries_fts(entries_fts) VALUES ('optimize')`)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("purging entries: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
