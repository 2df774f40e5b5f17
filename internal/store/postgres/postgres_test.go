package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlazarev/logbook/internal/models"
	"github.com/mlazarev/logbook/internal/store"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func entryRows(e *models.Entry) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"uid", "stable_id", "content", "amount", "unit", "created_at_ms", "deleted"}).
		AddRow(e.UID, e.StableID.String(), e.Content, e.Amount, e.Unit, e.CreatedAt.UnixMilli(), e.Deleted)
}

func TestGetByUID(t *testing.T) {
	s, mock := newMockStore(t)

	want := &models.Entry{
		UID:       7,
		StableID:  uuid.New(),
		Content:   "bought milk",
		Amount:    0.5,
		Unit:      "fraction",
		CreatedAt: time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.UTC),
	}

	mock.ExpectQuery(`SELECT (.+) FROM entries WHERE uid = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(entryRows(want))

	got, err := s.GetByUID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByStableIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM entries WHERE stable_id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"uid"}))

	_, err := s.GetByStableID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByCreatedAt(t *testing.T) {
	s, mock := newMockStore(t)

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	want := &models.Entry{UID: 1, StableID: uuid.New(), Content: "note", Unit: "none", CreatedAt: at}

	mock.ExpectQuery(`SELECT (.+) FROM entries WHERE created_at_ms = \$1 AND deleted = FALSE`).
		WithArgs(at.UnixMilli()).
		WillReturnRows(entryRows(want))

	got, err := s.GetByCreatedAt(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	s, mock := newMockStore(t)

	e := &models.Entry{
		StableID:  uuid.New(),
		Content:   "new note",
		Amount:    2,
		Unit:      "double",
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	mock.ExpectQuery(`INSERT INTO entries (.+) RETURNING uid`).
		WithArgs(e.StableID, e.Content, e.Amount, e.Unit, e.CreatedAt.UnixMilli(), false).
		WillReturnRows(sqlmock.NewRows([]string{"uid"}).AddRow(int64(11)))

	uid, err := s.Insert(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, int64(11), uid)
	assert.Equal(t, int64(11), e.UID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	e := &models.Entry{UID: 9999, StableID: uuid.New(), Content: "ghost", Unit: "none", CreatedAt: time.Now()}

	mock.ExpectExec(`UPDATE entries SET (.+) WHERE uid = \$7`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Update(context.Background(), e), store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE entries SET deleted = TRUE WHERE uid = \$1 AND deleted = FALSE`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.SoftDelete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	s, mock := newMockStore(t)

	a := &models.Entry{UID: 2, StableID: uuid.New(), Content: "newer", Unit: "none",
		CreatedAt: time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)}
	rows := entryRows(a)

	mock.ExpectQuery(`SELECT (.+) FROM entries WHERE deleted = FALSE ORDER BY created_at_ms DESC, uid DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	got, err := s.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "newer", got[0].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch(t *testing.T) {
	s, mock := newMockStore(t)

	e := &models.Entry{UID: 1, StableID: uuid.New(), Content: "bought some milk", Unit: "none",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	want := regexp.QuoteMeta(`SELECT uid, stable_id, content, amount, unit, created_at_ms, deleted FROM entries WHERE deleted = FALSE AND content ILIKE $1 AND content ILIKE $2 ORDER BY created_at_ms DESC LIMIT $3`)
	mock.ExpectQuery(want).
		WithArgs("%some%", "%milk%", 10).
		WillReturnRows(entryRows(e))

	got, err := s.Search(context.Background(), `*some* *milk*`, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurge(t *testing.T) {
	s, mock := newMockStore(t)

	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM entries WHERE deleted = TRUE AND created_at_ms < \$1`).
		WithArgs(cutoff.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := s.Purge(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchTerms(t *testing.T) {
	tests := []struct {
		match string
		want  []string
	}{
		{``, nil},
		{`*milk*`, []string{"milk"}},
		{`*two* *words*`, []string{"two", "words"}},
		{`*a* AND *b* OR *c* NOT *d*`, []string{"a", "b", "c", "d"}},
		{`"*word-with-dash*"`, []string{"word-with-dash"}},
		{`*tag\:value*`, []string{"tag:value"}},
		{`-noise* ^first*`, []string{"noise", "first"}},
		{`*don""t*`, []string{`don"t`}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchTerms(tt.match), "match=%q", tt.match)
	}
}
