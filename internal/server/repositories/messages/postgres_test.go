package messages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs("id1", "m1", "a", "Anna", "", "hallo", now, true, "Inappropriate language detected").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.ChatMessage{
		ID: "id1", MatchID: "m1", SenderID: "a", SenderDisplayName: "Anna", Text: "hallo", CreatedAt: now,
		IsModerated: true, ModerationReason: "Inappropriate language detected",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO messages`).WillReturnError(errors.New("fk violation"))

	err := repo.Create(context.Background(), &models.ChatMessage{ID: "x"})
	assert.ErrorContains(t, err, "db error: fk violation")
}

func TestListRecent(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	cols := []string{"id", "match_id", "sender_id", "sender_display_name", "sender_photo_url", "text",
		"created_at", "is_moderated", "moderation_reason"}
	mock.ExpectQuery(`SELECT \* FROM messages WHERE match_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 \) recent ORDER BY created_at, id`).
		WithArgs("m1", 20).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("1", "m1", "a", "Anna", "", "first", now, false, "").
			AddRow("2", "m1", "b", "Ben", "", "second", now.Add(time.Second), false, ""))

	list, err := repo.ListRecent(context.Background(), "m1", 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "Ben", list[1].SenderDisplayName)
}

func TestListRecent_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM messages`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1"))

	_, err := repo.ListRecent(context.Background(), "m1", 20)
	assert.Error(t, err)
}
