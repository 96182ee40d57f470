package repository

import (
	"regexp"
	"testing"
	"time"

	"canvas_blog/internal/domain/post/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func previewRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "created_at", "author_name", "author_image",
		"like_count", "hit_count", "summary",
	}).AddRow("p-1", "T", time.Now(), "Author", "", int64(3), int64(7), "hello")
}

func TestListPreviews_RecentUsesKeysetCursor(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(p.created_at, p.id) < ($1, $2)")).
		WillReturnRows(previewRows())

	after := &model.Post{}
	after.ID = "p-0"
	after.CreatedAt = time.Now()

	previews, err := repo.ListPreviews(PreviewQuery{
		Filter: model.FilterRecent,
		After:  after,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, "p-1", previews[0].ID)
	assert.EqualValues(t, 3, previews[0].LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPreviews_HottestUsesWindowAndOffset(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("hl.created_at >= $1) DESC, p.id DESC")).
		WillReturnRows(previewRows())

	_, err := repo.ListPreviews(PreviewQuery{
		Filter: model.FilterHottest,
		Since:  time.Now().Add(-72 * time.Hour),
		Limit:  10,
		Offset: 20,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPreviews_UnknownFilter(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewPostRepository(db)

	_, err := repo.ListPreviews(PreviewQuery{Filter: "weird"})
	assert.Error(t, err)
}
