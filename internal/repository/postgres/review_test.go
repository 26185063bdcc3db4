package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_UpsertScore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReviewRepository(db)
	upsert := "INSERT INTO scores (.+) ON CONFLICT \\(application_id, reviewer_id\\) DO UPDATE"

	// the second write for the same pair resolves to the same row
	mock.ExpectQuery(upsert).
		WithArgs(int32(3), int32(8), int32(4), []byte(`{}`), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, testNow))
	mock.ExpectQuery(upsert).
		WithArgs(int32(3), int32(8), int32(2), []byte(`{"technical":2}`), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, testNow))

	first := &domain.Score{ApplicationID: 3, ReviewerID: 8, Value: 4}
	require.NoError(t, repo.UpsertScore(context.Background(), first))
	second := &domain.Score{ApplicationID: 3, ReviewerID: 8, Value: 2, Criteria: map[string]int32{"technical": 2}}
	require.NoError(t, repo.UpsertScore(context.Background(), second))

	assert.Equal(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListScoreValuesByCycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReviewRepository(db)
	mock.ExpectQuery("SELECT s.application_id, s.overall_score FROM scores s").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"application_id", "overall_score"}).AddRow(3, 4).AddRow(3, 5).AddRow(4, 2))

	values, err := repo.ListScoreValuesByCycle(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 5}, values[3])
	assert.Equal(t, []int32{2}, values[4])
}

func TestReviewRepository_Notes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewReviewRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO review_notes").
			WithArgs(int32(3), int32(8), "Strong systems background", true, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		note := &domain.Note{ApplicationID: 3, AuthorID: 8, Content: "Strong systems background", IsPrivate: true}
		require.NoError(t, repo.CreateNote(ctx, note))
		assert.Equal(t, int32(11), note.ID)
	})

	t.Run("Get joins the author name", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM review_notes n JOIN users u ON u.id = n.author_id WHERE n.id = \\$1").
			WithArgs(int32(11)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "application_id", "author_id", "name", "content", "is_private", "created_on"}).
				AddRow(11, 3, 8, "Riley", "Strong systems background", true, testNow))

		note, err := repo.GetNote(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, "Riley", note.AuthorName)
	})

	t.Run("Delete missing note", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM review_notes WHERE id = $1`)).
			WithArgs(int32(12)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteNote(ctx, 12), domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
