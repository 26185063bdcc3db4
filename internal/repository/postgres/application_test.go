package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRepository_GetOrCreateDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)

	t.Run("Existing row is returned as is", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO applications (.+) ON CONFLICT \\(candidate_id, cycle_id\\) DO NOTHING").
			WithArgs(int32(7), int32(1), domain.ApplicationStatusDraft, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT (.+) FROM applications WHERE candidate_id = \\$1 AND cycle_id = \\$2").
			WithArgs(int32(7), int32(1)).
			WillReturnRows(sqlmock.NewRows(applicationCols).AddRow(3, 7, 1, nil, "SUBMITTED", 100, testNow, testNow, testNow, testNow))

		app, err := repo.GetOrCreateDraft(context.Background(), 7, 1)
		require.NoError(t, err)
		assert.Equal(t, int32(3), app.ID)
		assert.Equal(t, domain.ApplicationStatusSubmitted, app.Status)
		require.NotNil(t, app.SubmittedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_SaveDraft(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()
	hello := "hello"
	updateDraft := regexp.QuoteMeta(`UPDATE applications SET subteam_id = $1, completion_percent = $2, last_saved_at = $3, updated_on = $3`)
	pruneResponses := regexp.QuoteMeta(`DELETE FROM responses WHERE application_id = $1 AND question_id <> ALL($2)`)

	t.Run("Upserts every response", func(t *testing.T) {
		app := &domain.Application{ID: 3, CompletionPercent: 50}
		responses := []domain.Response{{QuestionID: 1, TextResponse: &hello, SelectedOptions: []string{}}}

		mock.ExpectBegin()
		mock.ExpectExec(updateDraft).
			WithArgs(nil, int32(50), sqlmock.AnyArg(), int32(3), domain.ApplicationStatusDraft).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(pruneResponses).
			WithArgs(int32(3), pq.Array([]int64{1})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("INSERT INTO responses (.+) ON CONFLICT \\(application_id, question_id\\) DO UPDATE").
			WithArgs(int32(3), int32(1), "hello", pq.Array([]string{}), nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveDraft(ctx, app, responses))
		assert.False(t, app.LastSavedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty answer set clears stored responses", func(t *testing.T) {
		subteam := int32(6)
		app := &domain.Application{ID: 3, SubteamID: &subteam}

		mock.ExpectBegin()
		mock.ExpectExec(updateDraft).
			WithArgs(int32(6), int32(0), sqlmock.AnyArg(), int32(3), domain.ApplicationStatusDraft).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(pruneResponses).
			WithArgs(int32(3), pq.Array([]int64{})).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveDraft(ctx, app, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Submitted application is left untouched", func(t *testing.T) {
		app := &domain.Application{ID: 3, CompletionPercent: 50}

		mock.ExpectBegin()
		mock.ExpectExec(updateDraft).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveDraft(ctx, app, []domain.Response{{QuestionID: 1, TextResponse: &hello}})
		assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_Submit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	submit := regexp.QuoteMeta(`UPDATE applications SET status = $1, submitted_at = $2, completion_percent = 100`)

	mock.ExpectExec(submit).
		WithArgs(domain.ApplicationStatusSubmitted, testNow, int32(3), domain.ApplicationStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(submit).
		WithArgs(domain.ApplicationStatusSubmitted, testNow, int32(3), domain.ApplicationStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Submit(context.Background(), 3, testNow))
	assert.ErrorIs(t, repo.Submit(context.Background(), 3, testNow), domain.ErrAlreadySubmitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_TransitionStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	ctx := context.Background()
	lockStatus := regexp.QuoteMeta(`SELECT status FROM applications WHERE id = $1 FOR UPDATE`)

	t.Run("Writes status and history together", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockStatus).WithArgs(int32(3)).WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("INTERVIEW"))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = $1`)).
			WithArgs(domain.ApplicationStatusUnderReview, sqlmock.AnyArg(), int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO application_status_history").
			WithArgs(int32(3), domain.ApplicationStatusInterview, domain.ApplicationStatusUnderReview, int32(8), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(40))
		mock.ExpectCommit()

		change, err := repo.TransitionStatus(ctx, 3, domain.ApplicationStatusUnderReview, 8, domain.TransitionPolicy{})
		require.NoError(t, err)
		require.NotNil(t, change)
		assert.Equal(t, int32(40), change.ID)
		assert.Equal(t, domain.ApplicationStatusInterview, change.OldStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Same status is a no-op", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockStatus).WithArgs(int32(3)).WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("OFFER"))
		mock.ExpectCommit()

		change, err := repo.TransitionStatus(ctx, 3, domain.ApplicationStatusOffer, 8, domain.TransitionPolicy{})
		require.NoError(t, err)
		assert.Nil(t, change)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Draft cannot enter the pipeline", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockStatus).WithArgs(int32(3)).WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("DRAFT"))
		mock.ExpectRollback()

		_, err := repo.TransitionStatus(ctx, 3, domain.ApplicationStatusUnderReview, 8, domain.TransitionPolicy{})
		assert.ErrorIs(t, err, domain.ErrNotSubmitted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Strict policy rejects moving back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockStatus).WithArgs(int32(3)).WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("INTERVIEW"))
		mock.ExpectRollback()

		_, err := repo.TransitionStatus(ctx, 3, domain.ApplicationStatusUnderReview, 8, domain.TransitionPolicy{Strict: true})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM applications WHERE cycle_id = \\$1 GROUP BY status").
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("DRAFT", 4).AddRow("SUBMITTED", 2))

	counts, err := repo.CountByStatus(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(4), counts[domain.ApplicationStatusDraft])
	assert.Equal(t, int32(2), counts[domain.ApplicationStatusSubmitted])
}

func TestApplicationRepository_ListByCycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewApplicationRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM applications WHERE cycle_id = \\$1 AND status = ANY\\(\\$2\\)").
		WithArgs(int32(1), pq.Array([]string{"DRAFT"})).
		WillReturnRows(sqlmock.NewRows(applicationCols).AddRow(3, 7, 1, 2, "DRAFT", 50, testNow, nil, testNow, testNow))

	apps, err := repo.ListByCycle(context.Background(), 1, []domain.ApplicationStatus{domain.ApplicationStatusDraft})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, int32(2), *apps[0].SubteamID)
	assert.Nil(t, apps[0].SubmittedAt)
}
