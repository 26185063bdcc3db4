package postgres_test

import (
	"context"
	"testing"

	"recruiting-portal-backend/internal/domain"
	"recruiting-portal-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM notifications WHERE user_id = \\$1").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = \\$1").
		WithArgs(int32(7), int32(20), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "org_id", "title", "message", "is_read", "attributes", "created_on"}).
			AddRow(1, 7, 2, "Application Submitted", "Thanks", false, []byte(`{"application_id":"3"}`), testNow))

	notes, count, err := repo.List(context.Background(), 7, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int32(1), count)
	require.Len(t, notes, 1)
	assert.Equal(t, "3", notes[0].Attributes["application_id"])
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	mock.ExpectExec("UPDATE notifications SET is_read = TRUE").WithArgs(int32(1), int32(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkAsRead(context.Background(), 1, 9), domain.ErrNotFound)
}
