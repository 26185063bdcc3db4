package db

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	migs := fstest.MapFS{
		"migrations/0002_more.sql": {Data: []byte("ALTER TABLE users ADD COLUMN bio TEXT;")},
		"migrations/0001_init.sql": {Data: []byte("CREATE TABLE users (id SERIAL);")},
		"migrations/README.md":     {Data: []byte("ignored")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))

	// 0001 already applied
	mock.ExpectQuery("SELECT COUNT\\(1\\) FROM schema_migrations").
		WithArgs("0001_init").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery("SELECT COUNT\\(1\\) FROM schema_migrations").
		WithArgs("0002_more").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("ALTER TABLE users ADD COLUMN bio").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("0002_more").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, Migrate(context.Background(), db, migs))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationFiles_Embedded(t *testing.T) {
	files, err := migrationFiles(Migrations)
	require.NoError(t, err)
	assert.Contains(t, files, "0001_init.sql")
}
