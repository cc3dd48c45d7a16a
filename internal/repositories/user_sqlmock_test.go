package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newUserRepoWithMock(t *testing.T) (*UserWriteRepository, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewUserWriteRepository(sqlxDB), mock, sqlxDB
}

func TestRotateRefreshToken_RowsAffected(t *testing.T) {
	userID := uuid.New()
	q := `(?s)^\s*UPDATE\s+users\s+SET\s+refresh_token\s*=\s*\$3.*WHERE\s+user_id\s*=\s*\$1\s+AND\s+refresh_token\s*=\s*\$2\s*$`

	t.Run("OneRowMeansSwapped", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).
			WithArgs(userID, "old", "new").
			WillReturnResult(sqlmock.NewResult(0, 1))

		swapped, err := repo.RotateRefreshToken(context.Background(), userID, "old", "new")
		assert.NoError(t, err)
		assert.True(t, swapped)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ZeroRowsMeansLost", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).
			WithArgs(userID, "old", "new").
			WillReturnResult(sqlmock.NewResult(0, 0))

		swapped, err := repo.RotateRefreshToken(context.Background(), userID, "old", "new")
		assert.NoError(t, err)
		assert.False(t, swapped)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExecError", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).
			WithArgs(userID, "old", "new").
			WillReturnError(errors.New("db down"))

		swapped, err := repo.RotateRefreshToken(context.Background(), userID, "old", "new")
		assert.Error(t, err)
		assert.False(t, swapped)
	})
}

func TestCreate_UniqueViolation(t *testing.T) {
	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(username,.*RETURNING\s+user_id\s*$`
	args := []driver.Value{"alice", "alice@example.com", "hash", "Alice", "http://media/a.png", ""}

	t.Run("UniqueViolationIsDuplicateUser", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		userID, err := repo.Create(context.Background(),
			"alice", "alice@example.com", "hash", "Alice", "http://media/a.png", "")
		assert.ErrorIs(t, err, ErrDuplicateUser)
		assert.Equal(t, uuid.Nil, userID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OtherPgErrorPassesThrough", func(t *testing.T) {
		repo, mock, db := newUserRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(q).
			WithArgs(args...).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		userID, err := repo.Create(context.Background(),
			"alice", "alice@example.com", "hash", "Alice", "http://media/a.png", "")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateUser)
		assert.Equal(t, uuid.Nil, userID)
	})
}
