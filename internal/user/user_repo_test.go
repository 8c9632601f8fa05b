package user_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"go-inventory/internal/lifecycle"
	"go-inventory/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoTest(t *testing.T) (user.Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return user.NewRepository(gormDB), mock, db
}

var userColumns = []string{"id", "name", "email", "password_hash", "status", "created_at", "updated_at"}

func TestUserRepository_FindAllOnlyActive(t *testing.T) {
	repo, mock, _ := newRepoTest(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."status" = $1 ORDER BY name ASC`)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(uuid.New().String(), "Ana", "ana@example.com", "hash", "active", now, now))

	users, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountOnlyActive(t *testing.T) {
	repo, mock, _ := newRepoTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE "users"."status" = $1`)).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	total, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	now := time.Now()

	t.Run("find by id hides deleted user", func(t *testing.T) {
		repo, mock, _ := newRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "users" WHERE id = $1 AND "users"."status" = $2`)).
			WithArgs(id, "active", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.FindByID(ctx, id)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("any status lookup returns deleted user", func(t *testing.T) {
		repo, mock, _ := newRepoTest(t)

		mock.ExpectQuery(`^SELECT \* FROM "users" WHERE id = \$1 LIMIT \$2$`).
			WithArgs(id, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(id.String(), "Ana", "ana@example.com", "hash", "deleted", now, now))

		u, err := repo.FindByIDAnyStatus(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.StatusDeleted, u.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find by email is case insensitive and active only", func(t *testing.T) {
		repo, mock, _ := newRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "users" WHERE lower(email) = $1 AND "users"."status" = $2`)).
			WithArgs("ana@example.com", "active", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(id.String(), "Ana", "ana@example.com", "hash", "active", now, now))

		u, err := repo.FindByEmail(ctx, "  Ana@Example.COM ")

		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	pattern := `UPDATE "users" SET .* WHERE id = \$4 AND "users"\."status" = \$5`

	t.Run("success", func(t *testing.T) {
		repo, mock, _ := newRepoTest(t)

		mock.ExpectExec(pattern).
			WithArgs("ana@example.com", "Ana", "hash", id, "active").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, &user.User{ID: id, Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deleted user -> not found", func(t *testing.T) {
		repo, mock, _ := newRepoTest(t)

		mock.ExpectExec(pattern).
			WithArgs("ana@example.com", "Ana", "hash", id, "active").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &user.User{ID: id, Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"})

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	pattern := `UPDATE "users" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND "users"\."status" = \$4`

	t.Run("marks row deleted inside tx", func(t *testing.T) {
		repo, mock, db := newRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(pattern).
			WithArgs("deleted", sqlmock.AnyArg(), id, "active").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)

		require.NoError(t, repo.WithTx(tx).Delete(ctx, id))
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already deleted -> not found", func(t *testing.T) {
		repo, mock, _ := newRepoTest(t)

		mock.ExpectExec(pattern).
			WithArgs("deleted", sqlmock.AnyArg(), id, "active").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, id), gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
