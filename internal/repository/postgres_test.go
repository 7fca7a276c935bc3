package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/ruralpay/cashcard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_FindByIDAndOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	query := regexp.QuoteMeta(`SELECT id, amount, owner FROM cash_card WHERE id = $1 AND owner = $2`)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(int64(99), "sarah1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "owner"}).AddRow(int64(99), "123.45", "sarah1"))

		card, err := store.FindByIDAndOwner(context.Background(), 99, "sarah1")
		require.NoError(t, err)
		assert.Equal(t, int64(99), card.ID)
		assert.Equal(t, "123.45", card.Amount.StringFixed(2))
		assert.Equal(t, "sarah1", card.Owner)
	})

	t.Run("not owned", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(int64(99), "kumar2").
			WillReturnError(sql.ErrNoRows)

		_, err := store.FindByIDAndOwner(context.Background(), 99, "kumar2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, amount, owner FROM cash_card WHERE owner = $1 ORDER BY amount DESC, id ASC LIMIT $2 OFFSET $3`)).
		WithArgs("sarah1", 3, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "owner"}).
			AddRow(int64(101), "200.00", "sarah1").
			AddRow(int64(100), "150.00", "sarah1").
			AddRow(int64(99), "100.00", "sarah1"))

	cards, err := store.FindByOwner(context.Background(), "sarah1", models.PageRequest{
		Page: 0, Size: 3,
		Sort: []models.SortOrder{{Field: models.SortByAmount, Descending: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"200.00", "150.00", "100.00"}, amounts(cards))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "id ASC", orderBy(nil))
	assert.Equal(t, "owner ASC, id DESC", orderBy([]models.SortOrder{
		{Field: models.SortByOwner},
		{Field: models.SortByID, Descending: true},
	}))
	assert.Equal(t, "id ASC", orderBy([]models.SortOrder{{Field: "amount; DROP TABLE cash_card"}}))
}

func TestPostgresStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO cash_card (amount, owner) VALUES ($1, $2) RETURNING id`)).
		WithArgs(sqlmock.AnyArg(), "sarah1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	card, err := store.Create(context.Background(), models.ForOwner("sarah1", decimal.RequireFromString("250.00")))
	require.NoError(t, err)
	assert.Equal(t, int64(42), card.ID)
	assert.Equal(t, "sarah1", card.Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	lock := regexp.QuoteMeta(`SELECT id FROM cash_card WHERE id = $1 AND owner = $2 FOR UPDATE`)

	t.Run("owned record is updated in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lock).
			WithArgs(int64(99), "sarah1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(99)))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE cash_card SET amount = $1 WHERE id = $2 AND owner = $3`)).
			WithArgs(sqlmock.AnyArg(), int64(99), "sarah1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.UpdateOwned(context.Background(), models.ApplyUpdate(99, "sarah1", decimal.NewFromInt(1000)))
		assert.NoError(t, err)
	})

	t.Run("foreign record is left alone", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lock).
			WithArgs(int64(99), "kumar2").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := store.UpdateOwned(context.Background(), models.ApplyUpdate(99, "kumar2", decimal.NewFromInt(1000)))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresStore(db)
	lock := regexp.QuoteMeta(`SELECT id FROM cash_card WHERE id = $1 AND owner = $2 FOR UPDATE`)

	t.Run("owned", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lock).
			WithArgs(int64(99), "sarah1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(99)))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cash_card WHERE id = $1`)).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, store.DeleteOwned(context.Background(), 99, "sarah1"))
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lock).
			WithArgs(int64(999), "sarah1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		assert.ErrorIs(t, store.DeleteOwned(context.Background(), 999, "sarah1"), ErrNotFound)
	})

	t.Run("delete failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lock).
			WithArgs(int64(100), "sarah1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cash_card WHERE id = $1`)).
			WithArgs(int64(100)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := store.DeleteOwned(context.Background(), 100, "sarah1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCredentialStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresCredentialStore(db)

	t.Run("find", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, password_hash, roles FROM users WHERE username = $1`)).
			WithArgs("sarah1").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "roles"}).
				AddRow("sarah1", "$2a$04$hash", "{CARD-OWNER}"))

		c, err := store.FindByUsername(context.Background(), "sarah1")
		require.NoError(t, err)
		assert.Equal(t, []string{"CARD-OWNER"}, c.Roles)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT username, password_hash, roles FROM users WHERE username = $1`)).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		_, err := store.FindByUsername(context.Background(), "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (username, password_hash, roles) VALUES ($1, $2, $3)`)).
			WithArgs("sarah1", "hash", sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})

		err := store.Create(context.Background(), models.Credential{Username: "sarah1", PasswordHash: "hash", Roles: []string{"CARD-OWNER"}})
		assert.ErrorIs(t, err, ErrConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
