package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carteiralabs/carteira/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	infrauser "github.com/carteiralabs/carteira/infra/repository/user"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() }) //nolint: errcheck

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return db, mock
}

func userColumns() []string {
	return []string{
		"id", "name", "document", "email", "password",
		"role", "status", "balance", "created_at", "updated_at",
	}
}

func TestGetByEmail_MapsRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
			id, "Erica Souza", "11122233344", "erica@example.com", "hash",
			0, "approved", "42.50", now, now,
		))

	u, err := repo.GetByEmail(context.Background(), "erica@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "11122233344", u.Document)
	assert.True(t, u.Balance.Equal(decimal.RequireFromString("42.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_AbsenceIsNilWithoutError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	u, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailOrDocument_MatchesEitherColumn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 OR document = \$2`).
		WillReturnRows(sqlmock.NewRows(userColumns()).AddRow(
			uuid.New(), "Erica Souza", "11122233344", "erica@example.com", "hash",
			0, "approved", "0", time.Now(), time.Now(),
		))

	u, err := repo.GetByEmailOrDocument(context.Background(), "11122233344")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_ReportsNoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	mock.ExpectExec(`UPDATE "users" SET "status"=\$1.* WHERE email = \$3 AND status <> \$4`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "erica@example.com", "approved")
	require.ErrorIs(t, err, domain.ErrNothingUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_Succeeds(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	mock.ExpectExec(`UPDATE "users" SET "status"=\$1.* WHERE email = \$3 AND status <> \$4`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "erica@example.com", "approved"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementBalance_UnknownDocument(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	mock.ExpectExec(`UPDATE "users" SET "balance"=balance \+ \$1.* WHERE document = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementBalance(context.Background(), "00000000000", decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementBalanceGuarded_InsufficientFunds(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	// The guard lives in the WHERE clause: no matching row means the balance
	// check failed at the storage layer.
	mock.ExpectExec(`UPDATE "users" SET "balance"=balance - \$1.* WHERE document = \$3 AND balance >= \$4`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DecrementBalanceGuarded(context.Background(), "11122233344", decimal.NewFromInt(100))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementBalanceGuarded_Succeeds(t *testing.T) {
	db, mock := newMockDB(t)
	repo := infrauser.New(db)

	mock.ExpectExec(`UPDATE "users" SET "balance"=balance - \$1.* WHERE document = \$3 AND balance >= \$4`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DecrementBalanceGuarded(context.Background(), "11122233344", decimal.NewFromInt(20)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
