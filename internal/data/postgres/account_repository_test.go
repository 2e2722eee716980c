package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testAccount(ownerID uuid.UUID) *account.Account {
	now := time.Now()
	return &account.Account{
		ID:        uuid.New(),
		Name:      "Cashbox USD",
		OwnerKind: shared.OwnerKindCustomer,
		OwnerID:   ownerID,
		Namespace: shared.NamespaceMain,
		Currency:  shared.CurrencyUSD,
		Status:    account.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountRepository_Create(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}

	ownerID := uuid.New()
	acc := testAccount(ownerID)

	query := `
			INSERT INTO accounts \(id, name, owner_kind, owner_id, namespace, currency, status, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9\)
		`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(acc.ID, acc.Name, acc.OwnerKind, &ownerID, acc.Namespace, acc.Currency, acc.Status, acc.CreatedAt, acc.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, acc)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ownerless account stores NULL owner", func(t *testing.T) {
		office := testAccount(uuid.Nil)
		office.OwnerKind = shared.OwnerKindNone

		mock.ExpectExec(query).
			WithArgs(office.ID, office.Name, office.OwnerKind, (*uuid.UUID)(nil), office.Namespace, office.Currency, office.Status, office.CreatedAt, office.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, office)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).
			WithArgs(acc.ID, acc.Name, acc.OwnerKind, &ownerID, acc.Namespace, acc.Currency, acc.Status, acc.CreatedAt, acc.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, acc)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create account")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	ownerID := uuid.New()
	expectedAccount := testAccount(ownerID)
	accID := expectedAccount.ID

	query := `SELECT id, name, owner_kind, owner_id, namespace, currency, status, created_at, updated_at FROM accounts WHERE id = \$1`

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "name", "owner_kind", "owner_id", "namespace", "currency", "status", "created_at", "updated_at"}).
			AddRow(expectedAccount.ID, expectedAccount.Name, expectedAccount.OwnerKind, &ownerID, expectedAccount.Namespace, expectedAccount.Currency, expectedAccount.Status, expectedAccount.CreatedAt, expectedAccount.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(accID).WillReturnRows(rows)

		acc, err := repo.GetByID(ctx, accID)
		assert.NoError(t, err)
		assert.Equal(t, expectedAccount, acc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(accID).WillReturnError(pgx.ErrNoRows)

		acc, err := repo.GetByID(ctx, accID)
		assert.Error(t, err)
		assert.Nil(t, acc)
		var accNotFoundErr account.ErrAccountNotFound
		assert.ErrorAs(t, err, &accNotFoundErr)
		assert.Equal(t, accID, accNotFoundErr.AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("some db error")
		mock.ExpectQuery(query).WithArgs(accID).WillReturnError(dbErr)

		acc, err := repo.GetByID(ctx, accID)
		assert.Error(t, err)
		assert.Nil(t, acc)
		assert.Contains(t, err.Error(), "failed to get account")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	ownerID := uuid.New()

	query := `SELECT id, name, owner_kind, owner_id, namespace, currency, status, created_at, updated_at FROM accounts WHERE owner_kind = \$1 AND owner_id = \$2 ORDER BY created_at`

	t.Run("success", func(t *testing.T) {
		main := testAccount(ownerID)
		rented := testAccount(ownerID)
		rented.Namespace = shared.NamespaceRented

		rows := pgxmock.NewRows([]string{"id", "name", "owner_kind", "owner_id", "namespace", "currency", "status", "created_at", "updated_at"}).
			AddRow(main.ID, main.Name, main.OwnerKind, &ownerID, main.Namespace, main.Currency, main.Status, main.CreatedAt, main.UpdatedAt).
			AddRow(rented.ID, rented.Name, rented.OwnerKind, &ownerID, rented.Namespace, rented.Currency, rented.Status, rented.CreatedAt, rented.UpdatedAt)
		mock.ExpectQuery(query).WithArgs(shared.OwnerKindCustomer, ownerID).WillReturnRows(rows)

		accounts, err := repo.ListByOwner(ctx, shared.OwnerKindCustomer, ownerID)
		assert.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, shared.NamespaceMain, accounts[0].Namespace)
		assert.Equal(t, shared.NamespaceRented, accounts[1].Namespace)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("list db error")
		mock.ExpectQuery(query).WithArgs(shared.OwnerKindCustomer, ownerID).WillReturnError(dbErr)

		accounts, err := repo.ListByOwner(ctx, shared.OwnerKindCustomer, ownerID)
		assert.Error(t, err)
		assert.Nil(t, accounts)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_Update(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &AccountRepository{querier: mock, logger: logger}
	ownerID := uuid.New()
	acc := testAccount(ownerID)
	acc.Status = account.StatusInactive

	query := `
			UPDATE accounts
			SET name = \$1, owner_kind = \$2, owner_id = \$3, namespace = \$4, currency = \$5, status = \$6, updated_at = \$7
			WHERE id = \$8
		`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(acc.Name, acc.OwnerKind, &ownerID, acc.Namespace, acc.Currency, acc.Status, acc.UpdatedAt, acc.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(ctx, acc)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(acc.Name, acc.OwnerKind, &ownerID, acc.Namespace, acc.Currency, acc.Status, acc.UpdatedAt, acc.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Update(ctx, acc)
		assert.Error(t, err)
		var accNotFoundErr account.ErrAccountNotFound
		assert.ErrorAs(t, err, &accNotFoundErr)
		assert.Equal(t, acc.ID, accNotFoundErr.AccountID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("update db error")
		mock.ExpectExec(query).
			WithArgs(acc.Name, acc.OwnerKind, &ownerID, acc.Namespace, acc.Currency, acc.Status, acc.UpdatedAt, acc.ID).
			WillReturnError(dbErr)

		err := repo.Update(ctx, acc)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update account")
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_WithTx(t *testing.T) {
	logger := newTestLogger()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	originalRepo := &AccountRepository{querier: mockPool, logger: logger}

	mockPool.ExpectBegin()
	pgxTx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	txRepo := originalRepo.WithTx(pgxTx)

	assert.NotNil(t, txRepo)
	assert.Equal(t, originalRepo.logger, txRepo.(*AccountRepository).logger)
	assert.Equal(t, pgxTx, txRepo.(*AccountRepository).querier, "Querier in new repo should be the transaction")

	assert.NoError(t, mockPool.ExpectationsWereMet())
}
