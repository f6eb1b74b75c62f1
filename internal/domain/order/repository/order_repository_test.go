package repository

import (
	"testing"

	"github.com/Bange254/Bttshoes/internal/domain/order/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestMarkPaid(t *testing.T) {
	details := model.PaymentDetails{
		TransactionID:      "NLJ7RT61SV",
		MpesaReceiptNumber: "NLJ7RT61SV",
		PhoneNumber:        "254712345678",
	}

	t.Run("Pending order is updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.MarkPaid("ws_CO_1", details)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already processed order returns ErrNotPending", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.MarkPaid("ws_CO_1", details)

		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestMarkFailed(t *testing.T) {
	t.Run("Unknown checkout id returns ErrNotPending", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.MarkFailed("ws_CO_unknown")

		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestAttachCheckoutRequest(t *testing.T) {
	t.Run("Only a pending order accepts the checkout id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WithArgs("ws_CO_1", sqlmock.AnyArg(), "BTT-000001-000001", model.PaymentPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.AttachCheckoutRequest("BTT-000001-000001", "ws_CO_1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
