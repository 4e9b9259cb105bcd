package postgres_test

import (
	"context"
	"testing"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		leaseID := "lease-1"
		p := &domain.Payment{
			LeaseID:   &leaseID,
			MonthYear: "2024-03",
			Type:      domain.PaymentTypeRent,
			Amount:    decimal.NewFromInt(400),
			Method:    domain.PaymentMethodCash,
			Status:    domain.PaymentStatusPending,
			CreatedBy: "u1",
		}

		mock.ExpectExec("INSERT INTO payments").
			WithArgs(sqlmock.AnyArg(), &leaseID, "2024-03", string(domain.PaymentTypeRent),
				sqlmock.AnyArg(), string(domain.PaymentMethodCash), string(domain.PaymentStatusPending),
				nil, "u1", nil, sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_MarkOverdueUpTo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("FlipsUnpaidRentAndExpenses", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments SET status").
			WithArgs(string(domain.PaymentStatusOverdue), sqlmock.AnyArg(),
				pq.Array([]string{string(domain.PaymentStatusPending), string(domain.PaymentStatusInReview)}),
				pq.Array([]string{string(domain.PaymentTypeRent), string(domain.PaymentTypeExpenses)}),
				"2024-01").
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := repo.MarkOverdueUpTo(ctx, "2024-01")
		assert.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments SET amount").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "p-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &domain.Payment{ID: "p-missing", Amount: decimal.NewFromInt(400)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
