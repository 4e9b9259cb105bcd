package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLeaseRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLeaseRepository(db)
	ctx := context.Background()

	newLease := func() *domain.Lease {
		return &domain.Lease{
			RoomID:      "room-1",
			TenantID:    "tenant-1",
			StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			MonthlyRent: decimal.NewFromInt(400),
			Deposit:     decimal.NewFromInt(500),
			Status:      domain.LeaseStatusActive,
			Settlement:  domain.DepositSettlement{Status: domain.SettlementStatusPending},
		}
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT id FROM leases").
			WithArgs("room-1", string(domain.LeaseStatusActive)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO leases").
			WithArgs(sqlmock.AnyArg(), "room-1", "tenant-1", sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), false,
				string(domain.LeaseStatusActive), false, string(domain.SettlementStatusPending),
				nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		lease := newLease()
		err := repo.Create(ctx, lease)
		assert.NoError(t, err)
		assert.NotEmpty(t, lease.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RoomAlreadyLeased", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("room-1"))
		mock.ExpectQuery("SELECT id FROM leases").
			WithArgs("room-1", string(domain.LeaseStatusActive)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("lease-existing"))
		mock.ExpectRollback()

		err := repo.Create(ctx, newLease())
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RoomMissing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM rooms").
			WithArgs("room-1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.Create(ctx, newLease())
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaseRepository_GetActiveByRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLeaseRepository(db)
	ctx := context.Background()

	t.Run("NoActiveLease", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM leases WHERE room_id").
			WithArgs("room-1", string(domain.LeaseStatusActive)).
			WillReturnError(sql.ErrNoRows)

		lease, err := repo.GetActiveByRoom(ctx, "room-1")
		assert.NoError(t, err)
		assert.Nil(t, lease)
	})
}
