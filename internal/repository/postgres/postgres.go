package postgres

import (
	"database/sql"
	"errors"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BuildingRepository
	repository.RoomRepository
	repository.TenantRepository
	repository.LeaseRepository
	repository.PaymentRepository
	repository.ExpenseRepository
	repository.UserRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		BuildingRepository: NewBuildingRepository(db),
		RoomRepository:     NewRoomRepository(db),
		TenantRepository:   NewTenantRepository(db),
		LeaseRepository:    NewLeaseRepository(db),
		PaymentRepository:  NewPaymentRepository(db),
		ExpenseRepository:  NewExpenseRepository(db),
		UserRepository:     NewUserRepository(db),
		SettingsRepository: NewSettingsRepository(db),
	}
}

// notFoundOr maps sql.ErrNoRows to the domain taxonomy so services never see
// driver-level sentinels.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound(format, args...)
	}
	return err
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (class 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
