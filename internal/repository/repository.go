package repository

import (
	"context"
	"time"

	"roomledger-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type BuildingRepository interface {
	Create(ctx context.Context, b *domain.Building) error
	GetByID(ctx context.Context, id string) (*domain.Building, error)
	List(ctx context.Context) ([]domain.Building, error)
	Update(ctx context.Context, b *domain.Building) error
	Delete(ctx context.Context, id string) error
}

type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	// List returns all rooms, or only the rooms of one building when
	// buildingID is non-empty. Insertion order, stable.
	List(ctx context.Context, buildingID string) ([]domain.Room, error)
	Update(ctx context.Context, r *domain.Room) error
	Delete(ctx context.Context, id string) error
	CountByBuilding(ctx context.Context, buildingID string) (int, error)
	Count(ctx context.Context) (int, error)
}

type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error)
	// List filters by a case-insensitive substring over name, email, phone
	// and national id when search is non-empty, and by the active flag when
	// active is non-nil. Insertion order, stable.
	List(ctx context.Context, search string, active *bool) ([]domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
}

type LeaseRepository interface {
	// Create inserts the lease inside one transaction that re-validates
	// "no active lease for this room" under a row lock on the room, with a
	// partial unique index on (room_id) WHERE status='active' as backstop.
	// Returns a domain.ErrConflict error when the room already has an
	// active lease.
	Create(ctx context.Context, l *domain.Lease) error
	GetByID(ctx context.Context, id string) (*domain.Lease, error)
	// GetActiveByRoom returns nil, nil when the room is vacant.
	GetActiveByRoom(ctx context.Context, roomID string) (*domain.Lease, error)
	List(ctx context.Context, filter domain.LeaseFilter) ([]domain.Lease, error)
	Update(ctx context.Context, l *domain.Lease) error
	CountByRoom(ctx context.Context, roomID string) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountActiveEndingBefore(ctx context.Context, t time.Time) (int, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id string) error
	// MarkOverdueUpTo flips every pending or in_review rent or expenses
	// payment whose month bucket is <= bucket to overdue. Deposit movements
	// are never swept. Idempotent. Returns rows affected.
	MarkOverdueUpTo(ctx context.Context, bucket string) (int64, error)
	SumByStatusAndMonth(ctx context.Context, status domain.PaymentStatus, bucket string) (decimal.Decimal, error)
	CountByStatuses(ctx context.Context, statuses []domain.PaymentStatus) (int, error)
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	// List returns all expenses, or only one lease's when leaseID is non-empty.
	List(ctx context.Context, leaseID string) ([]domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id string) error
	SumDeductibleByLease(ctx context.Context, leaseID string) (decimal.Decimal, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) error
	// EnsureDefaults inserts the singleton row if it does not exist yet.
	EnsureDefaults(ctx context.Context, s *domain.Settings) error
}
