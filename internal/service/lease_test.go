package service

import (
	"context"
	"testing"
	"time"

	"roomledger-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newLeaseFixture(start, end string) *domain.Lease {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return &domain.Lease{
		RoomID:        "room-101",
		TenantID:      "tenant-1",
		StartDate:     s,
		EndDate:       e,
		MonthlyRent:   decimal.NewFromInt(400),
		Deposit:       decimal.NewFromInt(500),
		ExpenseTariff: decimal.NewFromInt(50),
	}
}

func TestLeaseService_CreateLease(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "u1", Role: domain.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		roomRepo := new(MockRoomRepo)
		tenantRepo := new(MockTenantRepo)
		svc := NewLeaseService(leaseRepo, roomRepo, tenantRepo, new(MockExpenseRepo))

		roomRepo.On("GetByID", ctx, "room-101").Return(&domain.Room{ID: "room-101"}, nil)
		tenantRepo.On("GetByID", ctx, "tenant-1").Return(&domain.Tenant{ID: "tenant-1", Active: true}, nil)
		leaseRepo.On("Create", ctx, mock.AnythingOfType("*domain.Lease")).Return(nil)

		l := newLeaseFixture("2024-01-01", "2024-12-31")
		err := svc.CreateLease(ctx, admin, l)
		assert.NoError(t, err)
		assert.Equal(t, domain.LeaseStatusActive, l.Status)
		assert.Equal(t, domain.SettlementStatusPending, l.Settlement.Status)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		svc := NewLeaseService(new(MockLeaseRepo), new(MockRoomRepo), new(MockTenantRepo), new(MockExpenseRepo))

		l := newLeaseFixture("2024-12-31", "2024-01-01")
		err := svc.CreateLease(ctx, admin, l)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("RoomOccupied", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		roomRepo := new(MockRoomRepo)
		tenantRepo := new(MockTenantRepo)
		svc := NewLeaseService(leaseRepo, roomRepo, tenantRepo, new(MockExpenseRepo))

		roomRepo.On("GetByID", ctx, "room-101").Return(&domain.Room{ID: "room-101"}, nil)
		tenantRepo.On("GetByID", ctx, "tenant-1").Return(&domain.Tenant{ID: "tenant-1", Active: true}, nil)
		leaseRepo.On("Create", ctx, mock.AnythingOfType("*domain.Lease")).
			Return(domain.NewConflict("room room-101 already has an active lease"))

		err := svc.CreateLease(ctx, admin, newLeaseFixture("2024-06-01", "2025-05-31"))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("InactiveTenant", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		roomRepo := new(MockRoomRepo)
		tenantRepo := new(MockTenantRepo)
		svc := NewLeaseService(leaseRepo, roomRepo, tenantRepo, new(MockExpenseRepo))

		roomRepo.On("GetByID", ctx, "room-101").Return(&domain.Room{ID: "room-101"}, nil)
		tenantRepo.On("GetByID", ctx, "tenant-1").Return(&domain.Tenant{ID: "tenant-1", Active: false}, nil)

		err := svc.CreateLease(ctx, admin, newLeaseFixture("2024-01-01", "2024-12-31"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		leaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CollectionsForbidden", func(t *testing.T) {
		svc := NewLeaseService(new(MockLeaseRepo), new(MockRoomRepo), new(MockTenantRepo), new(MockExpenseRepo))

		err := svc.CreateLease(ctx, domain.Actor{ID: "u2", Role: domain.RoleCollections}, newLeaseFixture("2024-01-01", "2024-12-31"))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestLeaseService_FinishLease(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "u1", Role: domain.RoleAdmin}

	t.Run("PartialSettlement", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		expenseRepo := new(MockExpenseRepo)
		svc := NewLeaseService(leaseRepo, new(MockRoomRepo), new(MockTenantRepo), expenseRepo)

		lease := newLeaseFixture("2024-01-01", "2024-12-31")
		lease.ID = "lease-1"
		lease.Status = domain.LeaseStatusActive
		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)
		expenseRepo.On("SumDeductibleByLease", ctx, "lease-1").Return(decimal.NewFromInt(50), nil)
		leaseRepo.On("Update", ctx, lease).Return(nil)

		out, err := svc.FinishLease(ctx, admin, "lease-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.LeaseStatusFinished, out.Status)
		assert.Equal(t, domain.SettlementStatusReturnedPartial, out.Settlement.Status)
		assert.True(t, out.Settlement.AmountToReturn.Equal(decimal.NewFromInt(450)))
		assert.NotNil(t, out.Settlement.SettledOn)
	})

	t.Run("FullSettlement", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		expenseRepo := new(MockExpenseRepo)
		svc := NewLeaseService(leaseRepo, new(MockRoomRepo), new(MockTenantRepo), expenseRepo)

		lease := newLeaseFixture("2024-01-01", "2024-12-31")
		lease.ID = "lease-1"
		lease.Status = domain.LeaseStatusActive
		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)
		expenseRepo.On("SumDeductibleByLease", ctx, "lease-1").Return(decimal.Zero, nil)
		leaseRepo.On("Update", ctx, lease).Return(nil)

		out, err := svc.FinishLease(ctx, admin, "lease-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.SettlementStatusReturnedFull, out.Settlement.Status)
		assert.True(t, out.Settlement.AmountToReturn.Equal(decimal.NewFromInt(500)))
	})

	t.Run("AlreadyFinished", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo, new(MockRoomRepo), new(MockTenantRepo), new(MockExpenseRepo))

		lease := newLeaseFixture("2024-01-01", "2024-12-31")
		lease.ID = "lease-1"
		lease.Status = domain.LeaseStatusFinished
		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)

		_, err := svc.FinishLease(ctx, admin, "lease-1")
		assert.ErrorIs(t, err, domain.ErrConflict)
		leaseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("NegativeBalanceClampedToZero", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		expenseRepo := new(MockExpenseRepo)
		svc := NewLeaseService(leaseRepo, new(MockRoomRepo), new(MockTenantRepo), expenseRepo)

		lease := newLeaseFixture("2024-01-01", "2024-12-31")
		lease.ID = "lease-1"
		lease.Status = domain.LeaseStatusActive
		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)
		expenseRepo.On("SumDeductibleByLease", ctx, "lease-1").Return(decimal.NewFromInt(900), nil)
		leaseRepo.On("Update", ctx, lease).Return(nil)

		out, err := svc.FinishLease(ctx, admin, "lease-1")
		assert.NoError(t, err)
		assert.True(t, out.Settlement.AmountToReturn.IsZero())
	})
}

func TestLeaseService_Occupancy(t *testing.T) {
	ctx := context.Background()

	t.Run("Occupied", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		roomRepo := new(MockRoomRepo)
		tenantRepo := new(MockTenantRepo)
		svc := NewLeaseService(leaseRepo, roomRepo, tenantRepo, new(MockExpenseRepo))

		lease := newLeaseFixture("2024-01-01", "2024-12-31")
		lease.ID = "lease-1"
		roomRepo.On("GetByID", ctx, "room-101").Return(&domain.Room{ID: "room-101"}, nil)
		leaseRepo.On("GetActiveByRoom", ctx, "room-101").Return(lease, nil)
		tenantRepo.On("GetByID", ctx, "tenant-1").Return(&domain.Tenant{ID: "tenant-1", Active: true}, nil)

		occ, err := svc.Occupancy(ctx, "room-101")
		assert.NoError(t, err)
		assert.True(t, occ.Occupied)
		assert.Equal(t, "lease-1", occ.Lease.ID)
		assert.Equal(t, "tenant-1", occ.Tenant.ID)
	})

	t.Run("Vacant", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		roomRepo := new(MockRoomRepo)
		svc := NewLeaseService(leaseRepo, roomRepo, new(MockTenantRepo), new(MockExpenseRepo))

		roomRepo.On("GetByID", ctx, "room-101").Return(&domain.Room{ID: "room-101"}, nil)
		leaseRepo.On("GetActiveByRoom", ctx, "room-101").Return(nil, nil)

		occ, err := svc.Occupancy(ctx, "room-101")
		assert.NoError(t, err)
		assert.False(t, occ.Occupied)
		assert.Nil(t, occ.Lease)
	})
}
