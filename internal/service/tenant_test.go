package service

import (
	"context"
	"testing"

	"roomledger-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTenantService_CreateTenant(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "u1", Role: domain.RoleAdmin}

	t.Run("Success", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		svc := NewTenantService(tenantRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		tenantRepo.On("GetByNationalID", ctx, "12345678A").Return(nil, domain.NewNotFound("no such tenant"))
		tenantRepo.On("Create", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)

		tenant := &domain.Tenant{Name: "Maria", NationalID: "12345678A"}
		err := svc.CreateTenant(ctx, admin, tenant)
		assert.NoError(t, err)
		assert.True(t, tenant.Active)
	})

	t.Run("DuplicateNationalID", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		svc := NewTenantService(tenantRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		tenantRepo.On("GetByNationalID", ctx, "12345678A").
			Return(&domain.Tenant{ID: "t-1", NationalID: "12345678A"}, nil)

		err := svc.CreateTenant(ctx, admin, &domain.Tenant{Name: "Maria", NationalID: "12345678A"})
		assert.ErrorIs(t, err, domain.ErrConflict)
		tenantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CollectionsForbidden", func(t *testing.T) {
		svc := NewTenantService(new(MockTenantRepo), new(MockLeaseRepo), new(MockPaymentRepo))

		err := svc.CreateTenant(ctx, domain.Actor{ID: "u2", Role: domain.RoleCollections}, &domain.Tenant{Name: "Maria"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestTenantService_UpdateTenant(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "u1", Role: domain.RoleAdmin}

	t.Run("NationalIDWriteOnce", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		svc := NewTenantService(tenantRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		tenantRepo.On("GetByID", ctx, "t-1").
			Return(&domain.Tenant{ID: "t-1", Name: "Maria", NationalID: "12345678A"}, nil)

		err := svc.UpdateTenant(ctx, admin, &domain.Tenant{ID: "t-1", Name: "Maria", NationalID: "99999999Z"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		tenantRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("EmptyNationalIDKeepsCurrent", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		svc := NewTenantService(tenantRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		tenantRepo.On("GetByID", ctx, "t-1").
			Return(&domain.Tenant{ID: "t-1", Name: "Maria", NationalID: "12345678A"}, nil)
		tenantRepo.On("Update", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)

		upd := &domain.Tenant{ID: "t-1", Name: "Maria Lopez", Active: true}
		err := svc.UpdateTenant(ctx, admin, upd)
		assert.NoError(t, err)
		assert.Equal(t, "12345678A", upd.NationalID)
	})

	t.Run("SetNationalIDWhenUnset", func(t *testing.T) {
		tenantRepo := new(MockTenantRepo)
		svc := NewTenantService(tenantRepo, new(MockLeaseRepo), new(MockPaymentRepo))

		tenantRepo.On("GetByID", ctx, "t-1").
			Return(&domain.Tenant{ID: "t-1", Name: "Maria"}, nil)
		tenantRepo.On("GetByNationalID", ctx, "12345678A").Return(nil, domain.NewNotFound("no such tenant"))
		tenantRepo.On("Update", ctx, mock.AnythingOfType("*domain.Tenant")).Return(nil)

		err := svc.UpdateTenant(ctx, admin, &domain.Tenant{ID: "t-1", Name: "Maria", NationalID: "12345678A", Active: true})
		assert.NoError(t, err)
	})
}

func TestTenantService_GetTenantDetail(t *testing.T) {
	ctx := context.Background()

	tenantRepo := new(MockTenantRepo)
	leaseRepo := new(MockLeaseRepo)
	paymentRepo := new(MockPaymentRepo)
	svc := NewTenantService(tenantRepo, leaseRepo, paymentRepo)

	tenantRepo.On("GetByID", ctx, "t-1").Return(&domain.Tenant{ID: "t-1", Name: "Maria"}, nil)
	leaseRepo.On("List", ctx, domain.LeaseFilter{TenantID: "t-1"}).
		Return([]domain.Lease{{ID: "lease-1"}}, nil)
	paymentRepo.On("List", ctx, domain.PaymentFilter{TenantID: "t-1"}).
		Return([]domain.Payment{
			{ID: "p-1", Status: domain.PaymentStatusPaid, Amount: decimal.NewFromInt(400)},
			{ID: "p-2", Status: domain.PaymentStatusPaid, Amount: decimal.NewFromInt(400)},
			{ID: "p-3", Status: domain.PaymentStatusPending, Amount: decimal.NewFromInt(400)},
		}, nil)

	detail, err := svc.GetTenantDetail(ctx, "t-1")
	assert.NoError(t, err)
	assert.Len(t, detail.Leases, 1)
	assert.Len(t, detail.Payments, 3)
	assert.Equal(t, 2, detail.TotalsByStatus[domain.PaymentStatusPaid].Count)
	assert.True(t, detail.TotalsByStatus[domain.PaymentStatusPaid].Amount.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, 1, detail.TotalsByStatus[domain.PaymentStatusPending].Count)
}
