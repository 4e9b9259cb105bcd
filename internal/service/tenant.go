package service

import (
	"context"
	"errors"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"
)

type tenantService struct {
	tenantRepo  repository.TenantRepository
	leaseRepo   repository.LeaseRepository
	paymentRepo repository.PaymentRepository
}

func NewTenantService(
	tenantRepo repository.TenantRepository,
	leaseRepo repository.LeaseRepository,
	paymentRepo repository.PaymentRepository,
) TenantService {
	return &tenantService{
		tenantRepo:  tenantRepo,
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *tenantService) CreateTenant(ctx context.Context, actor domain.Actor, t *domain.Tenant) error {
	if err := authorize(actor, OpManageTenants); err != nil {
		return err
	}
	if t.Name == "" {
		return domain.NewInvalidInput("tenant name is required")
	}
	if t.NationalID != "" {
		existing, err := s.tenantRepo.GetByNationalID(ctx, t.NationalID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.NewConflict("a tenant with national id %s already exists", t.NationalID)
		}
	}
	t.Active = true
	return s.tenantRepo.Create(ctx, t)
}

func (s *tenantService) GetTenantDetail(ctx context.Context, id string) (*domain.TenantDetail, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	leases, err := s.leaseRepo.List(ctx, domain.LeaseFilter{TenantID: id})
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.List(ctx, domain.PaymentFilter{TenantID: id})
	if err != nil {
		return nil, err
	}

	totals := make(map[domain.PaymentStatus]domain.MoneyTotal)
	for _, p := range payments {
		t := totals[p.Status]
		t.Count++
		t.Amount = t.Amount.Add(p.Amount)
		totals[p.Status] = t
	}

	return &domain.TenantDetail{
		Tenant:         *tenant,
		Leases:         leases,
		Payments:       payments,
		TotalsByStatus: totals,
	}, nil
}

func (s *tenantService) ListTenants(ctx context.Context, search string, active *bool) ([]domain.Tenant, error) {
	return s.tenantRepo.List(ctx, search, active)
}

// UpdateTenant rejects changes to the national id once it is set.
func (s *tenantService) UpdateTenant(ctx context.Context, actor domain.Actor, t *domain.Tenant) error {
	if err := authorize(actor, OpManageTenants); err != nil {
		return err
	}
	if t.Name == "" {
		return domain.NewInvalidInput("tenant name is required")
	}
	current, err := s.tenantRepo.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if t.NationalID == "" {
		t.NationalID = current.NationalID
	}
	if current.NationalID != "" && t.NationalID != current.NationalID {
		return domain.NewInvalidInput("national id cannot be changed once set")
	}
	if current.NationalID == "" && t.NationalID != "" {
		existing, err := s.tenantRepo.GetByNationalID(ctx, t.NationalID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil && existing.ID != t.ID {
			return domain.NewConflict("a tenant with national id %s already exists", t.NationalID)
		}
	}
	return s.tenantRepo.Update(ctx, t)
}
