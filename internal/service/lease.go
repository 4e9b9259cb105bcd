package service

import (
	"context"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type leaseService struct {
	leaseRepo   repository.LeaseRepository
	roomRepo    repository.RoomRepository
	tenantRepo  repository.TenantRepository
	expenseRepo repository.ExpenseRepository
}

func NewLeaseService(
	leaseRepo repository.LeaseRepository,
	roomRepo repository.RoomRepository,
	tenantRepo repository.TenantRepository,
	expenseRepo repository.ExpenseRepository,
) LeaseService {
	return &leaseService{
		leaseRepo:   leaseRepo,
		roomRepo:    roomRepo,
		tenantRepo:  tenantRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *leaseService) CreateLease(ctx context.Context, actor domain.Actor, l *domain.Lease) error {
	if err := authorize(actor, OpCreateLease); err != nil {
		return err
	}
	if l.EndDate.Before(l.StartDate) {
		return domain.NewInvalidInput("end date must not be before start date")
	}
	if l.MonthlyRent.IsNegative() || l.Deposit.IsNegative() || l.ExpenseTariff.IsNegative() {
		return domain.NewInvalidInput("rent, deposit and expense tariff must not be negative")
	}
	if _, err := s.roomRepo.GetByID(ctx, l.RoomID); err != nil {
		return err
	}
	tenant, err := s.tenantRepo.GetByID(ctx, l.TenantID)
	if err != nil {
		return err
	}
	if !tenant.Active {
		return domain.NewInvalidInput("tenant %s is not active", l.TenantID)
	}

	l.Status = domain.LeaseStatusActive
	l.Settlement = domain.DepositSettlement{Status: domain.SettlementStatusPending}
	// The repository re-validates "no active lease for this room" inside
	// the insert transaction, under a lock on the room row.
	return s.leaseRepo.Create(ctx, l)
}

func (s *leaseService) GetLease(ctx context.Context, id string) (*domain.Lease, error) {
	return s.leaseRepo.GetByID(ctx, id)
}

func (s *leaseService) ListLeases(ctx context.Context, filter domain.LeaseFilter) ([]domain.Lease, error) {
	return s.leaseRepo.List(ctx, filter)
}

func (s *leaseService) UpdateLease(ctx context.Context, actor domain.Actor, leaseID string, upd LeaseUpdate) (*domain.Lease, error) {
	if err := authorize(actor, OpCreateLease); err != nil {
		return nil, err
	}
	l, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if upd.EndDate != nil {
		if upd.EndDate.Before(l.StartDate) {
			return nil, domain.NewInvalidInput("end date must not be before start date")
		}
		l.EndDate = *upd.EndDate
	}
	if upd.MonthlyRent != nil {
		if upd.MonthlyRent.IsNegative() {
			return nil, domain.NewInvalidInput("monthly rent must not be negative")
		}
		l.MonthlyRent = *upd.MonthlyRent
	}
	if upd.Archived != nil {
		l.Archived = *upd.Archived
	}
	if err := s.leaseRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// FinishLease is one-way. It records the deposit settlement from the
// deposit balance at this moment: full when nothing was deducted, partial
// when something was, never negative.
func (s *leaseService) FinishLease(ctx context.Context, actor domain.Actor, leaseID string) (*domain.Lease, error) {
	if err := authorize(actor, OpCreateLease); err != nil {
		return nil, err
	}
	l, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if l.Status == domain.LeaseStatusFinished {
		return nil, domain.NewConflict("lease %s is already finished", leaseID)
	}

	deducted, err := s.expenseRepo.SumDeductibleByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	balance := l.Deposit.Sub(deducted)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	now := time.Now().UTC()
	l.Status = domain.LeaseStatusFinished
	l.Settlement.AmountToReturn = &balance
	l.Settlement.SettledOn = &now
	if deducted.IsZero() {
		l.Settlement.Status = domain.SettlementStatusReturnedFull
	} else {
		l.Settlement.Status = domain.SettlementStatusReturnedPartial
	}

	if err := s.leaseRepo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Occupancy is computed fresh from lease rows on every call.
func (s *leaseService) Occupancy(ctx context.Context, roomID string) (*domain.Occupancy, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	lease, err := s.leaseRepo.GetActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	occ := &domain.Occupancy{RoomID: roomID}
	if lease == nil {
		return occ, nil
	}
	tenant, err := s.tenantRepo.GetByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}
	occ.Occupied = true
	occ.Lease = lease
	occ.Tenant = tenant
	return occ, nil
}
