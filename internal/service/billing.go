package service

import (
	"context"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/logger"
	"roomledger-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type billingService struct {
	paymentRepo  repository.PaymentRepository
	expenseRepo  repository.ExpenseRepository
	leaseRepo    repository.LeaseRepository
	roomRepo     repository.RoomRepository
	buildingRepo repository.BuildingRepository
	tenantRepo   repository.TenantRepository
	email        EmailService
}

// NewBillingService wires the payment and expense ledger. email may be nil;
// approval then skips the receipt mail.
func NewBillingService(
	paymentRepo repository.PaymentRepository,
	expenseRepo repository.ExpenseRepository,
	leaseRepo repository.LeaseRepository,
	roomRepo repository.RoomRepository,
	buildingRepo repository.BuildingRepository,
	tenantRepo repository.TenantRepository,
	email EmailService,
) BillingService {
	return &billingService{
		paymentRepo:  paymentRepo,
		expenseRepo:  expenseRepo,
		leaseRepo:    leaseRepo,
		roomRepo:     roomRepo,
		buildingRepo: buildingRepo,
		tenantRepo:   tenantRepo,
		email:        email,
	}
}

// CreatePayment starts the workflow. Payments created by the collections
// role always enter in_review; everyone else starts at pending.
func (s *billingService) CreatePayment(ctx context.Context, actor domain.Actor, p *domain.Payment) error {
	if err := authorize(actor, OpCreatePayment); err != nil {
		return err
	}
	if !p.Amount.IsPositive() {
		return domain.NewInvalidInput("payment amount must be positive")
	}
	if _, err := domain.ParseMonth(p.MonthYear); err != nil {
		return err
	}
	switch p.Type {
	case domain.PaymentTypeRent, domain.PaymentTypeExpenses,
		domain.PaymentTypeDepositCollected, domain.PaymentTypeDepositReturned:
	default:
		return domain.NewInvalidInput("unknown payment type %q", p.Type)
	}
	switch p.Method {
	case domain.PaymentMethodCash, domain.PaymentMethodTransfer,
		domain.PaymentMethodCard, domain.PaymentMethodOther:
	default:
		return domain.NewInvalidInput("unknown payment method %q", p.Method)
	}
	if p.LeaseID == nil || *p.LeaseID == "" {
		return domain.NewInvalidInput("payment requires a lease")
	}
	if _, err := s.leaseRepo.GetByID(ctx, *p.LeaseID); err != nil {
		return err
	}

	if actor.Role == domain.RoleCollections {
		p.Status = domain.PaymentStatusInReview
	} else {
		p.Status = domain.PaymentStatusPending
	}
	p.CreatedBy = actor.ID
	p.ReviewedBy = nil
	p.Amount = p.Amount.Round(2)
	return s.paymentRepo.Create(ctx, p)
}

func (s *billingService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *billingService) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx, filter)
}

func (s *billingService) UpdatePayment(ctx context.Context, actor domain.Actor, paymentID string, upd PaymentUpdate) (*domain.Payment, error) {
	if err := authorize(actor, OpCreatePayment); err != nil {
		return nil, err
	}
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.PaymentStatusPaid {
		return nil, domain.NewConflict("payment %s is already paid", paymentID)
	}
	if upd.Method != nil {
		switch *upd.Method {
		case domain.PaymentMethodCash, domain.PaymentMethodTransfer,
			domain.PaymentMethodCard, domain.PaymentMethodOther:
		default:
			return nil, domain.NewInvalidInput("unknown payment method %q", *upd.Method)
		}
		p.Method = *upd.Method
	}
	if upd.PaymentDate != nil {
		p.PaymentDate = upd.PaymentDate
	}
	if upd.Notes != nil {
		p.Notes = *upd.Notes
	}
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApprovePayment moves pending or in_review to paid. Paid is terminal.
func (s *billingService) ApprovePayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	if err := authorize(actor, OpReviewPayment); err != nil {
		return nil, err
	}
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	switch p.Status {
	case domain.PaymentStatusPending, domain.PaymentStatusInReview, domain.PaymentStatusOverdue:
	default:
		return nil, domain.NewConflict("payment %s cannot be approved from status %s", paymentID, p.Status)
	}

	now := time.Now().UTC()
	p.Status = domain.PaymentStatusPaid
	p.ReviewedBy = &actor.ID
	if p.PaymentDate == nil {
		p.PaymentDate = &now
	}
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.sendReceipt(ctx, *p)
	return p, nil
}

// sendReceipt mails the tenant after an approval. Best effort: a mail failure
// never undoes the approval.
func (s *billingService) sendReceipt(ctx context.Context, p domain.Payment) {
	if s.email == nil {
		return
	}
	e, err := s.enrich(ctx, p)
	if err != nil {
		logger.Error("Failed to resolve payment for receipt", "payment_id", p.ID, "error", err)
		return
	}
	if e.Tenant == nil || e.Tenant.Email == "" {
		return
	}
	if err := s.email.SendPaymentReceipt(ctx, e.Tenant.Email, e.Tenant.Name, p.MonthYear, p.Amount); err != nil {
		logger.Error("Failed to send payment receipt", "payment_id", p.ID, "error", err)
	}
}

// RejectPayment sends an in_review payment back to pending.
func (s *billingService) RejectPayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error) {
	if err := authorize(actor, OpReviewPayment); err != nil {
		return nil, err
	}
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PaymentStatusInReview {
		return nil, domain.NewConflict("payment %s cannot be rejected from status %s", paymentID, p.Status)
	}

	p.Status = domain.PaymentStatusPending
	p.ReviewedBy = &actor.ID
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *billingService) DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) error {
	if err := authorize(actor, OpDeleteBilling); err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, paymentID)
}

func (s *billingService) GetEnrichedPayment(ctx context.Context, paymentID string) (*domain.EnrichedPayment, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, *p)
}

func (s *billingService) ListEnrichedPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.EnrichedPayment, error) {
	payments, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, payments)
}

// PendingByMonth is the collections view: rent payments not yet paid for one
// month bucket, enriched so the caller can resolve tenant and room.
func (s *billingService) PendingByMonth(ctx context.Context, bucket string) ([]domain.EnrichedPayment, error) {
	if _, err := domain.ParseMonth(bucket); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.List(ctx, domain.PaymentFilter{
		Type:      domain.PaymentTypeRent,
		MonthYear: bucket,
	})
	if err != nil {
		return nil, err
	}
	unpaid := payments[:0]
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentStatusPending, domain.PaymentStatusInReview, domain.PaymentStatusOverdue:
			unpaid = append(unpaid, p)
		}
	}
	return s.enrichAll(ctx, unpaid)
}

func (s *billingService) enrichAll(ctx context.Context, payments []domain.Payment) ([]domain.EnrichedPayment, error) {
	out := make([]domain.EnrichedPayment, 0, len(payments))
	for _, p := range payments {
		e, err := s.enrich(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// enrich joins the payment with its lease, room, building and tenant. The
// projection tolerates a missing lease reference; it never invents one.
func (s *billingService) enrich(ctx context.Context, p domain.Payment) (*domain.EnrichedPayment, error) {
	e := &domain.EnrichedPayment{Payment: p}
	if p.LeaseID == nil || *p.LeaseID == "" {
		return e, nil
	}
	lease, err := s.leaseRepo.GetByID(ctx, *p.LeaseID)
	if err != nil {
		return nil, err
	}
	e.Lease = lease

	room, err := s.roomRepo.GetByID(ctx, lease.RoomID)
	if err != nil {
		return nil, err
	}
	e.Room = room

	building, err := s.buildingRepo.GetByID(ctx, room.BuildingID)
	if err != nil {
		return nil, err
	}
	e.Building = building

	tenant, err := s.tenantRepo.GetByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}
	e.Tenant = tenant
	return e, nil
}

func (s *billingService) CreateExpense(ctx context.Context, actor domain.Actor, e *domain.Expense) error {
	if err := authorize(actor, OpManageExpenses); err != nil {
		return err
	}
	if !e.Amount.IsPositive() {
		return domain.NewInvalidInput("expense amount must be positive")
	}
	if e.Concept == "" {
		return domain.NewInvalidInput("expense concept is required")
	}
	if _, err := s.leaseRepo.GetByID(ctx, e.LeaseID); err != nil {
		return err
	}
	e.Amount = e.Amount.Round(2)
	return s.expenseRepo.Create(ctx, e)
}

func (s *billingService) ListExpenses(ctx context.Context, leaseID string) ([]domain.Expense, error) {
	return s.expenseRepo.List(ctx, leaseID)
}

func (s *billingService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, upd ExpenseUpdate) (*domain.Expense, error) {
	if err := authorize(actor, OpManageExpenses); err != nil {
		return nil, err
	}
	e, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if upd.Date != nil {
		e.Date = *upd.Date
	}
	if upd.Concept != nil {
		if *upd.Concept == "" {
			return nil, domain.NewInvalidInput("expense concept is required")
		}
		e.Concept = *upd.Concept
	}
	if upd.Amount != nil {
		if !upd.Amount.IsPositive() {
			return nil, domain.NewInvalidInput("expense amount must be positive")
		}
		e.Amount = upd.Amount.Round(2)
	}
	if upd.DeductFromDeposit != nil {
		e.DeductFromDeposit = *upd.DeductFromDeposit
	}
	if err := s.expenseRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *billingService) DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	if err := authorize(actor, OpDeleteBilling); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, expenseID)
}

// DepositBalance = deposit - sum of deduct-from-deposit expenses. Computed
// fresh on every call.
func (s *billingService) DepositBalance(ctx context.Context, leaseID string) (decimal.Decimal, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return decimal.Zero, err
	}
	deducted, err := s.expenseRepo.SumDeductibleByLease(ctx, leaseID)
	if err != nil {
		return decimal.Zero, err
	}
	return lease.Deposit.Sub(deducted), nil
}
