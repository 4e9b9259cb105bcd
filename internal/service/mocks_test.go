package service

import (
	"context"
	"time"

	"roomledger-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockBuildingRepo
type MockBuildingRepo struct {
	mock.Mock
}

func (m *MockBuildingRepo) Create(ctx context.Context, b *domain.Building) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBuildingRepo) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Building), args.Error(1)
}
func (m *MockBuildingRepo) List(ctx context.Context) ([]domain.Building, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Building), args.Error(1)
}
func (m *MockBuildingRepo) Update(ctx context.Context, b *domain.Building) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBuildingRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) Create(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepo) List(ctx context.Context, buildingID string) ([]domain.Room, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomRepo) Update(ctx context.Context, r *domain.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRoomRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRoomRepo) CountByBuilding(ctx context.Context, buildingID string) (int, error) {
	args := m.Called(ctx, buildingID)
	return args.Int(0), args.Error(1)
}
func (m *MockRoomRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockTenantRepo
type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) GetByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) List(ctx context.Context, search string, active *bool) ([]domain.Tenant, error) {
	args := m.Called(ctx, search, active)
	return args.Get(0).([]domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockLeaseRepo
type MockLeaseRepo struct {
	mock.Mock
}

func (m *MockLeaseRepo) Create(ctx context.Context, l *domain.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockLeaseRepo) GetByID(ctx context.Context, id string) (*domain.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) GetActiveByRoom(ctx context.Context, roomID string) (*domain.Lease, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) List(ctx context.Context, filter domain.LeaseFilter) ([]domain.Lease, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) Update(ctx context.Context, l *domain.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockLeaseRepo) CountByRoom(ctx context.Context, roomID string) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}
func (m *MockLeaseRepo) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockLeaseRepo) CountActiveEndingBefore(ctx context.Context, t time.Time) (int, error) {
	args := m.Called(ctx, t)
	return args.Int(0), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPaymentRepo) MarkOverdueUpTo(ctx context.Context, bucket string) (int64, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) SumByStatusAndMonth(ctx context.Context, status domain.PaymentStatus, bucket string) (decimal.Decimal, error) {
	args := m.Called(ctx, status, bucket)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockPaymentRepo) CountByStatuses(ctx context.Context, statuses []domain.PaymentStatus) (int, error) {
	args := m.Called(ctx, statuses)
	return args.Int(0), args.Error(1)
}

// MockExpenseRepo
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) List(ctx context.Context, leaseID string) ([]domain.Expense, error) {
	args := m.Called(ctx, leaseID)
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockExpenseRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockExpenseRepo) SumDeductibleByLease(ctx context.Context, leaseID string) (decimal.Decimal, error) {
	args := m.Called(ctx, leaseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}
func (m *MockSettingsRepo) Update(ctx context.Context, s *domain.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSettingsRepo) EnsureDefaults(ctx context.Context, s *domain.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueNotice(ctx context.Context, toEmail, toName, roomName, monthYear string, amount decimal.Decimal) error {
	args := m.Called(ctx, toEmail, toName, roomName, monthYear, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, toEmail, toName, monthYear string, amount decimal.Decimal) error {
	args := m.Called(ctx, toEmail, toName, monthYear, amount)
	return args.Error(0)
}
