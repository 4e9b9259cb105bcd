package service

import (
	"context"
	"time"

	"roomledger-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error) // user, access token
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}

type UserService interface {
	CreateUser(ctx context.Context, actor domain.Actor, name, phone, email, password string, role domain.Role) (*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, upd UserUpdate) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, userID string) error
	ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error)
}

type CatalogService interface {
	CreateBuilding(ctx context.Context, actor domain.Actor, b *domain.Building) error
	GetBuilding(ctx context.Context, id string) (*domain.Building, error)
	ListBuildings(ctx context.Context) ([]domain.Building, error)
	UpdateBuilding(ctx context.Context, actor domain.Actor, b *domain.Building) error
	DeleteBuilding(ctx context.Context, actor domain.Actor, id string) error

	CreateRoom(ctx context.Context, actor domain.Actor, r *domain.Room) error
	GetRoomDetail(ctx context.Context, id string) (*domain.RoomDetail, error)
	ListRooms(ctx context.Context, buildingID string) ([]domain.Room, error)
	UpdateRoom(ctx context.Context, actor domain.Actor, r *domain.Room) error
	DeleteRoom(ctx context.Context, actor domain.Actor, id string) error
}

type TenantService interface {
	CreateTenant(ctx context.Context, actor domain.Actor, t *domain.Tenant) error
	GetTenantDetail(ctx context.Context, id string) (*domain.TenantDetail, error)
	ListTenants(ctx context.Context, search string, active *bool) ([]domain.Tenant, error)
	UpdateTenant(ctx context.Context, actor domain.Actor, t *domain.Tenant) error
}

type LeaseService interface {
	CreateLease(ctx context.Context, actor domain.Actor, l *domain.Lease) error
	GetLease(ctx context.Context, id string) (*domain.Lease, error)
	ListLeases(ctx context.Context, filter domain.LeaseFilter) ([]domain.Lease, error)
	UpdateLease(ctx context.Context, actor domain.Actor, leaseID string, upd LeaseUpdate) (*domain.Lease, error)
	// FinishLease transitions active -> finished and computes the deposit
	// settlement from the deposit balance at that moment.
	FinishLease(ctx context.Context, actor domain.Actor, leaseID string) (*domain.Lease, error)
	Occupancy(ctx context.Context, roomID string) (*domain.Occupancy, error)
}

type BillingService interface {
	CreatePayment(ctx context.Context, actor domain.Actor, p *domain.Payment) error
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, actor domain.Actor, paymentID string, upd PaymentUpdate) (*domain.Payment, error)
	ApprovePayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error)
	RejectPayment(ctx context.Context, actor domain.Actor, paymentID string) (*domain.Payment, error)
	DeletePayment(ctx context.Context, actor domain.Actor, paymentID string) error
	GetEnrichedPayment(ctx context.Context, paymentID string) (*domain.EnrichedPayment, error)
	ListEnrichedPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.EnrichedPayment, error)
	// PendingByMonth lists the rent payments still pending, in review or
	// overdue for one month bucket, enriched for the collections view.
	PendingByMonth(ctx context.Context, bucket string) ([]domain.EnrichedPayment, error)

	CreateExpense(ctx context.Context, actor domain.Actor, e *domain.Expense) error
	ListExpenses(ctx context.Context, leaseID string) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, upd ExpenseUpdate) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error
	DepositBalance(ctx context.Context, leaseID string) (decimal.Decimal, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, actor domain.Actor, s *domain.Settings) error
}

type DashboardService interface {
	Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error)
}

type EmailService interface {
	SendOverdueNotice(ctx context.Context, toEmail, toName, roomName, monthYear string, amount decimal.Decimal) error
	SendPaymentReceipt(ctx context.Context, toEmail, toName, monthYear string, amount decimal.Decimal) error
}

// UserUpdate carries the mutable user fields. Nil means "leave unchanged".
// Email is absent on purpose: it is write-once.
type UserUpdate struct {
	Name     *string
	Phone    *string
	Password *string
	Role     *domain.Role
	Active   *bool
}

// LeaseUpdate carries the mutable lease fields. Nil means "leave unchanged".
type LeaseUpdate struct {
	EndDate     *time.Time
	MonthlyRent *decimal.Decimal
	Archived    *bool
}

// PaymentUpdate carries the mutable payment fields. Nil means "leave
// unchanged". Status changes go through Approve/Reject, not here.
type PaymentUpdate struct {
	Method      *domain.PaymentMethod
	PaymentDate *time.Time
	Notes       *string
}

// ExpenseUpdate carries the mutable expense fields. Nil means "leave
// unchanged".
type ExpenseUpdate struct {
	Date              *time.Time
	Concept           *string
	Amount            *decimal.Decimal
	DeductFromDeposit *bool
}
