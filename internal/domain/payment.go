package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeRent             PaymentType = "rent"
	PaymentTypeExpenses         PaymentType = "expenses"
	PaymentTypeDepositCollected PaymentType = "deposit_collected"
	PaymentTypeDepositReturned  PaymentType = "deposit_returned"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodOther    PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusInReview PaymentStatus = "in_review"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusOverdue  PaymentStatus = "overdue"
)

// Payment records a money movement that happened out of band. LeaseID is
// nullable for ledger entries not tied to a lease, but every payment created
// through the API references an existing lease.
type Payment struct {
	ID          string          `json:"id"`
	LeaseID     *string         `json:"lease_id,omitempty"`
	MonthYear   string          `json:"month_year"` // bucket, "YYYY-MM"
	Type        PaymentType     `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Method      PaymentMethod   `json:"method"`
	Status      PaymentStatus   `json:"status"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	CreatedBy   string          `json:"created_by"`
	ReviewedBy  *string         `json:"reviewed_by,omitempty"`
	Notes       string          `json:"notes"`
	CreatedOn   time.Time       `json:"created_on"`
	UpdatedOn   *time.Time      `json:"updated_on,omitempty"`
}

// PaymentFilter narrows payment listings. Zero values mean "no restriction".
type PaymentFilter struct {
	LeaseID    string
	Type       PaymentType
	Status     PaymentStatus
	MonthYear  string
	BuildingID string
	RoomID     string
	TenantID   string
}

// EnrichedPayment joins a payment with the rows the UI renders next to it.
// It is a projection, never a second source of truth.
type EnrichedPayment struct {
	Payment  Payment   `json:"payment"`
	Lease    *Lease    `json:"lease,omitempty"`
	Room     *Room     `json:"room,omitempty"`
	Building *Building `json:"building,omitempty"`
	Tenant   *Tenant   `json:"tenant,omitempty"`
}

// MoneyTotal is an aggregation bucket used by tenant detail views.
type MoneyTotal struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// ParseMonth validates a "YYYY-MM" bucket and returns the first day of the
// month in UTC.
func ParseMonth(bucket string) (time.Time, error) {
	t, err := time.Parse("2006-01", bucket)
	if err != nil {
		return time.Time{}, NewInvalidInput("invalid month bucket %q, want YYYY-MM", bucket)
	}
	return t.UTC(), nil
}

// MonthEnd returns the instant the bucket month ends (start of next month).
func MonthEnd(bucket string) (time.Time, error) {
	start, err := ParseMonth(bucket)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 1, 0), nil
}
