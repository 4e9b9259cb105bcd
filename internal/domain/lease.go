package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaseStatus string

const (
	LeaseStatusActive   LeaseStatus = "active"
	LeaseStatusFinished LeaseStatus = "finished"
)

type SettlementStatus string

const (
	SettlementStatusPending         SettlementStatus = "pending"
	SettlementStatusCalculated      SettlementStatus = "calculated"
	SettlementStatusReturnedFull    SettlementStatus = "returned_full"
	SettlementStatusReturnedPartial SettlementStatus = "returned_partial"
)

// DepositSettlement tracks the deposit close-out of a finished lease.
// AmountToReturn is filled when the lease is transitioned to finished, from
// the deposit balance at that moment.
type DepositSettlement struct {
	Status         SettlementStatus `json:"status"`
	AmountToReturn *decimal.Decimal `json:"amount_to_return,omitempty"`
	SettledOn      *time.Time       `json:"settled_on,omitempty"`
}

// Lease binds one tenant to one room for a date range. Created active;
// the only transition is active -> finished and it is one-way.
// At most one active lease may exist per room at any time.
type Lease struct {
	ID               string            `json:"id"`
	RoomID           string            `json:"room_id"`
	TenantID         string            `json:"tenant_id"`
	StartDate        time.Time         `json:"start_date"`
	EndDate          time.Time         `json:"end_date"`
	MonthlyRent      decimal.Decimal   `json:"monthly_rent"`
	Deposit          decimal.Decimal   `json:"deposit"`
	ExpenseTariff    decimal.Decimal   `json:"expense_tariff"`
	CleaningIncluded bool              `json:"cleaning_included"`
	Status           LeaseStatus       `json:"status"`
	Archived         bool              `json:"archived"`
	Settlement       DepositSettlement `json:"deposit_settlement"`
	CreatedOn        time.Time         `json:"created_on"`
	UpdatedOn        time.Time         `json:"updated_on"`
}

// LeaseFilter narrows List queries. Zero values mean "no restriction".
type LeaseFilter struct {
	Status     LeaseStatus
	RoomID     string
	TenantID   string
	BuildingID string
}
