package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost recorded against a lease. Purely additive, no state
// machine. When DeductFromDeposit is set the amount reduces the deposit
// balance used at lease close-out.
type Expense struct {
	ID                string          `json:"id"`
	LeaseID           string          `json:"lease_id"`
	Date              time.Time       `json:"date"`
	Concept           string          `json:"concept"`
	Amount            decimal.Decimal `json:"amount"`
	DeductFromDeposit bool            `json:"deduct_from_deposit"`
	CreatedOn         time.Time       `json:"created_on"`
}
