package domain

import "time"

// Tenant is never hard-deleted; the Active flag preserves lease history.
// NationalID is write-once.
type Tenant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"national_id"`
	Active     bool      `json:"active"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// TenantDetail aggregates a tenant with its leases, payments and payment
// totals grouped by status.
type TenantDetail struct {
	Tenant         Tenant                       `json:"tenant"`
	Leases         []Lease                      `json:"leases"`
	Payments       []Payment                    `json:"payments"`
	TotalsByStatus map[PaymentStatus]MoneyTotal `json:"totals_by_status"`
}
