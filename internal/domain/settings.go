package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyProfile is what appears on receipts and outbound mail.
type CompanyProfile struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Logo    string `json:"logo"`
}

// MailConfig is the operator-managed outbound mail configuration.
type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	UseTLS   bool   `json:"use_tls"`
}

// Settings is a singleton row seeded at first run. Pure configuration,
// no business logic.
type Settings struct {
	ID                   string          `json:"id"`
	Company              CompanyProfile  `json:"company"`
	Mail                 MailConfig      `json:"mail"`
	DefaultBillingDay    int             `json:"default_billing_day"`
	DefaultExpenseTariff decimal.Decimal `json:"default_expense_tariff"`
	UpdatedOn            time.Time       `json:"updated_on"`
}
