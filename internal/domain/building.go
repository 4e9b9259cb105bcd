package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Building struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Address            string           `json:"address"`
	Notes              string           `json:"notes"`
	HasCleaningService bool             `json:"has_cleaning_service"`
	MonthlyCleaningFee *decimal.Decimal `json:"monthly_cleaning_fee,omitempty"`
	CreatedOn          time.Time        `json:"created_on"`
	UpdatedOn          time.Time        `json:"updated_on"`
}
