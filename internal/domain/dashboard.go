package domain

import "github.com/shopspring/decimal"

// DashboardStats is the landing-page summary. Occupied/free counts are
// derived from lease rows at read time.
type DashboardStats struct {
	TotalRooms        int             `json:"total_rooms"`
	OccupiedRooms     int             `json:"occupied_rooms"`
	FreeRooms         int             `json:"free_rooms"`
	MonthIncome       decimal.Decimal `json:"month_income"`
	UnsettledPayments int             `json:"unsettled_payments"`
	LeasesEndingIn30d int             `json:"leases_ending_in_30d"`
}
