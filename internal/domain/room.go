package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room belongs to exactly one Building. The building reference is immutable
// after creation; update payloads do not carry it.
type Room struct {
	ID           string          `json:"id"`
	BuildingID   string          `json:"building_id"`
	Name         string          `json:"name"`
	SquareMeters float64         `json:"square_meters"`
	BasePrice    decimal.Decimal `json:"base_price"`
	CreatedOn    time.Time       `json:"created_on"`
	UpdatedOn    time.Time       `json:"updated_on"`
}

// RoomDetail is the read-only projection served for a room page: the room,
// its building, the active lease with its tenant (nil when vacant), and the
// full lease history.
type RoomDetail struct {
	Room         Room    `json:"room"`
	Building     Building `json:"building"`
	ActiveLease  *Lease  `json:"active_lease,omitempty"`
	ActiveTenant *Tenant `json:"active_tenant,omitempty"`
	LeaseHistory []Lease `json:"lease_history"`
}

// Occupancy is derived from lease rows, never stored.
type Occupancy struct {
	RoomID   string  `json:"room_id"`
	Occupied bool    `json:"occupied"`
	Lease    *Lease  `json:"lease,omitempty"`
	Tenant   *Tenant `json:"tenant,omitempty"`
}
