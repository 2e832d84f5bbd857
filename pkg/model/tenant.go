package model

import "time"

// Tenant is one independently-configured business, identified by its code.
type Tenant struct {
	Code       string    `json:"code" bson:"_id" validate:"required,min=2,max=50,tenant_code"`
	Name       string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	AdminPhone string    `json:"admin_phone,omitempty" bson:"admin_phone,omitempty" validate:"omitempty,e164"`
	Active     bool      `json:"active" bson:"active"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// TenantData is the per-tenant document the store keeps: every entity owned
// by one business lives in this document's arrays, keyed by business code.
type TenantData struct {
	Code               string              `bson:"_id"`
	Hours              HoursConfig         `bson:"hours,omitempty"`
	Bookings           []Booking           `bson:"bookings"`
	HistoricalBookings []HistoricalBooking `bson:"historical_bookings"`
	BlockedSlots       []BlockedSlot       `bson:"blocked_slots"`
	CancelledDays      []CancelledDay      `bson:"cancelled_days"`
}
