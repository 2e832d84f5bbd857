package model

import (
	"time"
)

// ClientRef identifies the person a booking was made for. Bookings are
// guest-scoped; there is no cross-tenant user reference.
type ClientRef struct {
	Email     string `json:"email" bson:"email" validate:"required,email"`
	FirstName string `json:"first_name" bson:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" bson:"last_name" validate:"omitempty,max=100"`
}

// ServiceInfo is a denormalized snapshot of the service the booking was made
// for, carried on the booking so history survives catalog edits.
type ServiceInfo struct {
	ID    int    `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Price string `json:"price,omitempty" bson:"price,omitempty"`
}

type Booking struct {
	ID             string       `json:"id,omitempty" bson:"id,omitempty"`
	Date           time.Time    `json:"date" bson:"date" validate:"required"`
	StartTime      string       `json:"start_time" bson:"start_time" validate:"required,clock_time"`
	ProfessionalID int          `json:"professional_id" bson:"professional_id" validate:"required,min=1"`
	DurationMin    int          `json:"duration_min" bson:"duration_min" validate:"required,min=5,max=480"`
	Service        *ServiceInfo `json:"service,omitempty" bson:"service,omitempty"`
	Client         ClientRef    `json:"client" bson:"client"`
	Notes          string       `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
}

// HistoricalBooking is an archived booking. Append-only, never mutated after
// creation, and never consulted by the availability calculator.
type HistoricalBooking struct {
	Booking    `bson:",inline"`
	ArchivedAt time.Time `json:"archived_at" bson:"archived_at"`
}

// Archive converts an active booking into its historical record.
func (b Booking) Archive(at time.Time) HistoricalBooking {
	return HistoricalBooking{Booking: b, ArchivedAt: at}
}
