package model

import "time"

// BlockedSlot marks a single slot (not a duration) unavailable for one
// professional regardless of bookings. Never auto-expires.
type BlockedSlot struct {
	ID             string    `json:"id,omitempty" bson:"id,omitempty"`
	Date           time.Time `json:"date" bson:"date" validate:"required"`
	Time           string    `json:"time" bson:"time" validate:"required,clock_time"`
	ProfessionalID int       `json:"professional_id" bson:"professional_id" validate:"required,min=1"`
	Reason         string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=200"`
}

// CancelledDay marks an entire day unbookable for the whole business.
// Unique per (tenant, date).
type CancelledDay struct {
	ID        string    `json:"id,omitempty" bson:"id,omitempty"`
	Date      time.Time `json:"date" bson:"date" validate:"required"`
	Reason    string    `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=200"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
