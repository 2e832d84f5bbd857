package tenantstore

import (
	"context"
	"time"

	"turnero/pkg/model"
)

// Store is the per-tenant document store. Every entity is scoped to one
// business code; the store is the sole authority and callers hold no cached
// state across calls. Implementations report infrastructure failures as
// STORAGE_ERROR AppErrors.
type Store interface {
	// ReadBookings returns the active bookings for one professional on one
	// calendar day. A non-positive professionalID returns the whole day.
	ReadBookings(ctx context.Context, tenant string, professionalID int, date time.Time) ([]model.Booking, error)
	// ReadAllBookings returns every active booking of the tenant; used by
	// the archival sweep and reporting, never by availability.
	ReadAllBookings(ctx context.Context, tenant string) ([]model.Booking, error)
	// AppendBooking persists a booking, assigning an id if absent.
	AppendBooking(ctx context.Context, tenant string, b model.Booking) (model.Booking, error)
	RemoveBooking(ctx context.Context, tenant, bookingID string) error

	// ReadBlockedSlots returns manual blocks for a day. A non-positive
	// professionalID returns blocks for every professional.
	ReadBlockedSlots(ctx context.Context, tenant string, date time.Time, professionalID int) ([]model.BlockedSlot, error)
	AppendBlockedSlot(ctx context.Context, tenant string, s model.BlockedSlot) (model.BlockedSlot, error)
	// RemoveBlockedSlot deletes by the natural key (date, time, professional).
	RemoveBlockedSlot(ctx context.Context, tenant string, date time.Time, timeOfDay string, professionalID int) error

	// ReadCancelledDay returns nil when the date is not cancelled.
	ReadCancelledDay(ctx context.Context, tenant string, date time.Time) (*model.CancelledDay, error)
	ListCancelledDays(ctx context.Context, tenant string, from time.Time) ([]model.CancelledDay, error)
	AppendCancelledDay(ctx context.Context, tenant string, d model.CancelledDay) (model.CancelledDay, error)
	RemoveCancelledDay(ctx context.Context, tenant string, date time.Time) error

	// ReadBusinessHours returns the zero HoursConfig when the tenant has
	// never configured hours; resolving defaults is the resolver's job.
	ReadBusinessHours(ctx context.Context, tenant string) (model.HoursConfig, error)
	SetBusinessHours(ctx context.Context, tenant string, h model.HoursConfig) error

	// AppendHistoricalBooking upserts by booking id: appending a record
	// whose id is already archived is a no-op, so an interrupted sweep can
	// safely re-run.
	AppendHistoricalBooking(ctx context.Context, tenant string, rec model.HistoricalBooking) error
	ReadHistoricalBookings(ctx context.Context, tenant string) ([]model.HistoricalBooking, error)
}
