package tenantstore

import (
	"context"
	"sync"
	"time"

	"turnero/pkg/clock"
	"turnero/pkg/model"

	"github.com/google/uuid"
)

// Memory is a mutex-guarded in-memory Store with the same semantics as the
// Mongo implementation. Used by unit tests and local runs without a database.
type Memory struct {
	mu      sync.Mutex
	tenants map[string]*model.TenantData

	// FailWith, when set, is returned by every operation. Lets tests
	// exercise STORAGE_ERROR propagation.
	FailWith error
}

func NewMemory() *Memory {
	return &Memory{tenants: make(map[string]*model.TenantData)}
}

func (m *Memory) data(tenant string) *model.TenantData {
	d, ok := m.tenants[tenant]
	if !ok {
		d = &model.TenantData{Code: tenant}
		m.tenants[tenant] = d
	}
	return d
}

func (m *Memory) ReadBookings(_ context.Context, tenant string, professionalID int, date time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	day := clock.DayOf(date)
	out := []model.Booking{}
	for _, b := range m.data(tenant).Bookings {
		if !clock.SameDay(b.Date, day) {
			continue
		}
		if professionalID > 0 && b.ProfessionalID != professionalID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *Memory) ReadAllBookings(_ context.Context, tenant string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]model.Booking{}, m.data(tenant).Bookings...), nil
}

func (m *Memory) AppendBooking(_ context.Context, tenant string, b model.Booking) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return model.Booking{}, m.FailWith
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Date = clock.DayOf(b.Date)
	d := m.data(tenant)
	d.Bookings = append(d.Bookings, b)
	return b, nil
}

func (m *Memory) RemoveBooking(_ context.Context, tenant, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	d := m.data(tenant)
	kept := d.Bookings[:0]
	for _, b := range d.Bookings {
		if b.ID != bookingID {
			kept = append(kept, b)
		}
	}
	d.Bookings = kept
	return nil
}

func (m *Memory) ReadBlockedSlots(_ context.Context, tenant string, date time.Time, professionalID int) ([]model.BlockedSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	day := clock.DayOf(date)
	out := []model.BlockedSlot{}
	for _, bs := range m.data(tenant).BlockedSlots {
		if !clock.SameDay(bs.Date, day) {
			continue
		}
		if professionalID > 0 && bs.ProfessionalID != professionalID {
			continue
		}
		out = append(out, bs)
	}
	return out, nil
}

func (m *Memory) AppendBlockedSlot(_ context.Context, tenant string, bs model.BlockedSlot) (model.BlockedSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return model.BlockedSlot{}, m.FailWith
	}

	if bs.ID == "" {
		bs.ID = uuid.NewString()
	}
	bs.Date = clock.DayOf(bs.Date)
	d := m.data(tenant)
	d.BlockedSlots = append(d.BlockedSlots, bs)
	return bs, nil
}

func (m *Memory) RemoveBlockedSlot(_ context.Context, tenant string, date time.Time, timeOfDay string, professionalID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	day := clock.DayOf(date)
	d := m.data(tenant)
	kept := d.BlockedSlots[:0]
	for _, bs := range d.BlockedSlots {
		if clock.SameDay(bs.Date, day) && bs.Time == timeOfDay && bs.ProfessionalID == professionalID {
			continue
		}
		kept = append(kept, bs)
	}
	d.BlockedSlots = kept
	return nil
}

func (m *Memory) ReadCancelledDay(_ context.Context, tenant string, date time.Time) (*model.CancelledDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	day := clock.DayOf(date)
	for _, cd := range m.data(tenant).CancelledDays {
		if clock.SameDay(cd.Date, day) {
			out := cd
			return &out, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListCancelledDays(_ context.Context, tenant string, from time.Time) ([]model.CancelledDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	day := clock.DayOf(from)
	out := []model.CancelledDay{}
	for _, cd := range m.data(tenant).CancelledDays {
		if cd.Date.Before(day) {
			continue
		}
		out = append(out, cd)
	}
	return out, nil
}

func (m *Memory) AppendCancelledDay(_ context.Context, tenant string, cd model.CancelledDay) (model.CancelledDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return model.CancelledDay{}, m.FailWith
	}

	if cd.ID == "" {
		cd.ID = uuid.NewString()
	}
	cd.Date = clock.DayOf(cd.Date)
	d := m.data(tenant)
	d.CancelledDays = append(d.CancelledDays, cd)
	return cd, nil
}

func (m *Memory) RemoveCancelledDay(_ context.Context, tenant string, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	day := clock.DayOf(date)
	d := m.data(tenant)
	kept := d.CancelledDays[:0]
	for _, cd := range d.CancelledDays {
		if !clock.SameDay(cd.Date, day) {
			kept = append(kept, cd)
		}
	}
	d.CancelledDays = kept
	return nil
}

func (m *Memory) ReadBusinessHours(_ context.Context, tenant string) (model.HoursConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return model.HoursConfig{}, m.FailWith
	}
	return m.data(tenant).Hours, nil
}

func (m *Memory) SetBusinessHours(_ context.Context, tenant string, h model.HoursConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.data(tenant).Hours = h
	return nil
}

func (m *Memory) AppendHistoricalBooking(_ context.Context, tenant string, rec model.HistoricalBooking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}

	d := m.data(tenant)
	for _, h := range d.HistoricalBookings {
		if h.ID == rec.ID {
			return nil
		}
	}
	d.HistoricalBookings = append(d.HistoricalBookings, rec)
	return nil
}

func (m *Memory) ReadHistoricalBookings(_ context.Context, tenant string) ([]model.HistoricalBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	return append([]model.HistoricalBooking{}, m.data(tenant).HistoricalBookings...), nil
}
