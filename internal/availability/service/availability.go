package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"turnero/internal/hours"
	"turnero/internal/tenantstore"
	"turnero/pkg/clock"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/model"
)

type AvailabilityService interface {
	// ComputeAvailable returns the free start times for one professional's
	// day, ascending "HH:MM". Cancelled dates and non-operating weekdays
	// yield an empty list, not an error.
	ComputeAvailable(ctx context.Context, tenant string, date time.Time, professionalID int, durationMin int) ([]string, error)
	// Occupied returns the taken start times of the day: booked starts
	// plus manual blocks, sorted and de-duplicated.
	Occupied(ctx context.Context, tenant string, date time.Time, professionalID int) ([]string, error)
}

type availabilityService struct {
	store    tenantstore.Store
	resolver *hours.Resolver
	cfg      *config.Config
}

func NewAvailabilityService(store tenantstore.Store, resolver *hours.Resolver, cfg *config.Config) AvailabilityService {
	return &availabilityService{
		store:    store,
		resolver: resolver,
		cfg:      cfg,
	}
}

func (s *availabilityService) ComputeAvailable(ctx context.Context, tenant string, date time.Time, professionalID int, durationMin int) ([]string, error) {
	if durationMin <= 0 {
		return nil, apperrors.InvalidInput("duration_min must be positive")
	}
	if professionalID <= 0 {
		return nil, apperrors.InvalidInput("professional_id must be positive")
	}
	date = clock.DayOf(date)

	cancelled, err := s.store.ReadCancelledDay(ctx, tenant, date)
	if err != nil {
		return nil, err
	}
	if cancelled != nil {
		return []string{}, nil
	}

	hoursCfg, err := s.store.ReadBusinessHours(ctx, tenant)
	if err != nil {
		return nil, err
	}
	day, err := s.resolver.Resolve(hoursCfg, date)
	if err != nil {
		if errors.Is(err, hours.ErrClosedWeekday) {
			return []string{}, nil
		}
		return nil, err
	}

	bookings, err := s.store.ReadBookings(ctx, tenant, professionalID, date)
	if err != nil {
		return nil, err
	}
	blockedSlots, err := s.store.ReadBlockedSlots(ctx, tenant, date, professionalID)
	if err != nil {
		return nil, err
	}
	blocked := make(map[string]struct{}, len(blockedSlots))
	for _, b := range blockedSlots {
		blocked[b.Time] = struct{}{}
	}

	free := FreeSlots(day, bookings, blocked, durationMin)

	s.cfg.Log.Debug("Availability computed",
		"tenant", tenant,
		"date", date.Format(clock.DateLayout),
		"professional_id", professionalID,
		"duration_min", durationMin,
		"free_count", len(free),
	)
	return free, nil
}

// FreeSlots walks the slot grid from open to close inclusive, stepping by
// the interval, and keeps every start that is not blocked, finishes by
// closing time, and overlaps no booking. The grid is anchored at opening
// time regardless of the requested duration.
func FreeSlots(day hours.DayHours, bookings []model.Booking, blocked map[string]struct{}, durationMin int) []string {
	free := []string{}
	for t := day.OpenMin; t <= day.CloseMin; t += day.IntervalMin {
		start := clock.FormatMinutes(t)
		if _, isBlocked := blocked[start]; isBlocked {
			continue
		}
		if t+durationMin > day.CloseMin {
			continue
		}
		if overlapsAny(t, durationMin, bookings) {
			continue
		}
		free = append(free, start)
	}
	return free
}

// overlapsAny applies the half-open interval test: [t, t+duration) against
// [bStart, bStart+bDuration). Touching endpoints do not conflict.
func overlapsAny(t, durationMin int, bookings []model.Booking) bool {
	for _, b := range bookings {
		bStart, err := clock.ParseMinutes(b.StartTime)
		if err != nil {
			continue
		}
		bEnd := bStart + b.DurationMin
		if t < bEnd && t+durationMin > bStart {
			return true
		}
	}
	return false
}

func (s *availabilityService) Occupied(ctx context.Context, tenant string, date time.Time, professionalID int) ([]string, error) {
	date = clock.DayOf(date)

	bookings, err := s.store.ReadBookings(ctx, tenant, professionalID, date)
	if err != nil {
		return nil, err
	}
	blockedSlots, err := s.store.ReadBlockedSlots(ctx, tenant, date, professionalID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(bookings)+len(blockedSlots))
	occupied := []string{}
	for _, b := range bookings {
		if _, dup := seen[b.StartTime]; dup {
			continue
		}
		seen[b.StartTime] = struct{}{}
		occupied = append(occupied, b.StartTime)
	}
	for _, b := range blockedSlots {
		if _, dup := seen[b.Time]; dup {
			continue
		}
		seen[b.Time] = struct{}{}
		occupied = append(occupied, b.Time)
	}
	sort.Strings(occupied)
	return occupied, nil
}
