package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"turnero/internal/hours"
	"turnero/internal/tenantstore"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/logger"
	"turnero/pkg/model"
)

func testConfig() *config.Config {
	return &config.Config{
		DefaultOpen:        "09:00",
		DefaultClose:       "20:00",
		DefaultIntervalMin: 30,
		SaturdayClose:      "18:00",
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newService(store tenantstore.Store) AvailabilityService {
	cfg := testConfig()
	return NewAvailabilityService(store, hours.NewResolver(cfg), cfg)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

// monday is an operating weekday for a tenant with no operating-day
// restrictions.
const monday = "2026-09-14"

func setHours(t *testing.T, store tenantstore.Store, tenant string, h model.HoursConfig) {
	t.Helper()
	if err := store.SetBusinessHours(context.Background(), tenant, h); err != nil {
		t.Fatalf("failed to set hours: %v", err)
	}
}

func TestComputeAvailableShortDay(t *testing.T) {
	store := tenantstore.NewMemory()
	setHours(t, store, "barberia-sur", model.HoursConfig{Open: "09:00", Close: "12:00", IntervalMin: 30})
	svc := newService(store)

	got, err := svc.ComputeAvailable(context.Background(), "barberia-sur", mustDate(t, monday), 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeAvailableLongerDurationTrimsTail(t *testing.T) {
	store := tenantstore.NewMemory()
	setHours(t, store, "barberia-sur", model.HoursConfig{Open: "09:00", Close: "12:00", IntervalMin: 30})
	svc := newService(store)

	// The grid stays anchored at 09:00; only starts whose 45 minutes fit
	// before noon survive.
	got, err := svc.ComputeAvailable(context.Background(), "barberia-sur", mustDate(t, monday), 1, 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeAvailableExcludesOverlaps(t *testing.T) {
	store := tenantstore.NewMemory()
	setHours(t, store, "barberia-sur", model.HoursConfig{Open: "09:00", Close: "12:00", IntervalMin: 30})
	ctx := context.Background()
	if _, err := store.AppendBooking(ctx, "barberia-sur", model.Booking{
		Date: mustDate(t, monday), StartTime: "10:00", DurationMin: 60, ProfessionalID: 1,
	}); err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	svc := newService(store)

	got, err := svc.ComputeAvailable(ctx, "barberia-sur", mustDate(t, monday), 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 09:30 ends exactly at 10:00 and 11:00 starts exactly at the booking's
	// end; touching endpoints do not conflict.
	want := []string{"09:00", "09:30", "11:00", "11:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeAvailableIgnoresOtherProfessionals(t *testing.T) {
	store := tenantstore.NewMemory()
	setHours(t, store, "barberia-sur", model.HoursConfig{Open: "09:00", Close: "11:00", IntervalMin: 30})
	ctx := context.Background()
	if _, err := store.AppendBooking(ctx, "barberia-sur", model.Booking{
		Date: mustDate(t, monday), StartTime: "09:00", DurationMin: 120, ProfessionalID: 2,
	}); err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	svc := newService(store)

	got, err := svc.ComputeAvailable(ctx, "barberia-sur", mustDate(t, monday), 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeAvailableExcludesBlockedSlots(t *testing.T) {
	store := tenantstore.NewMemory()
	setHours(t, store, "barberia-sur", model.HoursConfig{Open: "09:00", Close: "11:00", IntervalMin: 30})
	ctx := context.Background()
	if _, err := store.AppendBlockedSlot(ctx, "barberia-sur", model.BlockedSlot{
		Date: mustDate(t, monday), Time: "09:30", ProfessionalID: 1,
	}); err != nil {
		t.Fatalf("failed to seed block: %v", err)
	}
	svc := newService(store)

	got, err := svc.ComputeAvailable(ctx, "barberia-sur", mustDate(t, monday), 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "10:00", "10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestComputeAvailableCancelledDayIsEmpty(t *testing.T) {
	store := tenantstore.NewMemory()
	setHours(t, store, "barberia-sur", model.HoursConfig{Open: "09:00", Close: "12:00", IntervalMin: 30})
	ctx := context.Background()
	if _, err := store.AppendCancelledDay(ctx, "barberia-sur", model.CancelledDay{
		ID: "cd-1", Date: mustDate(t, monday),
	}); err != nil {
		t.Fatalf("failed to seed cancelled day: %v", err)
	}
	svc := newService(store)

	got, err := svc.ComputeAvailable(ctx, "barberia-sur", mustDate(t, monday), 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no slots on a cancelled day, got %v", got)
	}
}

func TestComputeAvailableClosedWeekdayIsEmpty(t *testing.T) {
	store := tenantstore.NewMemory()
	setHours(t, store, "barberia-sur", model.HoursConfig{
		Open: "09:00", Close: "12:00", IntervalMin: 30,
		OperatingDays: []int{1, 2, 3, 4, 5},
	})
	svc := newService(store)

	sunday := mustDate(t, "2026-09-13")
	got, err := svc.ComputeAvailable(context.Background(), "barberia-sur", sunday, 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no slots on a closed weekday, got %v", got)
	}
}

func TestComputeAvailableUsesEngineDefaults(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(store)

	got, err := svc.ComputeAvailable(context.Background(), "sin-horario", mustDate(t, monday), 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 09:00 through 19:30 at 30-minute steps.
	if len(got) != 22 {
		t.Fatalf("expected 22 slots, got %d: %v", len(got), got)
	}
	if got[0] != "09:00" || got[len(got)-1] != "19:30" {
		t.Errorf("expected 09:00..19:30, got %s..%s", got[0], got[len(got)-1])
	}
}

func TestComputeAvailableSaturdayDefaultClose(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(store)

	saturday := mustDate(t, "2026-09-19")
	got, err := svc.ComputeAvailable(context.Background(), "sin-horario", saturday, 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[len(got)-1] != "17:30" {
		t.Errorf("expected last saturday slot 17:30, got %s", got[len(got)-1])
	}
}

func TestComputeAvailableRejectsBadInput(t *testing.T) {
	svc := newService(tenantstore.NewMemory())
	ctx := context.Background()

	_, err := svc.ComputeAvailable(ctx, "barberia-sur", mustDate(t, monday), 1, 0)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for zero duration, got %v", err)
	}
	_, err = svc.ComputeAvailable(ctx, "barberia-sur", mustDate(t, monday), 0, 30)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for missing professional, got %v", err)
	}
}

func TestComputeAvailableStorageFailure(t *testing.T) {
	store := tenantstore.NewMemory()
	store.FailWith = apperrors.Storage("tenant store unavailable", nil)
	svc := newService(store)

	_, err := svc.ComputeAvailable(context.Background(), "barberia-sur", mustDate(t, monday), 1, 30)
	if !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Fatalf("expected STORAGE_ERROR, got %v", err)
	}
}

func TestOccupiedMergesBookingsAndBlocks(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	date := mustDate(t, monday)
	if _, err := store.AppendBooking(ctx, "barberia-sur", model.Booking{
		Date: date, StartTime: "10:00", DurationMin: 30, ProfessionalID: 1,
	}); err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	for _, b := range []model.BlockedSlot{
		{Date: date, Time: "09:00", ProfessionalID: 1},
		{Date: date, Time: "10:00", ProfessionalID: 1},
	} {
		if _, err := store.AppendBlockedSlot(ctx, "barberia-sur", b); err != nil {
			t.Fatalf("failed to seed block: %v", err)
		}
	}
	svc := newService(store)

	got, err := svc.Occupied(ctx, "barberia-sur", date, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"09:00", "10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
