package service

import (
	"context"
	"sync"
	"testing"
	"time"

	availability "turnero/internal/availability/service"
	bookingvalidator "turnero/internal/bookings/validator"
	"turnero/internal/hours"
	"turnero/internal/tenantstore"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/kafka"
	"turnero/pkg/logger"
	"turnero/pkg/model"
)

type capturingPublisher struct {
	mu       sync.Mutex
	messages []kafka.Message
}

func (p *capturingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		types = append(types, m.GetEventType())
	}
	return types
}

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

func newService(store tenantstore.Store, pub kafka.Publisher) BookingService {
	cfg := testConfig()
	return NewBookingService(
		store,
		bookingvalidator.NewBookingValidator(cfg.Log),
		hours.NewResolver(cfg),
		pub,
		cfg,
	)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

// monday within a tenant that has no operating-day restrictions.
const monday = "2026-09-14"

func validBooking(t *testing.T, start string) *model.Booking {
	t.Helper()
	return &model.Booking{
		Date:           mustDate(t, monday),
		StartTime:      start,
		ProfessionalID: 1,
		DurationMin:    30,
		Client: model.ClientRef{
			Email:     "ana@example.com",
			FirstName: "Ana",
		},
	}
}

func TestAdmitPersistsAndPublishes(t *testing.T) {
	store := tenantstore.NewMemory()
	pub := &capturingPublisher{}
	svc := newService(store, pub)

	created, err := svc.Admit(context.Background(), "barberia-sur", validBooking(t, "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected an assigned booking id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	stored, err := store.ReadBookings(context.Background(), "barberia-sur", 1, mustDate(t, monday))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 persisted booking, got %d", len(stored))
	}

	types := pub.eventTypes()
	if len(types) != 1 || types[0] != kafka.EventBookingCreated {
		t.Errorf("expected one booking.created event, got %v", types)
	}
	if key := pub.messages[0].Key; key != "barberia-sur" {
		t.Errorf("expected event keyed by tenant code, got %q", key)
	}
}

func TestAdmitRejectsOverlap(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(store, &capturingPublisher{})
	ctx := context.Background()

	if _, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := validBooking(t, "10:00")
	b.DurationMin = 60
	_, err := svc.Admit(ctx, "barberia-sur", b)
	if !apperrors.HasCode(err, apperrors.CodeOverlap) {
		t.Fatalf("expected OVERLAP, got %v", err)
	}

	// Touching endpoints do not conflict.
	if _, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:30")); err != nil {
		t.Errorf("expected back-to-back booking to be admitted, got %v", err)
	}
}

func TestAdmitRejectsCancelledDay(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	if _, err := store.AppendCancelledDay(ctx, "barberia-sur", model.CancelledDay{
		ID: "cd-1", Date: mustDate(t, monday),
	}); err != nil {
		t.Fatalf("failed to seed cancelled day: %v", err)
	}
	svc := newService(store, &capturingPublisher{})

	_, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:00"))
	if !apperrors.HasCode(err, apperrors.CodeClosedDay) {
		t.Fatalf("expected CLOSED_DAY, got %v", err)
	}
}

func TestAdmitRejectsClosedWeekday(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	if err := store.SetBusinessHours(ctx, "barberia-sur", model.HoursConfig{
		Open: "09:00", Close: "20:00", IntervalMin: 30,
		OperatingDays: []int{1, 2, 3, 4, 5, 6},
	}); err != nil {
		t.Fatalf("failed to set hours: %v", err)
	}
	svc := newService(store, &capturingPublisher{})

	b := validBooking(t, "10:00")
	b.Date = mustDate(t, "2026-09-13") // sunday
	_, err := svc.Admit(ctx, "barberia-sur", b)
	if !apperrors.HasCode(err, apperrors.CodeClosedDay) {
		t.Fatalf("expected CLOSED_DAY, got %v", err)
	}
}

func TestAdmitRejectsOffGridAndLateStarts(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(store, &capturingPublisher{})
	ctx := context.Background()

	b := validBooking(t, "10:15")
	if _, err := svc.Admit(ctx, "barberia-sur", b); !apperrors.HasCode(err, apperrors.CodeOverlap) {
		t.Errorf("expected OVERLAP for an off-grid start, got %v", err)
	}

	late := validBooking(t, "19:45")
	if _, err := svc.Admit(ctx, "barberia-sur", late); !apperrors.HasCode(err, apperrors.CodeOverlap) {
		t.Errorf("expected OVERLAP for an off-grid late start, got %v", err)
	}

	// 19:30 is on the grid but a 60-minute service would end past close.
	long := validBooking(t, "19:30")
	long.DurationMin = 60
	if _, err := svc.Admit(ctx, "barberia-sur", long); !apperrors.HasCode(err, apperrors.CodeOverlap) {
		t.Errorf("expected OVERLAP when the service does not fit before close, got %v", err)
	}
}

func TestAdmitRejectsBlockedSlot(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	if _, err := store.AppendBlockedSlot(ctx, "barberia-sur", model.BlockedSlot{
		Date: mustDate(t, monday), Time: "10:00", ProfessionalID: 1,
	}); err != nil {
		t.Fatalf("failed to seed block: %v", err)
	}
	svc := newService(store, &capturingPublisher{})

	_, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:00"))
	if !apperrors.HasCode(err, apperrors.CodeOverlap) {
		t.Fatalf("expected OVERLAP for a blocked slot, got %v", err)
	}
}

func TestAdmitRejectsInvalidBooking(t *testing.T) {
	svc := newService(tenantstore.NewMemory(), &capturingPublisher{})
	ctx := context.Background()

	b := validBooking(t, "10:00")
	b.Client.Email = "not-an-email"
	_, err := svc.Admit(ctx, "barberia-sur", b)
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

// Exactly one of N concurrent admissions for the same slot may win.
func TestAdmitConcurrentSingleWinner(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(store, &capturingPublisher{})
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, overlaps int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case apperrors.HasCode(err, apperrors.CodeOverlap):
			overlaps++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("expected exactly one winner, got %d", wins)
	}
	if overlaps != n-1 {
		t.Errorf("expected %d overlap rejections, got %d", n-1, overlaps)
	}

	stored, err := store.ReadBookings(ctx, "barberia-sur", 1, mustDate(t, monday))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("expected 1 persisted booking, got %d", len(stored))
	}
}

// Every slot the calculator offers must be admittable with no writers in
// between.
func TestAvailabilityAdmissionConsistency(t *testing.T) {
	store := tenantstore.NewMemory()
	cfg := testConfig()
	ctx := context.Background()
	if err := store.SetBusinessHours(ctx, "barberia-sur", model.HoursConfig{
		Open: "09:00", Close: "11:00", IntervalMin: 30,
	}); err != nil {
		t.Fatalf("failed to set hours: %v", err)
	}

	avail := availability.NewAvailabilityService(store, hours.NewResolver(cfg), cfg)
	svc := newService(store, &capturingPublisher{})

	slots, err := avail.ComputeAvailable(ctx, "barberia-sur", mustDate(t, monday), 1, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected some free slots")
	}
	for _, slot := range slots {
		if _, err := svc.Admit(ctx, "barberia-sur", validBooking(t, slot)); err != nil {
			t.Errorf("slot %s was offered but not admitted: %v", slot, err)
		}
	}
}

func TestCancel(t *testing.T) {
	store := tenantstore.NewMemory()
	pub := &capturingPublisher{}
	svc := newService(store, pub)
	ctx := context.Background()

	created, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Cancel(ctx, "barberia-sur", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	types := pub.eventTypes()
	if len(types) != 2 || types[1] != kafka.EventBookingCancelled {
		t.Errorf("expected a booking.cancelled event, got %v", types)
	}

	// The freed slot is bookable again.
	if _, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:00")); err != nil {
		t.Errorf("expected the slot to be free after cancellation, got %v", err)
	}

	err = svc.Cancel(ctx, "barberia-sur", "missing-id")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestListDayMergesHistorical(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(store, &capturingPublisher{})
	ctx := context.Background()
	date := mustDate(t, monday)

	if _, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "11:00")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	archived := model.Booking{
		ID: "old-1", Date: date, StartTime: "09:00",
		ProfessionalID: 1, DurationMin: 30,
	}
	if err := store.AppendHistoricalBooking(ctx, "barberia-sur", archived.Archive(time.Now())); err != nil {
		t.Fatalf("failed to seed historical booking: %v", err)
	}

	day, err := svc.ListDay(ctx, "barberia-sur", date, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(day))
	}
	if day[0].StartTime != "09:00" || day[1].StartTime != "11:00" {
		t.Errorf("expected bookings sorted by start time, got %s then %s", day[0].StartTime, day[1].StartTime)
	}
}

func TestGet(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := newService(store, &capturingPublisher{})
	ctx := context.Background()

	created, err := svc.Admit(ctx, "barberia-sur", validBooking(t, "10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Get(ctx, "barberia-sur", created.ID, mustDate(t, monday))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StartTime != "10:00" {
		t.Errorf("expected start 10:00, got %s", got.StartTime)
	}

	_, err = svc.Get(ctx, "barberia-sur", "missing", mustDate(t, monday))
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
