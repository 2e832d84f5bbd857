package archiver

import (
	"context"
	"testing"
	"time"

	"turnero/internal/tenantstore"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/kafka"
	"turnero/pkg/logger"
	"turnero/pkg/model"
)

type staticTenants []string

func (s staticTenants) ListActiveCodes(context.Context) ([]string, error) {
	return s, nil
}

func testConfig() *config.Config {
	return &config.Config{
		SweepInterval: time.Hour,
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newArchiver(store tenantstore.Store, tenants TenantSource, now time.Time) *Archiver {
	a := New(store, tenants, kafka.NopPublisher{}, testConfig())
	a.now = func() time.Time { return now }
	return a
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func seedBooking(t *testing.T, store tenantstore.Store, tenant, id, day string) {
	t.Helper()
	_, err := store.AppendBooking(context.Background(), tenant, model.Booking{
		ID: id, Date: date(day), StartTime: "10:00", ProfessionalID: 1, DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("failed to seed booking %s: %v", id, err)
	}
}

func TestSweepTenantArchivesOnlyExpired(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	seedBooking(t, store, "barberia-sur", "old-1", "2026-09-10")
	seedBooking(t, store, "barberia-sur", "old-2", "2026-09-13")
	seedBooking(t, store, "barberia-sur", "today", "2026-09-14")
	seedBooking(t, store, "barberia-sur", "future", "2026-09-20")

	a := newArchiver(store, staticTenants{"barberia-sur"}, date("2026-09-14").Add(15*time.Hour))

	archived, err := a.SweepTenant(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if archived != 2 {
		t.Errorf("expected 2 archived, got %d", archived)
	}

	active, err := store.ReadAllBookings(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active bookings left, got %d", len(active))
	}
	for _, b := range active {
		if b.Date.Before(date("2026-09-14")) {
			t.Errorf("booking %s should have been archived", b.ID)
		}
	}

	hist, err := store.ReadHistoricalBookings(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 historical records, got %d", len(hist))
	}
	for _, h := range hist {
		if h.ArchivedAt.IsZero() {
			t.Errorf("historical record %s has no archive timestamp", h.ID)
		}
	}
}

// Booking dates are UTC midnights while the sweep clock reads the server's
// zone. West of UTC, local midnight of a day is a later instant than the
// UTC midnight of that same day; the cutoff must still treat them as the
// same calendar day.
func TestSweepComparesCalendarDaysAcrossZones(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	seedBooking(t, store, "barberia-sur", "today", "2026-08-31")
	seedBooking(t, store, "barberia-sur", "old-1", "2026-08-30")

	west := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, west)

	a := newArchiver(store, staticTenants{"barberia-sur"}, now)
	archived, err := a.SweepTenant(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if archived != 1 {
		t.Errorf("expected only the past booking archived, got %d", archived)
	}

	active, err := store.ReadAllBookings(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].ID != "today" {
		t.Fatalf("expected today's booking to stay active, got %+v", active)
	}
}

type recordingPublisher struct {
	messages []kafka.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestSweepPublishesArchiveEventsKeyedByTenant(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	seedBooking(t, store, "barberia-sur", "old-1", "2026-09-10")
	seedBooking(t, store, "barberia-sur", "old-2", "2026-09-11")

	pub := &recordingPublisher{}
	a := New(store, staticTenants{"barberia-sur"}, pub, testConfig())
	a.now = func() time.Time { return date("2026-09-14") }

	if _, err := a.SweepTenant(ctx, "barberia-sur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pub.messages) != 2 {
		t.Fatalf("expected 2 archive events, got %d", len(pub.messages))
	}
	for _, m := range pub.messages {
		if m.Key != "barberia-sur" {
			t.Errorf("expected event keyed by tenant code, got %q", m.Key)
		}
		if m.GetEventType() != kafka.EventBookingArchived {
			t.Errorf("expected booking.archived event, got %q", m.GetEventType())
		}
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	seedBooking(t, store, "barberia-sur", "old-1", "2026-09-10")

	a := newArchiver(store, staticTenants{"barberia-sur"}, date("2026-09-14"))

	for i := 0; i < 3; i++ {
		if _, err := a.SweepTenant(ctx, "barberia-sur"); err != nil {
			t.Fatalf("sweep %d failed: %v", i, err)
		}
	}

	hist, err := store.ReadHistoricalBookings(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hist) != 1 {
		t.Errorf("expected 1 historical record after repeated sweeps, got %d", len(hist))
	}
}

// Simulates a sweep interrupted between archive and delete: the booking is
// both active and historical. Re-running must not duplicate the record.
func TestSweepRecoversFromInterruption(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	seedBooking(t, store, "barberia-sur", "old-1", "2026-09-10")

	stale := model.Booking{
		ID: "old-1", Date: date("2026-09-10"), StartTime: "10:00",
		ProfessionalID: 1, DurationMin: 30,
	}
	if err := store.AppendHistoricalBooking(ctx, "barberia-sur", stale.Archive(date("2026-09-11"))); err != nil {
		t.Fatalf("failed to seed historical record: %v", err)
	}

	a := newArchiver(store, staticTenants{"barberia-sur"}, date("2026-09-14"))
	if _, err := a.SweepTenant(ctx, "barberia-sur"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active, err := store.ReadAllBookings(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected the stale active booking to be removed, got %d", len(active))
	}

	hist, err := store.ReadHistoricalBookings(ctx, "barberia-sur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hist) != 1 {
		t.Errorf("expected 1 historical record, got %d", len(hist))
	}
}

func TestRunOnceSweepsAllTenantsAndSkipsFailures(t *testing.T) {
	store := tenantstore.NewMemory()
	ctx := context.Background()
	seedBooking(t, store, "tenant-a", "a-1", "2026-09-10")
	seedBooking(t, store, "tenant-b", "b-1", "2026-09-10")

	a := newArchiver(store, staticTenants{"tenant-a", "tenant-b"}, date("2026-09-14"))
	if err := a.RunOnce(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tenant := range []string{"tenant-a", "tenant-b"} {
		hist, err := store.ReadHistoricalBookings(ctx, tenant)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hist) != 1 {
			t.Errorf("tenant %s: expected 1 historical record, got %d", tenant, len(hist))
		}
	}
}

func TestSweepTenantPropagatesStorageFailure(t *testing.T) {
	store := tenantstore.NewMemory()
	store.FailWith = apperrors.Storage("tenant store unavailable", nil)

	a := newArchiver(store, staticTenants{"barberia-sur"}, date("2026-09-14"))
	_, err := a.SweepTenant(context.Background(), "barberia-sur")
	if !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Fatalf("expected STORAGE_ERROR, got %v", err)
	}
}
