package service

import (
	"context"
	"testing"
	"time"

	"turnero/internal/tenantstore"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

func TestCancelIsIdempotent(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := NewCancellationService(store, testConfig())
	ctx := context.Background()
	date := mustDate(t, "2026-09-14")

	first, err := svc.Cancel(ctx, "barberia-sur", date, "feriado")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Cancel(ctx, "barberia-sur", date, "otro motivo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected the original record back, got id %s want %s", second.ID, first.ID)
	}
	if second.Reason != "feriado" {
		t.Errorf("cancelling twice must not rewrite the reason, got %q", second.Reason)
	}

	days, err := svc.ListFrom(ctx, "barberia-sur", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected one cancelled day, got %d", len(days))
	}
}

func TestCancelNormalizesDateToMidnight(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := NewCancellationService(store, testConfig())
	ctx := context.Background()

	at := time.Date(2026, 9, 14, 17, 45, 12, 0, time.UTC)
	if _, err := svc.Cancel(ctx, "barberia-sur", at, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, err := svc.IsCancelled(ctx, "barberia-sur", mustDate(t, "2026-09-14"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cancelled {
		t.Error("expected the midnight-normalized date to be cancelled")
	}
}

func TestRestore(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := NewCancellationService(store, testConfig())
	ctx := context.Background()
	date := mustDate(t, "2026-09-14")

	if _, err := svc.Cancel(ctx, "barberia-sur", date, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Restore(ctx, "barberia-sur", date); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, err := svc.IsCancelled(ctx, "barberia-sur", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled {
		t.Error("expected the day to be open again")
	}

	// Restoring a date that was never cancelled is a no-op.
	if err := svc.Restore(ctx, "barberia-sur", mustDate(t, "2026-12-25")); err != nil {
		t.Errorf("expected no error on restoring an open day, got %v", err)
	}
}

func TestListFromFiltersAndSorts(t *testing.T) {
	store := tenantstore.NewMemory()
	svc := NewCancellationService(store, testConfig())
	ctx := context.Background()

	for _, d := range []string{"2026-09-20", "2026-09-10", "2026-09-15"} {
		if _, err := svc.Cancel(ctx, "barberia-sur", mustDate(t, d), ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	days, err := svc.ListFrom(ctx, "barberia-sur", mustDate(t, "2026-09-12"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if !days[0].Date.Before(days[1].Date) {
		t.Errorf("expected ascending order, got %v then %v", days[0].Date, days[1].Date)
	}
	if got := days[0].Date.Format("2006-01-02"); got != "2026-09-15" {
		t.Errorf("expected 2026-09-15 first, got %s", got)
	}
}

func TestStorageFailurePropagates(t *testing.T) {
	store := tenantstore.NewMemory()
	store.FailWith = apperrors.Storage("tenant store unavailable", nil)
	svc := NewCancellationService(store, testConfig())

	_, err := svc.Cancel(context.Background(), "barberia-sur", mustDate(t, "2026-09-14"), "")
	if !apperrors.HasCode(err, apperrors.CodeStorage) {
		t.Fatalf("expected STORAGE_ERROR, got %v", err)
	}
}
