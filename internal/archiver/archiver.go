package archiver

import (
	"context"
	"sync"
	"time"

	"turnero/internal/tenantstore"
	"turnero/pkg/clock"
	"turnero/pkg/config"
	"turnero/pkg/kafka"
	"turnero/pkg/model"
)

// TenantSource lists the tenant codes a sweep must visit.
type TenantSource interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

// Archiver moves bookings dated strictly before today to historical
// storage. Archive-then-delete per booking: the append is upsert-by-id and
// the delete is a no-op when the booking is already gone, so an interrupted
// sweep can re-run without losing or duplicating records.
type Archiver struct {
	store     tenantstore.Store
	tenants   TenantSource
	publisher kafka.Publisher
	cfg       *config.Config

	mu       sync.Mutex
	inFlight map[string]bool

	now func() time.Time
}

func New(store tenantstore.Store, tenants TenantSource, publisher kafka.Publisher, cfg *config.Config) *Archiver {
	return &Archiver{
		store:     store,
		tenants:   tenants,
		publisher: publisher,
		cfg:       cfg,
		inFlight:  make(map[string]bool),
		now:       time.Now,
	}
}

// Run sweeps once immediately, then once per configured interval until the
// context is cancelled.
func (a *Archiver) Run(ctx context.Context) {
	a.cfg.Log.Info("Archiver started",
		"sweep_interval", a.cfg.SweepInterval,
	)

	if err := a.RunOnce(ctx); err != nil {
		a.cfg.Log.Error("Archival sweep failed", "error", err)
	}

	ticker := time.NewTicker(a.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.cfg.Log.Info("Archiver stopped")
			return
		case <-ticker.C:
			if err := a.RunOnce(ctx); err != nil {
				a.cfg.Log.Error("Archival sweep failed", "error", err)
			}
		}
	}
}

// RunOnce sweeps every active tenant sequentially. A tenant whose sweep
// fails is logged and skipped; the run continues with the rest.
func (a *Archiver) RunOnce(ctx context.Context) error {
	codes, err := a.tenants.ListActiveCodes(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, code := range codes {
		archived, err := a.SweepTenant(ctx, code)
		if err != nil {
			a.cfg.Log.Error("Tenant sweep failed",
				"tenant", code,
				"error", err,
			)
			continue
		}
		total += archived
	}

	a.cfg.Log.Info("Archival sweep completed",
		"tenants", len(codes),
		"archived", total,
	)
	return nil
}

// SweepTenant archives the tenant's expired bookings and returns how many
// were moved. Concurrent sweeps of the same tenant are collapsed: the
// second caller returns immediately with zero.
func (a *Archiver) SweepTenant(ctx context.Context, tenant string) (int, error) {
	a.mu.Lock()
	if a.inFlight[tenant] {
		a.mu.Unlock()
		return 0, nil
	}
	a.inFlight[tenant] = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		delete(a.inFlight, tenant)
		a.mu.Unlock()
	}()

	// Booking dates are UTC-normalized wire dates while now() reads the
	// server clock, so the cutoff is compared by calendar day, not instant.
	today := a.now()

	bookings, err := a.store.ReadAllBookings(ctx, tenant)
	if err != nil {
		return 0, err
	}

	archived := 0
	for _, b := range bookings {
		if !clock.BeforeDay(b.Date, today) {
			continue
		}

		// Archive first; only delete once the record is safely in
		// historical storage.
		if err := a.store.AppendHistoricalBooking(ctx, tenant, b.Archive(a.now().UTC())); err != nil {
			return archived, err
		}
		if err := a.store.RemoveBooking(ctx, tenant, b.ID); err != nil {
			return archived, err
		}
		archived++

		a.publishArchived(ctx, tenant, b)
	}

	if archived > 0 {
		a.cfg.Log.Info("Tenant swept",
			"tenant", tenant,
			"archived", archived,
		)
	}
	return archived, nil
}

func (a *Archiver) publishArchived(ctx context.Context, tenant string, b model.Booking) {
	msg := kafka.NewMessage().
		WithKey(tenant).
		WithEventType(kafka.EventBookingArchived).
		WithSource("archiver").
		WithValue(map[string]any{
			"tenant":  tenant,
			"booking": b,
		}).
		Build()

	if err := a.publisher.Publish(ctx, msg); err != nil {
		a.cfg.Log.Warn("Failed to publish archive event",
			"tenant", tenant,
			"booking_id", b.ID,
			"error", err,
		)
	}
}
