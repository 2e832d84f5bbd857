package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"turnero/internal/tenantstore"
	"turnero/pkg/clock"
	"turnero/pkg/config"
	"turnero/pkg/model"
	"turnero/pkg/sanitizer"
)

type CancellationService interface {
	Cancel(ctx context.Context, tenant string, date time.Time, reason string) (*model.CancelledDay, error)
	Restore(ctx context.Context, tenant string, date time.Time) error
	IsCancelled(ctx context.Context, tenant string, date time.Time) (bool, error)
	ListFrom(ctx context.Context, tenant string, from time.Time) ([]model.CancelledDay, error)
}

type cancellationService struct {
	store tenantstore.Store
	cfg   *config.Config
}

func NewCancellationService(store tenantstore.Store, cfg *config.Config) CancellationService {
	return &cancellationService{
		store: store,
		cfg:   cfg,
	}
}

// Cancel marks a date as fully closed. Cancelling an already cancelled date
// returns the existing record unchanged.
func (s *cancellationService) Cancel(ctx context.Context, tenant string, date time.Time, reason string) (*model.CancelledDay, error) {
	date = clock.DayOf(date)
	reason = sanitizer.SanitizeText(reason)

	existing, err := s.store.ReadCancelledDay(ctx, tenant, date)
	if err != nil {
		s.cfg.Log.Error("Failed to check cancelled day",
			"tenant", tenant,
			"date", date.Format(clock.DateLayout),
			"error", err,
		)
		return nil, err
	}
	if existing != nil {
		s.cfg.Log.Debug("Day already cancelled",
			"tenant", tenant,
			"date", date.Format(clock.DateLayout),
		)
		return existing, nil
	}

	day := model.CancelledDay{
		ID:        uuid.NewString(),
		Date:      date,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.store.AppendCancelledDay(ctx, tenant, day)
	if err != nil {
		s.cfg.Log.Error("Failed to cancel day",
			"tenant", tenant,
			"date", date.Format(clock.DateLayout),
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Day cancelled",
		"tenant", tenant,
		"date", date.Format(clock.DateLayout),
		"reason", reason,
	)
	return &created, nil
}

// Restore reopens a cancelled date. Restoring a date that was never
// cancelled is a no-op.
func (s *cancellationService) Restore(ctx context.Context, tenant string, date time.Time) error {
	date = clock.DayOf(date)

	if err := s.store.RemoveCancelledDay(ctx, tenant, date); err != nil {
		s.cfg.Log.Error("Failed to restore day",
			"tenant", tenant,
			"date", date.Format(clock.DateLayout),
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Day restored",
		"tenant", tenant,
		"date", date.Format(clock.DateLayout),
	)
	return nil
}

func (s *cancellationService) IsCancelled(ctx context.Context, tenant string, date time.Time) (bool, error) {
	day, err := s.store.ReadCancelledDay(ctx, tenant, clock.DayOf(date))
	if err != nil {
		return false, err
	}
	return day != nil, nil
}

// ListFrom returns cancelled days on or after from, ascending by date.
func (s *cancellationService) ListFrom(ctx context.Context, tenant string, from time.Time) ([]model.CancelledDay, error) {
	days, err := s.store.ListCancelledDays(ctx, tenant, clock.DayOf(from))
	if err != nil {
		s.cfg.Log.Error("Failed to list cancelled days",
			"tenant", tenant,
			"from", from.Format(clock.DateLayout),
			"error", err,
		)
		return nil, err
	}

	// The store returns insertion order; the listing contract is ascending
	// by date.
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days, nil
}
