package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"turnero/internal/tenantstore"
	"turnero/pkg/clock"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/model"
	"turnero/pkg/sanitizer"
)

type BlockService interface {
	Block(ctx context.Context, tenant string, b model.BlockedSlot) (*model.BlockedSlot, error)
	Unblock(ctx context.Context, tenant string, date time.Time, timeOfDay string, professionalID int) error
	List(ctx context.Context, tenant string, date time.Time, professionalID int) ([]model.BlockedSlot, error)
}

type blockService struct {
	store tenantstore.Store
	cfg   *config.Config
}

func NewBlockService(store tenantstore.Store, cfg *config.Config) BlockService {
	return &blockService{
		store: store,
		cfg:   cfg,
	}
}

// Block marks a single slot as unavailable. Blocking a slot that is already
// blocked for the same professional returns the existing record unchanged.
func (s *blockService) Block(ctx context.Context, tenant string, b model.BlockedSlot) (*model.BlockedSlot, error) {
	if !clock.IsClockTime(b.Time) {
		return nil, apperrors.InvalidInput("blocked slot time must be in HH:MM format")
	}
	if b.ProfessionalID <= 0 {
		return nil, apperrors.InvalidInput("professional_id must be positive")
	}
	b.Date = clock.DayOf(b.Date)
	b.Reason = sanitizer.SanitizeText(b.Reason)

	existing, err := s.store.ReadBlockedSlots(ctx, tenant, b.Date, b.ProfessionalID)
	if err != nil {
		s.cfg.Log.Error("Failed to read blocked slots",
			"tenant", tenant,
			"date", b.Date.Format(clock.DateLayout),
			"error", err,
		)
		return nil, err
	}
	for i := range existing {
		if existing[i].Time == b.Time {
			s.cfg.Log.Debug("Slot already blocked",
				"tenant", tenant,
				"date", b.Date.Format(clock.DateLayout),
				"time", b.Time,
				"professional_id", b.ProfessionalID,
			)
			return &existing[i], nil
		}
	}

	b.ID = uuid.NewString()
	created, err := s.store.AppendBlockedSlot(ctx, tenant, b)
	if err != nil {
		s.cfg.Log.Error("Failed to block slot",
			"tenant", tenant,
			"date", b.Date.Format(clock.DateLayout),
			"time", b.Time,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Slot blocked",
		"tenant", tenant,
		"date", b.Date.Format(clock.DateLayout),
		"time", b.Time,
		"professional_id", b.ProfessionalID,
	)
	return &created, nil
}

// Unblock removes a block by its natural key. Unblocking a slot that is not
// blocked is a no-op.
func (s *blockService) Unblock(ctx context.Context, tenant string, date time.Time, timeOfDay string, professionalID int) error {
	if !clock.IsClockTime(timeOfDay) {
		return apperrors.InvalidInput("blocked slot time must be in HH:MM format")
	}
	date = clock.DayOf(date)

	if err := s.store.RemoveBlockedSlot(ctx, tenant, date, timeOfDay, professionalID); err != nil {
		s.cfg.Log.Error("Failed to unblock slot",
			"tenant", tenant,
			"date", date.Format(clock.DateLayout),
			"time", timeOfDay,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Slot unblocked",
		"tenant", tenant,
		"date", date.Format(clock.DateLayout),
		"time", timeOfDay,
		"professional_id", professionalID,
	)
	return nil
}

func (s *blockService) List(ctx context.Context, tenant string, date time.Time, professionalID int) ([]model.BlockedSlot, error) {
	slots, err := s.store.ReadBlockedSlots(ctx, tenant, clock.DayOf(date), professionalID)
	if err != nil {
		s.cfg.Log.Error("Failed to list blocked slots",
			"tenant", tenant,
			"date", date.Format(clock.DateLayout),
			"error", err,
		)
		return nil, err
	}
	return slots, nil
}
