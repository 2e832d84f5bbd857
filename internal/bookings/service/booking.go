package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"turnero/internal/bookings/validator"
	"turnero/internal/hours"
	"turnero/internal/tenantstore"
	"turnero/pkg/clock"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/kafka"
	"turnero/pkg/model"
	"turnero/pkg/sanitizer"
)

type BookingService interface {
	// Admit validates a booking request and commits it atomically against
	// the current booking set. Either the booking is fully persisted and
	// returned, or nothing changes.
	Admit(ctx context.Context, tenant string, b *model.Booking) (*model.Booking, error)
	Cancel(ctx context.Context, tenant, bookingID string) error
	Get(ctx context.Context, tenant, bookingID string, date time.Time) (*model.Booking, error)
	// ListDay returns the day's active bookings plus any archived bookings
	// of the same date, sorted by start time.
	ListDay(ctx context.Context, tenant string, date time.Time, professionalID int) ([]model.Booking, error)
}

type bookingService struct {
	store     tenantstore.Store
	validator *validator.BookingValidator
	resolver  *hours.Resolver
	publisher kafka.Publisher
	cfg       *config.Config
	admitLock *keyedMutex
}

func NewBookingService(
	store tenantstore.Store,
	v *validator.BookingValidator,
	resolver *hours.Resolver,
	publisher kafka.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		store:     store,
		validator: v,
		resolver:  resolver,
		publisher: publisher,
		cfg:       cfg,
		admitLock: newKeyedMutex(),
	}
}

func admissionKey(tenant string, professionalID int, date time.Time) string {
	return fmt.Sprintf("%s|%d|%s", tenant, professionalID, date.Format(clock.DateLayout))
}

func (s *bookingService) Admit(ctx context.Context, tenant string, b *model.Booking) (*model.Booking, error) {
	s.sanitize(b)

	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"tenant", tenant,
			"error", err,
		)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	b.Date = clock.DayOf(b.Date)

	cancelled, err := s.store.ReadCancelledDay(ctx, tenant, b.Date)
	if err != nil {
		return nil, err
	}
	if cancelled != nil {
		return nil, apperrors.ClosedDay("The business is closed on the requested date")
	}

	hoursCfg, err := s.store.ReadBusinessHours(ctx, tenant)
	if err != nil {
		return nil, err
	}
	day, err := s.resolver.Resolve(hoursCfg, b.Date)
	if err != nil {
		if errors.Is(err, hours.ErrClosedWeekday) {
			return nil, apperrors.ClosedDay("The business does not operate on the requested weekday")
		}
		return nil, err
	}

	startMin, err := clock.ParseMinutes(b.StartTime)
	if err != nil {
		return nil, apperrors.InvalidInput("start_time must be in HH:MM format")
	}
	if startMin < day.OpenMin || (startMin-day.OpenMin)%day.IntervalMin != 0 {
		return nil, apperrors.Overlap("The requested start time is not a bookable slot")
	}
	if startMin+b.DurationMin > day.CloseMin {
		return nil, apperrors.Overlap("The requested service does not finish before closing time")
	}

	blockedSlots, err := s.store.ReadBlockedSlots(ctx, tenant, b.Date, b.ProfessionalID)
	if err != nil {
		return nil, err
	}
	for _, blocked := range blockedSlots {
		if blocked.Time == b.StartTime {
			return nil, apperrors.Overlap("The requested slot is blocked")
		}
	}

	// Critical section: availability shown to the client may be stale, so
	// the current booking set is re-read and the overlap test re-applied
	// under the per-key lock before anything is persisted.
	unlock := s.admitLock.Lock(admissionKey(tenant, b.ProfessionalID, b.Date))
	defer unlock()

	current, err := s.store.ReadBookings(ctx, tenant, b.ProfessionalID, b.Date)
	if err != nil {
		return nil, err
	}
	for _, existing := range current {
		existingStart, parseErr := clock.ParseMinutes(existing.StartTime)
		if parseErr != nil {
			continue
		}
		existingEnd := existingStart + existing.DurationMin
		if startMin < existingEnd && startMin+b.DurationMin > existingStart {
			return nil, apperrors.Overlap("The requested slot overlaps an existing booking")
		}
	}

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	created, err := s.store.AppendBooking(ctx, tenant, *b)
	if err != nil {
		s.cfg.Log.Error("Failed to persist booking",
			"tenant", tenant,
			"date", b.Date.Format(clock.DateLayout),
			"start_time", b.StartTime,
			"error", err,
		)
		return nil, err
	}

	s.publishEvent(ctx, tenant, kafka.EventBookingCreated, created)

	s.cfg.Log.Info("Booking admitted",
		"tenant", tenant,
		"booking_id", created.ID,
		"date", created.Date.Format(clock.DateLayout),
		"start_time", created.StartTime,
		"professional_id", created.ProfessionalID,
	)
	return &created, nil
}

func (s *bookingService) Cancel(ctx context.Context, tenant, bookingID string) error {
	if bookingID == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	all, err := s.store.ReadAllBookings(ctx, tenant)
	if err != nil {
		return err
	}
	var target *model.Booking
	for i := range all {
		if all[i].ID == bookingID {
			target = &all[i]
			break
		}
	}
	if target == nil {
		return apperrors.NotFoundWithID("Booking", bookingID)
	}

	if err := s.store.RemoveBooking(ctx, tenant, bookingID); err != nil {
		s.cfg.Log.Error("Failed to cancel booking",
			"tenant", tenant,
			"booking_id", bookingID,
			"error", err,
		)
		return err
	}

	s.publishEvent(ctx, tenant, kafka.EventBookingCancelled, *target)

	s.cfg.Log.Info("Booking cancelled",
		"tenant", tenant,
		"booking_id", bookingID,
	)
	return nil
}

func (s *bookingService) Get(ctx context.Context, tenant, bookingID string, date time.Time) (*model.Booking, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	bookings, err := s.store.ReadBookings(ctx, tenant, 0, clock.DayOf(date))
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == bookingID {
			return &bookings[i], nil
		}
	}
	return nil, apperrors.NotFoundWithID("Booking", bookingID)
}

func (s *bookingService) ListDay(ctx context.Context, tenant string, date time.Time, professionalID int) ([]model.Booking, error) {
	date = clock.DayOf(date)

	active, err := s.store.ReadBookings(ctx, tenant, professionalID, date)
	if err != nil {
		return nil, err
	}
	archived, err := s.store.ReadHistoricalBookings(ctx, tenant)
	if err != nil {
		return nil, err
	}

	day := make([]model.Booking, 0, len(active))
	day = append(day, active...)
	for _, h := range archived {
		if !clock.SameDay(h.Date, date) {
			continue
		}
		if professionalID > 0 && h.ProfessionalID != professionalID {
			continue
		}
		day = append(day, h.Booking)
	}

	sort.Slice(day, func(i, j int) bool {
		return day[i].StartTime < day[j].StartTime
	})
	return day, nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Client.Email = sanitizer.SanitizeEmail(b.Client.Email)
	b.Client.FirstName = sanitizer.SanitizeText(b.Client.FirstName)
	b.Client.LastName = sanitizer.SanitizeText(b.Client.LastName)
	b.Notes = sanitizer.SanitizeText(b.Notes)
}

func (s *bookingService) publishEvent(ctx context.Context, tenant, eventType string, b model.Booking) {
	// Keyed by tenant code so the hash balancer keeps a tenant's events on
	// one partition, in order.
	msg := kafka.NewMessage().
		WithKey(tenant).
		WithEventType(eventType).
		WithSource("booking-api").
		WithValue(map[string]any{
			"tenant":  tenant,
			"booking": b,
		}).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		// Event delivery is best effort; the booking is already committed.
		s.cfg.Log.Warn("Failed to publish booking event",
			"tenant", tenant,
			"event_type", eventType,
			"booking_id", b.ID,
			"error", err,
		)
	}
}
