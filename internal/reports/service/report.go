package service

import (
	"context"
	"sort"
	"time"

	"turnero/internal/tenantstore"
	"turnero/pkg/clock"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
)

// DayCount is one calendar day's booking total within a month summary.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ReportService interface {
	// MonthSummary counts bookings per day across the month, active and
	// archived alike, ascending by date. Days with no bookings are omitted.
	MonthSummary(ctx context.Context, tenant string, year int, month time.Month) ([]DayCount, error)
}

type reportService struct {
	store tenantstore.Store
	cfg   *config.Config
}

func NewReportService(store tenantstore.Store, cfg *config.Config) ReportService {
	return &reportService{
		store: store,
		cfg:   cfg,
	}
}

func (s *reportService) MonthSummary(ctx context.Context, tenant string, year int, month time.Month) ([]DayCount, error) {
	if year < 2000 || year > 2200 {
		return nil, apperrors.InvalidInput("year is out of range")
	}
	if month < time.January || month > time.December {
		return nil, apperrors.InvalidInput("month must be between 1 and 12")
	}

	active, err := s.store.ReadAllBookings(ctx, tenant)
	if err != nil {
		return nil, err
	}
	archived, err := s.store.ReadHistoricalBookings(ctx, tenant)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	tally := func(date time.Time) {
		if date.Year() == year && date.Month() == month {
			counts[date.Format(clock.DateLayout)]++
		}
	}
	for _, b := range active {
		tally(b.Date)
	}
	for _, h := range archived {
		tally(h.Date)
	}

	summary := make([]DayCount, 0, len(counts))
	for date, count := range counts {
		summary = append(summary, DayCount{Date: date, Count: count})
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Date < summary[j].Date
	})

	s.cfg.Log.Debug("Month summary computed",
		"tenant", tenant,
		"year", year,
		"month", int(month),
		"days", len(summary),
	)
	return summary, nil
}
