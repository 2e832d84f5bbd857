package hours

import (
	"errors"
	"fmt"
	"time"

	"turnero/pkg/clock"
	"turnero/pkg/config"
	apperrors "turnero/pkg/errors"
	"turnero/pkg/model"
)

// ErrClosedWeekday marks a date whose weekday is outside the tenant's
// operating set. A normal outcome, not a configuration fault.
var ErrClosedWeekday = errors.New("business does not operate on this weekday")

// DayHours are the effective hours for one calendar day, in minutes from
// midnight.
type DayHours struct {
	OpenMin     int
	CloseMin    int
	IntervalMin int
}

func (d DayHours) Open() string  { return clock.FormatMinutes(d.OpenMin) }
func (d DayHours) Close() string { return clock.FormatMinutes(d.CloseMin) }

type Resolver struct {
	cfg *config.Config
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve computes the effective hours for a date. Precedence, lowest to
// highest: engine defaults, the tenant's generic hours, built-in weekday
// defaults (Saturday closes early), the tenant's explicit weekday override.
// Returns ErrClosedWeekday when the weekday is not in the operating set and
// a CONFIGURATION_ERROR AppError when the resulting hours are unusable.
func (r *Resolver) Resolve(h model.HoursConfig, date time.Time) (DayHours, error) {
	weekday := int(date.Weekday()) // 0=Sunday..6=Saturday, same as the stored convention

	if len(h.OperatingDays) > 0 && !containsDay(h.OperatingDays, weekday) {
		return DayHours{}, ErrClosedWeekday
	}

	open := r.cfg.DefaultOpen
	close := r.cfg.DefaultClose
	interval := r.cfg.DefaultIntervalMin

	if h.Open != "" {
		open = h.Open
	}
	if h.Close != "" {
		close = h.Close
	}
	if h.IntervalMin != 0 {
		interval = h.IntervalMin
	}

	// Built-in Saturday early close. Applies only when the tenant has no
	// explicit override for Saturday below.
	if weekday == int(time.Saturday) {
		close = r.cfg.SaturdayClose
	}

	if ov, ok := findOverride(h.Overrides, weekday); ok {
		if ov.Open != "" {
			open = ov.Open
		}
		if ov.Close != "" {
			close = ov.Close
		}
	}

	openMin, err := clock.ParseMinutes(open)
	if err != nil {
		return DayHours{}, apperrors.Configuration(fmt.Sprintf("invalid opening time %q", open))
	}
	closeMin, err := clock.ParseMinutes(close)
	if err != nil {
		return DayHours{}, apperrors.Configuration(fmt.Sprintf("invalid closing time %q", close))
	}
	if openMin >= closeMin {
		return DayHours{}, apperrors.Configuration(fmt.Sprintf("opening time %s is not before closing time %s", open, close))
	}
	if interval <= 0 {
		return DayHours{}, apperrors.Configuration(fmt.Sprintf("slot interval must be positive, got %d", interval))
	}

	return DayHours{OpenMin: openMin, CloseMin: closeMin, IntervalMin: interval}, nil
}

func containsDay(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

func findOverride(overrides []model.WeekdayOverride, weekday int) (model.WeekdayOverride, bool) {
	for _, ov := range overrides {
		if ov.Weekday == weekday {
			return ov, true
		}
	}
	return model.WeekdayOverride{}, false
}
