package model

// WeekdayOverride adjusts the generic hours for one weekday. Empty fields
// inherit the generic value. Weekdays run 0=Sunday..6=Saturday.
type WeekdayOverride struct {
	Weekday int    `json:"weekday" bson:"weekday" validate:"min=0,max=6"`
	Open    string `json:"open,omitempty" bson:"open,omitempty" validate:"omitempty,clock_time"`
	Close   string `json:"close,omitempty" bson:"close,omitempty" validate:"omitempty,clock_time"`
}

// HoursConfig is a tenant's working-hours configuration. An empty
// OperatingDays set means the business opens every day of the week.
type HoursConfig struct {
	Open          string            `json:"open" bson:"open" validate:"required,clock_time"`
	Close         string            `json:"close" bson:"close" validate:"required,clock_time"`
	IntervalMin   int               `json:"interval_min" bson:"interval_min" validate:"required,min=5,max=240"`
	OperatingDays []int             `json:"operating_days,omitempty" bson:"operating_days,omitempty" validate:"omitempty,max=7,dive,min=0,max=6"`
	Overrides     []WeekdayOverride `json:"overrides,omitempty" bson:"overrides,omitempty" validate:"omitempty,max=7,dive"`
}

// IsZero reports whether no hours were configured at all.
func (h HoursConfig) IsZero() bool {
	return h.Open == "" && h.Close == "" && h.IntervalMin == 0
}
