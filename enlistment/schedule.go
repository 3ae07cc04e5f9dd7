package enlistment

// Schedule is a recurring weekly time allocation: a day pattern plus
// a period. Immutable once built.
type Schedule struct {
	Days   Days   `json:"days"`
	Period Period `json:"period"`
}

// NewSchedule composes a day pattern and a period.
func NewSchedule(days Days, period Period) Schedule {
	return Schedule{Days: days, Period: period}
}

// ParseSchedule builds a schedule from a day-pattern name and two
// clock strings.
func ParseSchedule(days, start, end string) (Schedule, error) {
	d, err := ParseDays(days)
	if err != nil {
		return Schedule{}, err
	}
	p, err := ParsePeriod(start, end)
	if err != nil {
		return Schedule{}, err
	}
	return NewSchedule(d, p), nil
}

// OverlapsWith reports whether two schedules conflict. They do only
// when their day patterns share a weekday and their periods share
// time. The check is symmetric.
func (s Schedule) OverlapsWith(other Schedule) bool {
	return s.Days.Intersects(other.Days) && s.Period.OverlapsWith(other.Period)
}

func (s Schedule) String() string {
	return s.Days.String() + " " + s.Period.String()
}
