package enlistment

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TimeFormat is the clock format used for periods in requests,
// responses, and the database.
const TimeFormat = "15:04"

// TimeOfDay is a clock time stored as minutes from midnight.
type TimeOfDay int

// ParseTimeOfDay parses a clock string like "09:30".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Msg: fmt.Sprintf("bad time of day %q", s)}
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t/60, t%60)
}

// MarshalJSON implements the json.Marshaler interface
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	tm, err := ParseTimeOfDay(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*t = tm
	return nil
}

// Scan populates the time from a database column, either a clock
// string or a minute count.
func (t *TimeOfDay) Scan(val interface{}) error {
	switch v := val.(type) {
	case int64:
		*t = TimeOfDay(v)
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = TimeOfDay(v.Hour()*60 + v.Minute())
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", val)
	}
	return nil
}

// Value stores the time as a clock string.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) scanString(s string) error {
	tm, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = tm
	return nil
}

// Period is a start/end pair within a single day. The interval is
// half open: a period ending at 10:00 does not touch one starting
// at 10:00.
type Period struct {
	Start TimeOfDay `db:"start_time" json:"start"`
	End   TimeOfDay `db:"end_time" json:"end"`
}

// NewPeriod builds a period and rejects start >= end.
func NewPeriod(start, end TimeOfDay) (Period, error) {
	if start >= end {
		return Period{}, &ValidationError{
			Msg: fmt.Sprintf("period start %s must come before end %s", start, end),
		}
	}
	return Period{Start: start, End: end}, nil
}

// ParsePeriod builds a period from two clock strings.
func ParsePeriod(start, end string) (Period, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Period{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Period{}, err
	}
	return NewPeriod(s, e)
}

// OverlapsWith reports whether two periods share any time on the
// half-open interval [start, end).
func (p Period) OverlapsWith(other Period) bool {
	return p.Start < other.End && other.Start < p.End
}

func (p Period) String() string {
	return p.Start.String() + "-" + p.End.String()
}
