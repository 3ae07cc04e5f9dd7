package enlistment

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Days is one of the fixed weekday patterns that sections are
// scheduled on.
type Days int

// All the day patterns offered by the registrar.
const (
	// MTH meets Monday and Thursday
	MTH Days = iota
	// TF meets Tuesday and Friday
	TF
	// WS meets Wednesday and Saturday
	WS
	// MTWTHF meets daily, Monday through Friday
	MTWTHF
)

var dayNames = map[Days]string{
	MTH:    "MTH",
	TF:     "TF",
	WS:     "WS",
	MTWTHF: "MTWTHF",
}

var dayWeekdays = map[Days][]time.Weekday{
	MTH:    {time.Monday, time.Thursday},
	TF:     {time.Tuesday, time.Friday},
	WS:     {time.Wednesday, time.Saturday},
	MTWTHF: {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
}

// ParseDays converts a pattern name like "MTH" into a Days value.
func ParseDays(s string) (Days, error) {
	for d, name := range dayNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	return 0, &ValidationError{Msg: fmt.Sprintf("unknown day pattern %q", s)}
}

// Intersects reports whether two patterns share at least one weekday.
func (d Days) Intersects(other Days) bool {
	for _, a := range dayWeekdays[d] {
		for _, b := range dayWeekdays[other] {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Weekdays lists the weekdays the pattern meets on.
func (d Days) Weekdays() []time.Weekday {
	return dayWeekdays[d]
}

func (d Days) String() string {
	name, ok := dayNames[d]
	if !ok {
		return fmt.Sprintf("Days(%d)", int(d))
	}
	return name
}

// MarshalJSON implements the json.Marshaler interface
func (d Days) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (d *Days) UnmarshalJSON(b []byte) error {
	days, err := ParseDays(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = days
	return nil
}

// Scan populates the pattern from a database query result.
func (d *Days) Scan(val interface{}) error {
	switch v := val.(type) {
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Days", val)
	}
}

func (d *Days) scanString(s string) error {
	days, err := ParseDays(s)
	if err != nil {
		return err
	}
	*d = days
	return nil
}

// Value stores the pattern as its name.
func (d Days) Value() (driver.Value, error) {
	return d.String(), nil
}
