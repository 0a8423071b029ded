package models

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format of a Date.
const DateLayout = "2006-01-02"

// Date is a timezone-naive calendar date. The wrapped time is always midnight UTC.
type Date time.Time

// NewDate returns the Date for the given calendar day. Out-of-range days are
// normalized the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day on which t falls in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string. RFC3339 timestamps are accepted as well
// and truncated to their calendar day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// Time returns the underlying midnight UTC time.
func (d Date) Time() time.Time { return time.Time(d) }

// Year returns the year of d.
func (d Date) Year() int { return time.Time(d).Year() }

// Month returns the month of d.
func (d Date) Month() time.Month { return time.Time(d).Month() }

// Day returns the day of month of d.
func (d Date) Day() int { return time.Time(d).Day() }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return time.Time(d).IsZero() }

// Before reports whether d is a strictly earlier calendar day than e.
func (d Date) Before(e Date) bool { return time.Time(d).Before(time.Time(e)) }

// After reports whether d is a strictly later calendar day than e.
func (d Date) After(e Date) bool { return time.Time(d).After(time.Time(e)) }

// Equal reports whether d and e are the same calendar day.
func (d Date) Equal(e Date) bool { return time.Time(d).Equal(time.Time(e)) }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return Date(time.Time(d).AddDate(0, 0, n)) }

// AddMonthsClamped returns d shifted by n calendar months. When the target
// month is shorter than d's day, the result is the last day of that month.
func (d Date) AddMonthsClamped(n int) Date {
	y, m, day := time.Time(d).Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

// String returns d formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	if b, ok := value.([]byte); ok {
		value = string(b)
	}
	if s, ok := value.(string); ok {
		if len(s) > len(DateLayout) {
			s = s[:len(DateLayout)]
		}
		parsed, err := ParseDate(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	nullTime := &sql.NullTime{}
	if err := nullTime.Scan(value); err != nil {
		return err
	}
	if !nullTime.Valid {
		*d = Date{}
		return nil
	}
	*d = DateOf(nullTime.Time.UTC())
	return nil
}

// Value implements driver.Valuer. Dates are written as YYYY-MM-DD so that
// lexical and calendar ordering agree on every backend.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// GormDataType defines the column type used by gorm.
func (Date) GormDataType() string {
	return "date"
}
