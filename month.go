package expensefox

import (
	"fmt"
	"strings"
	"time"
)

// MonthFormat is the format used to represent months as strings, e.g. "2025-08".
const MonthFormat = "2006-01"

// Month represents a calendar month, the key budgets are tracked under.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{y: t.Year(), m: t.Month()}
}

// MonthOf returns the month a timestamp falls in. The timestamp is read in
// UTC so that the month key matches the ISO-8601 form the date is persisted in.
func MonthOf(t time.Time) Month {
	u := t.UTC()
	return Month{y: u.Year(), m: u.Month()}
}

// ThisMonth returns the current wall-clock month.
func ThisMonth() Month { return MonthOf(time.Now()) }

// ParseMonth parses a Month from its "YYYY-MM" form.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthFormat, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month{y: t.Year(), m: t.Month()}, nil
}

func (m Month) Year() int         { return m.y }
func (m Month) Month() time.Month { return m.m }
func (m Month) IsZero() bool      { return m.y == 0 && m.m == 0 }

// String formats the month as "YYYY-MM".
func (m Month) String() string {
	return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// Contains reports whether the timestamp falls within this month.
func (m Month) Contains(t time.Time) bool { return MonthOf(t) == m }

// Add returns the month i months away from m. Negative values go back in time.
func (m Month) Add(i int) Month { return NewMonth(m.y, m.m+time.Month(i)) }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool {
	return m.y < x.y || (m.y == x.y && m.m < x.m)
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(data []byte) error {
	parsed, err := ParseMonth(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
