// Package daykey holds the single calendar policy used by all logs: a day
// is the local calendar date, formatted YYYY-MM-DD, regardless of the
// time-of-day or the timestamp shape a record arrived with.
package daykey

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDayKey = errors.New("invalid day key")

// DayKey is a local calendar date in YYYY-MM-DD form.
type DayKey string

func FromTime(t time.Time) DayKey {
	return DayKey(t.Local().Format(Layout))
}

func Today() DayKey {
	return FromTime(time.Now())
}

func Parse(s string) (DayKey, error) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayKey, s)
	}
	// reject dates that normalize away, e.g. 2025-02-30
	if t.Format(Layout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayKey, s)
	}
	return DayKey(s), nil
}

func (d DayKey) String() string {
	return string(d)
}

// Time returns midnight local time of the day.
func (d DayKey) Time() time.Time {
	t, _ := time.ParseInLocation(Layout, string(d), time.Local)
	return t
}

func (d DayKey) AddDays(n int) DayKey {
	return FromTime(d.Time().AddDate(0, 0, n))
}

func (d DayKey) Before(other DayKey) bool {
	return string(d) < string(other)
}

// NormalizeTimestamp converts the timestamp shapes seen at the persistence
// boundary (RFC3339 string, date-only string, epoch millis as number or
// numeric string, native time) into a single time.Time, so that nothing
// downstream ever branches on the representation.
func NormalizeTimestamp(v any) (time.Time, error) {
	switch ts := v.(type) {
	case time.Time:
		return ts, nil
	case int64:
		return time.UnixMilli(ts), nil
	case float64:
		return time.UnixMilli(int64(ts)), nil
	case string:
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t, nil
		}
		if t, err := time.ParseInLocation(Layout, ts, time.Local); err == nil {
			return t, nil
		}
		if millis, err := strconv.ParseInt(ts, 10, 64); err == nil {
			return time.UnixMilli(millis), nil
		}
		return time.Time{}, fmt.Errorf("unsupported timestamp string: %q", ts)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type: %T", v)
	}
}

// Month is a calendar month, YYYY-MM.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func MonthOf(d DayKey) Month {
	t := d.Time()
	return Month{Year: t.Year(), Month: t.Month()}
}

// Days returns the full number of days in the month, whether or not they
// have occurred yet.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

func (m Month) Contains(d DayKey) bool {
	t := d.Time()
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
