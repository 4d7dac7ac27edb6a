// Package calendar provides Julian and Gregorian calendar conversions,
// Easter computus for the Orthodox and Catholic rites, and the Orthodox
// Echo (tone) cycle.
//
// All dates are civil dates at midnight UTC. Years use astronomical
// numbering (year 0 exists) except where a function documents the
// common-era convention.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Calendar identifies which calendar a Date should be read in.
type Calendar int

const (
	Gregorian Calendar = iota
	Julian
)

// String returns the calendar name.
func (c Calendar) String() string {
	switch c {
	case Gregorian:
		return "gregorian"
	case Julian:
		return "julian"
	default:
		return fmt.Sprintf("Calendar(%d)", int(c))
	}
}

// ErrInvalidDate is returned by Validate for out-of-range components.
var ErrInvalidDate = errors.New("invalid date")

// Date is a (year, month, day) triple. It carries no calendar of its own:
// the function it is passed to decides whether it is a Julian or a
// Gregorian date. Components are never normalized.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate is shorthand for a Date literal.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf converts t to UTC and returns its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of d read as a Gregorian date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the Gregorian date n days after d.
func (d Date) AddDays(n int) Date {
	return JulianDayNumberToGregorian(GregorianToJulianDayNumber(d) + float64(n))
}

// Before reports whether d sorts before other. Both must be in the same calendar.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Equal reports whether d and other have identical components.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Weekday returns the day of the week of d read as a Gregorian date.
func (d Date) Weekday() time.Weekday {
	// JDN 0.5 offsets to midnight; JDN 0 was a Monday.
	n := int(GregorianToJulianDayNumber(d) + 0.5)
	return time.Weekday(floorMod(n+1, 7))
}

// String formats d as YYYY-MM-DD. Negative years get a leading minus.
func (d Date) String() string {
	year := d.Year
	sign := ""
	if year < 0 {
		sign = "-"
		year = -year
	}
	return fmt.Sprintf("%s%04d-%02d-%02d", sign, year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses a date in [-]YYYY-MM-DD form. It checks the format only;
// use Validate to check the components against a calendar.
func ParseDate(s string) (Date, error) {
	raw := s
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) < 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("parse date %q: expected YYYY-MM-DD", raw)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || strings.ContainsAny(p, "+-") {
			return Date{}, fmt.Errorf("parse date %q: expected YYYY-MM-DD", raw)
		}
		nums[i] = n
	}

	year := nums[0]
	if negative {
		year = -year
	}
	return Date{Year: year, Month: time.Month(nums[1]), Day: nums[2]}, nil
}

// DaysInMonth returns the length of month in year for the given calendar.
func DaysInMonth(cal Calendar, year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		leap := IsLeapGregorianYear(year)
		if cal == Julian {
			leap = IsLeapJulianYear(year)
		}
		if leap {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Validate reports whether d is a real date in cal. The returned error
// wraps ErrInvalidDate.
func (d Date) Validate(cal Calendar) error {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("%w: month %d out of range in %s", ErrInvalidDate, int(d.Month), d)
	}
	if cal == Julian && d.Year == 0 {
		return fmt.Errorf("%w: the Julian calendar has no year 0", ErrInvalidDate)
	}
	if last := DaysInMonth(cal, d.Year, d.Month); d.Day < 1 || d.Day > last {
		return fmt.Errorf("%w: day %d out of range 1-%d in %s %s", ErrInvalidDate, d.Day, last, cal, d)
	}
	return nil
}
