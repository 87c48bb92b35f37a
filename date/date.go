// Package date provides a day-granularity Date and the calendar arithmetic used to
// compare dates read from spreadsheet exports.
package date

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// ErrBlank is returned when parsing an empty cell.
var ErrBlank = errors.New("blank date")

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
//
// Transforms never call it: callers read the clock once and pass the result down.
func Today() Date { return New(time.Now().Date()) }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Format formats the date using a time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// daysIn returns the number of days in the month m of year y.
func daysIn(y int, m time.Month) int { return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day() }

// AddMonths returns the same day i months later, clamped to the end of the target
// month: 2023-01-31 plus one month is 2023-02-28.
func (d Date) AddMonths(i int) Date {
	first := New(d.y, d.m+time.Month(i), 1)
	return New(first.y, first.m, min(d.d, daysIn(first.y, first.m)))
}

// days returns the number of days from d to x.
func (d Date) days(x Date) int { return int(x.time().Sub(d.time()).Hours() / 24) }

// layouts accepted by Parse, tried in order. Month-first wins for ambiguous
// slash dates, like most spreadsheet tools do.
var layouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006.1.2",
	"2006年1月2日",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"01-02-06",
	"1-2-06",
	"1/2/06",
	"1/2/06 15:04",
	"2-Jan-06",
	"2-Jan-2006",
}

// Parse parses a Date from a spreadsheet cell. It is lenient: it accepts ISO dates
// ("2025-7-1"), slash and dotted dates, Chinese dates ("2023年5月5日"), optional time
// parts, and Excel serial day numbers ("45051").
func Parse(str string) (Date, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return Date{}, ErrBlank
	}
	for _, layout := range layouts {
		if on, err := time.Parse(layout, str); err == nil {
			return New(on.Date()), nil
		}
	}
	if serial, err := strconv.ParseFloat(str, 64); err == nil && serial >= 1 && serial < 2958466 {
		return FromSerial(serial), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", str)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// FromSerial converts an Excel serial day number (1900 date system) into a Date.
// The fractional time of day is ignored.
func FromSerial(serial float64) Date {
	// Day 60 is the fictitious 1900-02-29, epoch shifts by one before it.
	if serial < 61 {
		return New(1899, time.December, 31).Add(int(serial))
	}
	return New(1899, time.December, 30).Add(int(serial))
}
