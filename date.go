package taxlot

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// This file handles calendar dates. A lot's purchase date and a disposal's
// sale date are plain calendar days; tax-year bounds and holding periods are
// computed by direct comparison of Date values, with no timezone handling.

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the write date format.
const DateFormat = "2006-01-02"

const Day = 24 * time.Hour

// Date is a calendar date, without time or timezone information.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate creates a new normalized Date, so that NewDate(2025, 1, 32) is
// actually 2025-02-01.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return Date{y: y, m: m, d: d}
}

// Year returns the date's year.
func (d Date) Year() int { return d.y }

// Month returns the date's month.
func (d Date) Month() time.Month { return d.m }

// Day returns the date's day of month.
func (d Date) Day() int { return d.d }

// String returns the date in the standard write format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true for the zero value of Date.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Before returns true if d is strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After returns true if d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns the date i days later (or earlier for negative i).
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Sub returns the number of whole days from x to d. It is positive when d is
// after x. This is the elapsed time used for holding-period classification.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / Day) }

var (
	relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)
	monthDayDateRE = regexp.MustCompile(`^(?:(\d+)-)?(\d+)$`)
)

// ParseDate parses a Date from a string. It is lenient and accepts formats
// like "2025-7-1", relative offsets like "-3d", and "[MM-]DD" shorthands
// resolved against today.
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	// Handle "0d" as a special case for today
	if str == "0d" {
		return Today(), nil
	}

	// Relative duration format (e.g. -1d, +2w), sign is mandatory.
	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return NewDate(today.Year(), today.Month()+time.Month(num), today.Day()), nil
		case "y":
			return NewDate(today.Year()+num, today.Month(), today.Day()), nil
		}
	}

	// [MM-]DD format (e.g. 27, 8-27), resolved in the current year.
	if match := monthDayDateRE.FindStringSubmatch(str); match != nil {
		day, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid day in date %q: %w", str, err)
		}
		today := Today()
		year, month := today.Year(), today.Month()
		if match[1] != "" {
			m, err := strconv.Atoi(match[1])
			if err != nil {
				return Date{}, fmt.Errorf("invalid month in date %q: %w", str, err)
			}
			month = time.Month(m)
		}
		return NewDate(year, month, day), nil
	}

	// Standard ISO format, slightly more permissive for read to support
	// 2025-7-1 instead of 2025-07-01.
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		// try the long format
		on, err = time.Parse("2006-01-02T15:04:05.000-0700", str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParse is like ParseDate but panics on error.
func MustParse(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (j *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("date must be a JSON string: %w", err)
	}
	d, err := ParseDate(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (j Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.String())
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// Range is an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range [from, to], swapping the bounds if needed.
func NewRange(from, to Date) Range {
	if to.Before(from) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// YearRange returns the range covering a full calendar year, the span of a
// tax period.
func YearRange(year int) Range {
	return Range{From: NewDate(year, time.January, 1), To: NewDate(year, time.December, 31)}
}

// Contains returns true if date is within the range (inclusive).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }
