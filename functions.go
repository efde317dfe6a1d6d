package lakesql

import (
	"fmt"
	"regexp"
	"time"

	"github.com/jinzhu/now"
)

// Calendar helpers mirroring the part-based date/timestamp arithmetic the
// engine exposes in SQL, for use when shaping load windows and partition
// values on the Go side.

var nonDigit = regexp.MustCompile(`\D`)

// calendar is the shared parsing/truncation config: weeks start on Monday
// and compact identifiers like "20250527130509" parse as timestamps.
var calendar = &now.Config{
	WeekStartDay: time.Monday,
	TimeLocation: time.UTC,
	TimeFormats:  append(append([]string{}, now.TimeFormats...), "20060102150405", "20060102"),
}

// CurrentTimestamp returns the current time in UTC.
func CurrentTimestamp() time.Time {
	return time.Now().UTC()
}

// CurrentDate returns the current UTC day at midnight.
func CurrentDate() time.Time {
	t := CurrentTimestamp()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentTime returns the current UTC time of day as "15:04:05".
func CurrentTime() string {
	return CurrentTimestamp().Format("15:04:05")
}

// TimestampAdd shifts t forward by n units of part. Supported parts: year,
// month, week, day, hour, minute, second, microsecond.
func TimestampAdd(t time.Time, n int, part string) (time.Time, error) {
	switch part {
	case "year":
		return t.AddDate(n, 0, 0), nil
	case "month":
		return t.AddDate(0, n, 0), nil
	case "week":
		return t.AddDate(0, 0, 7*n), nil
	case "day":
		return t.AddDate(0, 0, n), nil
	case "hour":
		return t.Add(time.Duration(n) * time.Hour), nil
	case "minute":
		return t.Add(time.Duration(n) * time.Minute), nil
	case "second":
		return t.Add(time.Duration(n) * time.Second), nil
	case "microsecond":
		return t.Add(time.Duration(n) * time.Microsecond), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPart, part)
}

// TimestampSub shifts t backward by n units of part.
func TimestampSub(t time.Time, n int, part string) (time.Time, error) {
	return TimestampAdd(t, -n, part)
}

// TimestampDiff returns the number of whole days between start and end.
func TimestampDiff(end, start time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// TimestampTrunc truncates t to the beginning of part. Supported parts:
// year, month, week, day, hour, minute, second. Weeks begin on Monday.
func TimestampTrunc(t time.Time, part string) (time.Time, error) {
	switch part {
	case "year":
		return calendar.With(t).BeginningOfYear(), nil
	case "month":
		return calendar.With(t).BeginningOfMonth(), nil
	case "week":
		return calendar.With(t).BeginningOfWeek(), nil
	case "day":
		return calendar.With(t).BeginningOfDay(), nil
	case "hour":
		return calendar.With(t).BeginningOfHour(), nil
	case "minute":
		return calendar.With(t).BeginningOfMinute(), nil
	case "second":
		return t.Truncate(time.Second), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPart, part)
}

// TimestampFormat formats t with a Go reference layout.
func TimestampFormat(t time.Time, layout string) string {
	return t.Format(layout)
}

// ParseTimestamp parses a timestamp from the lenient set of layouts the
// library accepts, including date-only and compact identifier forms.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := calendar.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	return t, nil
}

// ToTimestampID reduces a timestamp string to its digits with second
// precision, e.g. "2025-05-27 13:05:09" -> "20250527130509".
func ToTimestampID(s string) (string, error) {
	if _, err := ParseTimestamp(s); err != nil {
		return "", err
	}
	if len(s) > 19 {
		s = s[:19]
	}
	return nonDigit.ReplaceAllString(s, ""), nil
}

// DateAdd shifts a date forward by n units of part.
func DateAdd(d time.Time, n int, part string) (time.Time, error) {
	return TimestampAdd(d, n, part)
}

// DateSub shifts a date backward by n units of part.
func DateSub(d time.Time, n int, part string) (time.Time, error) {
	return TimestampSub(d, n, part)
}

// DateDiff returns the number of whole days between start and end.
func DateDiff(end, start time.Time) int {
	return TimestampDiff(end, start)
}

// DateTrunc truncates a date to the beginning of part. Supported parts:
// year, month.
func DateTrunc(d time.Time, part string) (time.Time, error) {
	switch part {
	case "year", "month":
		return TimestampTrunc(d, part)
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPart, part)
}

// DateFormat formats a date with a Go reference layout.
func DateFormat(d time.Time, layout string) string {
	return d.Format(layout)
}

// ParseDate parses a date from the same layouts as ParseTimestamp and
// drops the time of day.
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// ToDateID reduces a timestamp or date string to its date digits,
// e.g. "2025-05-27 13:05:09" -> "20250527".
func ToDateID(s string) (string, error) {
	if _, err := ParseTimestamp(s); err != nil {
		return "", err
	}
	if len(s) > 10 {
		s = s[:10]
	}
	return nonDigit.ReplaceAllString(s, ""), nil
}

// Year returns the year of t.
func Year(t time.Time) int { return t.Year() }

// Month returns the month of t as 1..12.
func Month(t time.Time) int { return int(t.Month()) }

// MonthName returns the English month name of t.
func MonthName(t time.Time) string { return t.Month().String() }

// Day returns the day of month of t.
func Day(t time.Time) int { return t.Day() }

// DayName returns the English weekday name of t.
func DayName(t time.Time) string { return t.Weekday().String() }

// Hour returns the hour of t.
func Hour(t time.Time) int { return t.Hour() }

// Minute returns the minute of t.
func Minute(t time.Time) int { return t.Minute() }

// Second returns the second of t.
func Second(t time.Time) int { return t.Second() }
