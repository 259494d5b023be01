// Package cadence converts a site's recurrence code and a reference date
// into the next scheduled date and a display title.
//
// Codes are compact strings stored on the site row:
//
//	""                      no recurrence
//	"weekly"                every 7 days
//	"biweekly"              every 14 days
//	"monthly_same_day"      one month later, clamped to month length
//	"monthly_nth_wd:<n>:<w>" nth weekday of the following month,
//	                        w is Monday-first (0=Monday .. 6=Sunday)
//
// A malformed code never fails: scheduling must not block on a bad config
// string, so unparseable nth-weekday codes degrade to the clamped month add
// and unknown codes behave like no recurrence.
package cadence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	CodeWeekly         = "weekly"
	CodeBiweekly       = "biweekly"
	CodeMonthlySameDay = "monthly_same_day"

	nthWeekdayPrefix = "monthly_nth_wd:"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// NextDue returns the next scheduled date after from for the given code.
// The result is a UTC midnight date and depends only on the inputs.
func NextDue(code string, from time.Time) time.Time {
	base := midnight(from)
	switch {
	case code == "":
		return base
	case code == CodeWeekly:
		return base.AddDate(0, 0, 7)
	case code == CodeBiweekly:
		return base.AddDate(0, 0, 14)
	case code == CodeMonthlySameDay:
		return addMonthClamped(base)
	case strings.HasPrefix(code, nthWeekdayPrefix):
		n, weekday, ok := parseNthWeekday(code)
		if !ok {
			return addMonthClamped(base)
		}
		year, month := nextMonth(base.Year(), base.Month())
		return nthWeekdayOfMonth(year, month, weekday, n)
	}
	return base
}

// Title returns the display title for the given code, e.g.
// "Monthly 2nd Monday Cleaning". Unknown codes map to "Cleaning".
func Title(code string) string {
	switch {
	case code == "":
		return "Cleaning"
	case code == CodeWeekly:
		return "Weekly Cleaning"
	case code == CodeBiweekly:
		return "Biweekly Cleaning"
	case code == CodeMonthlySameDay:
		return "Monthly Cleaning"
	case strings.HasPrefix(code, nthWeekdayPrefix):
		n, weekday, ok := parseNthWeekday(code)
		if !ok || weekday < 0 || weekday >= len(weekdayNames) {
			return "Monthly Cleaning"
		}
		return fmt.Sprintf("Monthly %s %s Cleaning", ordinal(n), weekdayNames[weekday])
	}
	return "Cleaning"
}

func parseNthWeekday(code string) (n, weekday int, ok bool) {
	parts := strings.Split(code, ":")
	if len(parts) != 3 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	weekday, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	if n < 1 {
		return 0, 0, false
	}
	return n, weekday, true
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	case 4:
		return "4th"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// addMonthClamped advances one calendar month, clamping the day to the
// length of the target month (Jan 31 -> Feb 28/29). time.AddDate is not
// used because it rolls overflow days into the following month.
func addMonthClamped(d time.Time) time.Time {
	year, month := nextMonth(d.Year(), d.Month())
	day := d.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// nthWeekdayOfMonth returns the nth occurrence of the Monday-first weekday
// in the given month, clamped to the last day when the month has no such
// occurrence.
func nthWeekdayOfMonth(year int, month time.Month, weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := mondayFirst(first.Weekday())
	offset := ((weekday-firstWeekday)%7 + 7) % 7
	day := 1 + offset + (n-1)*7
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func mondayFirst(w time.Weekday) int {
	return (int(w) + 6) % 7
}
