package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueFixedIntervals(t *testing.T) {
	starts := []time.Time{
		date(2024, time.June, 1),
		date(2024, time.February, 26),  // leap february boundary
		date(2023, time.December, 28),  // year boundary
		date(2024, time.December, 31),  // year boundary, exact
	}
	for _, from := range starts {
		assert.Equal(t, from.AddDate(0, 0, 7), NextDue(CodeWeekly, from))
		assert.Equal(t, from.AddDate(0, 0, 14), NextDue(CodeBiweekly, from))
	}
}

func TestNextDueMonthlySameDayClampsToMonthEnd(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), NextDue(CodeMonthlySameDay, date(2024, time.January, 31)))
	assert.Equal(t, date(2023, time.February, 28), NextDue(CodeMonthlySameDay, date(2023, time.January, 31)))
	assert.Equal(t, date(2024, time.June, 30), NextDue(CodeMonthlySameDay, date(2024, time.May, 31)))
	assert.Equal(t, date(2025, time.January, 15), NextDue(CodeMonthlySameDay, date(2024, time.December, 15)))
}

func TestNextDueNthWeekday(t *testing.T) {
	// 2nd Monday of April 2024
	assert.Equal(t, date(2024, time.April, 8), NextDue("monthly_nth_wd:2:0", date(2024, time.March, 15)))
	// 1st Sunday of March 2024
	assert.Equal(t, date(2024, time.March, 3), NextDue("monthly_nth_wd:1:6", date(2024, time.February, 10)))
	// always advances into the following month, even from late in a month
	assert.Equal(t, date(2025, time.January, 6), NextDue("monthly_nth_wd:1:0", date(2024, time.December, 31)))
}

func TestNextDueNthWeekdayClampsWhenOccurrenceMissing(t *testing.T) {
	// February 2023 has four Mondays; a 5th clamps to the last day.
	assert.Equal(t, date(2023, time.February, 28), NextDue("monthly_nth_wd:5:0", date(2023, time.January, 10)))
}

func TestNextDueMalformedCodeFallsBack(t *testing.T) {
	from := date(2024, time.January, 31)
	want := date(2024, time.February, 29)
	assert.Equal(t, want, NextDue("monthly_nth_wd:x:0", from))
	assert.Equal(t, want, NextDue("monthly_nth_wd:2", from))
	assert.Equal(t, want, NextDue("monthly_nth_wd:2:0:9", from))
	assert.Equal(t, want, NextDue("monthly_nth_wd:0:0", from))
}

func TestNextDueUnknownOrEmptyCodeIsNoOp(t *testing.T) {
	from := date(2024, time.May, 4)
	assert.Equal(t, from, NextDue("", from))
	assert.Equal(t, from, NextDue("quarterly", from))
}

func TestNextDueNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	from := time.Date(2024, time.June, 1, 23, 30, 0, 0, loc)
	got := NextDue(CodeWeekly, from)
	assert.Equal(t, date(2024, time.June, 9), got)
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"":                     "Cleaning",
		"weekly":               "Weekly Cleaning",
		"biweekly":             "Biweekly Cleaning",
		"monthly_same_day":     "Monthly Cleaning",
		"monthly_nth_wd:2:0":   "Monthly 2nd Monday Cleaning",
		"monthly_nth_wd:1:6":   "Monthly 1st Sunday Cleaning",
		"monthly_nth_wd:5:2":   "Monthly 5th Wednesday Cleaning",
		"monthly_nth_wd:bad:0": "Monthly Cleaning",
		"monthly_nth_wd:2:9":   "Monthly Cleaning",
		"something_else":       "Cleaning",
	}
	for code, want := range cases {
		assert.Equal(t, want, Title(code), "code %q", code)
	}
}
