// Package festival maps declarative holiday/festival rules to concrete
// Gregorian dates per target year.
package festival

import (
	"time"

	"github.com/username/chrono-server/internal/lunar"
	"github.com/username/chrono-server/pkg/dateutil"
)

// Rule is a declarative festival rule. The concrete types form a closed
// set dispatched by Resolve.
type Rule interface {
	isRule()
}

// FixedRule pins the same Gregorian month/day every year
type FixedRule struct {
	Month time.Month
	Day   int
}

// LunarRule pins a position in the Chinese lunar calendar, re-projected to
// Gregorian per target year. Day29Fallback retries with day 29 when the
// lunar month lacks the requested day; it is set only on the last-day-of-
// lunar-year entry — for every other festival, a missing day means the
// festival does not occur that year.
type LunarRule struct {
	Month         int
	Day           int
	Day29Fallback bool
}

// NthWeekdayRule is the n-th occurrence of a weekday within a month.
// N == -1 denotes the last occurrence.
type NthWeekdayRule struct {
	Month   time.Month
	Weekday time.Weekday
	N       int
}

// Algorithm identifies a computed-rule procedure
type Algorithm int

const (
	// AlgoEaster derives the date from Easter Sunday plus an offset in days
	AlgoEaster Algorithm = iota + 1
	// AlgoQingming locates the 清明 solar term in early April
	AlgoQingming
)

// ComputedRule derives month/day from the year through an algorithm.
// Offset applies to AlgoEaster only (days relative to Easter Sunday).
type ComputedRule struct {
	Algo   Algorithm
	Offset int
}

func (FixedRule) isRule()      {}
func (LunarRule) isRule()      {}
func (NthWeekdayRule) isRule() {}
func (ComputedRule) isRule()   {}

// Resolve maps a rule and target year to a Gregorian date at midnight UTC.
// The second return is false when the festival does not occur that year;
// callers treat that as a normal not-found outcome.
func Resolve(rule Rule, year int) (time.Time, bool) {
	switch r := rule.(type) {
	case FixedRule:
		return time.Date(year, r.Month, r.Day, 0, 0, 0, 0, time.UTC), true

	case LunarRule:
		if t, err := lunar.ToSolar(year, r.Month, r.Day, false); err == nil {
			return t, true
		}
		if r.Day29Fallback {
			if t, err := lunar.ToSolar(year, r.Month, 29, false); err == nil {
				return t, true
			}
		}
		return time.Time{}, false

	case NthWeekdayRule:
		return resolveNthWeekday(r, year)

	case ComputedRule:
		switch r.Algo {
		case AlgoEaster:
			return easterSunday(year).AddDate(0, 0, r.Offset), true
		case AlgoQingming:
			return qingming(year), true
		}
		return time.Time{}, false
	}

	return time.Time{}, false
}

func resolveNthWeekday(r NthWeekdayRule, year int) (time.Time, bool) {
	days := dateutil.DaysInMonth(year, r.Month)

	if r.N == -1 {
		for d := days; d >= 1; d-- {
			t := time.Date(year, r.Month, d, 0, 0, 0, 0, time.UTC)
			if t.Weekday() == r.Weekday {
				return t, true
			}
		}
		return time.Time{}, false
	}

	count := 0
	for d := 1; d <= days; d++ {
		t := time.Date(year, r.Month, d, 0, 0, 0, 0, time.UTC)
		if t.Weekday() == r.Weekday {
			count++
			if count == r.N {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// easterSunday computes Easter Sunday for a year using the anonymous
// Gregorian Computus algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// qingming locates the day in early April carrying the 清明 solar term.
// The April 5 default is a deliberate last-resort policy, not an error.
func qingming(year int) time.Time {
	for d := 3; d <= 6; d++ {
		if lunar.SolarTerm(year, time.April, d) == "清明" {
			return time.Date(year, time.April, d, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Date(year, time.April, 5, 0, 0, 0, 0, time.UTC)
}
