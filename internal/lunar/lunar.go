// Package lunar wraps the lunar-go library behind a small conversion API.
//
// The library panics on lunar dates that do not exist (variable-length lunar
// months), so every conversion from a lunar date goes through a recover
// boundary and reports a normal error instead.
package lunar

import (
	"container/list"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// FromSolar returns the lunar calendar view of a Gregorian date.
func FromSolar(year int, month time.Month, day int) *calendar.Lunar {
	return calendar.NewSolarFromYmd(year, int(month), day).GetLunar()
}

// FromTime returns the lunar calendar view of the calendar day of t.
func FromTime(t time.Time) *calendar.Lunar {
	return FromSolar(t.Year(), t.Month(), t.Day())
}

// ToSolar converts a lunar date to a Gregorian date at midnight UTC.
// leap selects the leap month (闰月) of that lunar year. An error is
// returned when the requested lunar day does not exist.
func ToSolar(year, month, day int, leap bool) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid lunar date %d/%d/%d: %v", year, month, day, r)
		}
	}()

	m := month
	if leap {
		// lunar-go denotes leap months with a negative month number
		m = -month
	}
	solar := calendar.NewLunarFromYmd(year, m, day).GetSolar()
	t = time.Date(solar.GetYear(), time.Month(solar.GetMonth()), solar.GetDay(), 0, 0, 0, 0, time.UTC)
	return t, nil
}

// Lookup returns the lunar object for a lunar date, with the same panic
// recovery as ToSolar. Used where callers need more than the solar date.
func Lookup(year, month, day int, leap bool) (l *calendar.Lunar, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid lunar date %d/%d/%d: %v", year, month, day, r)
		}
	}()

	m := month
	if leap {
		m = -month
	}
	l = calendar.NewLunarFromYmd(year, m, day)
	return l, nil
}

// SolarTerm returns the solar-term (节气) label falling on the given
// Gregorian day, or "" when the day carries no term.
func SolarTerm(year int, month time.Month, day int) string {
	return FromSolar(year, month, day).GetJieQi()
}

// Strings drains a container/list of strings as returned by lunar-go
// (GetFestivals, GetDayYi and friends) into a plain slice.
func Strings(l *list.List) []string {
	if l == nil || l.Len() == 0 {
		return nil
	}
	out := make([]string, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		if s, ok := e.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
