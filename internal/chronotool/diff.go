package chronotool

import (
	"time"

	"github.com/username/chrono-server/pkg/dateutil"
)

// diffBreakdown is a calendar-component difference between two instants
type diffBreakdown struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// componentDiff computes the breakdown from a to b. Requires a <= b.
// Day borrows pull from the length of the month preceding b, so
// Jan 31 -> Mar 1 is 1 month 1 day, matching calendar intuition.
func componentDiff(a, b time.Time) diffBreakdown {
	d := diffBreakdown{
		Years:   b.Year() - a.Year(),
		Months:  int(b.Month()) - int(a.Month()),
		Days:    b.Day() - a.Day(),
		Hours:   b.Hour() - a.Hour(),
		Minutes: b.Minute() - a.Minute(),
		Seconds: b.Second() - a.Second(),
	}

	if d.Seconds < 0 {
		d.Seconds += 60
		d.Minutes--
	}
	if d.Minutes < 0 {
		d.Minutes += 60
		d.Hours--
	}
	if d.Hours < 0 {
		d.Hours += 24
		d.Days--
	}
	if d.Days < 0 {
		prevYear, prevMonth := b.Year(), b.Month()-1
		if prevMonth < time.January {
			prevYear, prevMonth = prevYear-1, time.December
		}
		d.Days += dateutil.DaysInMonth(prevYear, prevMonth)
		d.Months--
	}
	if d.Months < 0 {
		d.Months += 12
		d.Years--
	}
	return d
}
