// Package holiday resolves authoritative public-holiday data per country and
// year, layering an in-memory map and a durable on-disk store over the
// upstream providers.
package holiday

// Kind classifies a day's authoritative status
type Kind string

const (
	// KindPublicHoliday is a civil day off
	KindPublicHoliday Kind = "public_holiday"
	// KindMakeupWorkday is a normally-off day converted to a working day
	// to compensate for a mid-week holiday
	KindMakeupWorkday Kind = "makeup_workday"
	// KindRegular carries no override; the weekday rule applies as normal
	KindRegular Kind = "regular"
)

// Record represents one calendar day's authoritative status
type Record struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Name     string `json:"name"`
	IsOffDay bool   `json:"isOffDay"`
	Kind     Kind   `json:"kind"`
}

// Set is the resolved holiday collection for one (country, year),
// keyed by ISO date string. At most one record per date.
type Set map[string]Record

// NewSet builds a Set from a record list. Later records win on date
// collisions, matching upstream ordering.
func NewSet(records []Record) Set {
	set := make(Set, len(records))
	for _, r := range records {
		set[r.Date] = r
	}
	return set
}

// Lookup returns the record for an ISO date. Absence means no override:
// the default weekend/weekday rule applies.
func (s Set) Lookup(date string) (Record, bool) {
	r, ok := s[date]
	return r, ok
}
