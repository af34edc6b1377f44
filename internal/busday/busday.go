// Package busday classifies calendar days as business or non-business,
// layering public-holiday records and make-up workday overrides over the
// Saturday/Sunday weekend rule.
package busday

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/username/chrono-server/internal/holiday"
	"github.com/username/chrono-server/pkg/dateutil"
)

// maxExcluded bounds the skipped-day list carried in results; the full
// count is always reported.
const maxExcluded = 50

// WeekendReason is the reason attached to plain weekend exclusions
const WeekendReason = "weekend"

// Day is one excluded (non-business) day with its reason
type Day struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// CountResult reports business days over a half-open range [from, to)
type CountResult struct {
	From         string `json:"from"`
	To           string `json:"to"`
	BusinessDays int    `json:"businessDays"`
	CalendarDays int    `json:"calendarDays"`
	ExcludedDays int    `json:"excludedDays"`
	Excluded     []Day  `json:"excluded"`
}

// AddResult reports the date reached after walking N business days
type AddResult struct {
	From              string `json:"from"`
	BusinessDaysAdded int    `json:"businessDaysAdded"`
	Result            string `json:"result"`
	Weekday           string `json:"weekday"`
	ExcludedDays      int    `json:"excludedDays"`
	Excluded          []Day  `json:"excluded"`
}

// Classification is the business/non-business verdict for one day
type Classification struct {
	Business bool
	Reason   string
}

// Calculator computes business-day operations on top of the holiday cache
type Calculator struct {
	cache  *holiday.Cache
	logger *zap.Logger
}

// NewCalculator creates a Calculator over the given holiday cache
func NewCalculator(cache *holiday.Cache, logger *zap.Logger) *Calculator {
	return &Calculator{
		cache:  cache,
		logger: logger,
	}
}

// Classify applies the classification order that makes make-up workdays
// work: an explicit record beats the weekend rule, and within records a
// make-up workday beats an off day. A nil overlay restricts the check to
// the weekend rule.
func Classify(date time.Time, overlay holiday.Set) Classification {
	if overlay != nil {
		if rec, ok := overlay.Lookup(dateutil.FormatISO(date)); ok {
			if rec.Kind == holiday.KindMakeupWorkday {
				return Classification{Business: true}
			}
			if rec.IsOffDay {
				return Classification{Business: false, Reason: rec.Name}
			}
		}
	}

	if dateutil.IsWeekend(date) {
		return Classification{Business: false, Reason: WeekendReason}
	}

	return Classification{Business: true}
}

// Count counts business days in the half-open range [from, to). Days are
// stepped in the calendar of from's location, so the count is DST-safe.
func (c *Calculator) Count(ctx context.Context, from, to time.Time, country string) CountResult {
	overlay := c.preload(ctx, country, from.Year(), to.Year())

	result := CountResult{
		From:     dateutil.FormatISO(from),
		To:       dateutil.FormatISO(to),
		Excluded: []Day{},
	}

	for cur := from; cur.Before(to); cur = cur.AddDate(0, 0, 1) {
		result.CalendarDays++

		cls := Classify(cur, overlay)
		if cls.Business {
			result.BusinessDays++
			continue
		}

		result.ExcludedDays++
		if len(result.Excluded) < maxExcluded {
			result.Excluded = append(result.Excluded, Day{
				Date:   dateutil.FormatISO(cur),
				Reason: cls.Reason,
			})
		}
	}

	return result
}

// Add walks n business days from the anchor date, forward for positive n
// and backward for negative. The anchor itself is never counted: only days
// strictly beyond it in the walk direction are classified.
func (c *Calculator) Add(ctx context.Context, from time.Time, n int, country string) AddResult {
	// Holidays are preloaded for the anchor year and the next; a longer
	// walk degrades to the weekend-only rule beyond that window.
	overlay := c.preload(ctx, country, from.Year(), from.Year()+1)

	result := AddResult{
		From:              dateutil.FormatISO(from),
		BusinessDaysAdded: n,
		Excluded:          []Day{},
	}

	direction := 1
	if n < 0 {
		direction = -1
		n = -n
	}

	cur := from
	for remaining := n; remaining > 0; {
		cur = cur.AddDate(0, 0, direction)

		cls := Classify(cur, overlay)
		if cls.Business {
			remaining--
			continue
		}

		result.ExcludedDays++
		if len(result.Excluded) < maxExcluded {
			result.Excluded = append(result.Excluded, Day{
				Date:   dateutil.FormatISO(cur),
				Reason: cls.Reason,
			})
		}
	}

	result.Result = dateutil.FormatISO(cur)
	result.Weekday = cur.Weekday().String()
	return result
}

// preload resolves the holiday sets for every year in [fromYear, toYear]
// inclusive before classification begins, merging them into one overlay so
// the walk never interleaves cache fetches. Returns nil when no country is
// given: weekend-only mode.
func (c *Calculator) preload(ctx context.Context, country string, fromYear, toYear int) holiday.Set {
	if country == "" {
		return nil
	}

	overlay := make(holiday.Set)
	for year := fromYear; year <= toYear; year++ {
		for date, rec := range c.cache.Get(ctx, country, year) {
			overlay[date] = rec
		}
	}

	c.logger.Debug("Holiday overlay preloaded",
		zap.String("country", country),
		zap.Int("from_year", fromYear),
		zap.Int("to_year", toYear),
		zap.Int("records", len(overlay)))
	return overlay
}
