package chronotool

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/username/chrono-server/internal/festival"
	"github.com/username/chrono-server/internal/holiday"
	"github.com/username/chrono-server/internal/lunar"
	"github.com/username/chrono-server/pkg/dateutil"
)

// maxFestivalRangeDays bounds the day scan of get_festivals
const maxFestivalRangeDays = 366

// festivalEntry is one row of the get_festivals result
type festivalEntry struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Type    string `json:"type"`
	Name    string `json:"name"`
}

func (h *Handler) registerFestivals(s *server.MCPServer) {
	tool := mcp.NewTool("get_festivals",
		mcp.WithDescription("List festivals, solar terms and public holidays in a date range. Catalog festivals come from the built-in CN/US/HK rule tables; public holidays come from the official providers."),
		mcp.WithString("start_date", mcp.Description("Range start YYYY-MM-DD (default today)")),
		mcp.WithString("end_date", mcp.Description("Range end, inclusive (default 30 days after start)")),
		mcp.WithString("country", mcp.Description("Festival catalog and holiday source: CN, US or HK (default CN)")),
		mcp.WithString("types", mcp.Description("Comma-separated filter: lunar_festival, solar_festival, solar_term, public_holiday (default all)")),
	)
	s.AddTool(tool, h.handleFestivals)
}

func (h *Handler) handleFestivals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	country := strings.ToUpper(req.GetString("country", "CN"))

	start := dateutil.StartOfDay(time.Now().UTC())
	if s := req.GetString("start_date", ""); s != "" {
		t, err := dateutil.ParseDate(s, time.UTC)
		if err != nil {
			return errResult("%v", err)
		}
		start = dateutil.StartOfDay(t)
	}
	end := start.AddDate(0, 0, 30)
	if s := req.GetString("end_date", ""); s != "" {
		t, err := dateutil.ParseDate(s, time.UTC)
		if err != nil {
			return errResult("%v", err)
		}
		end = dateutil.StartOfDay(t)
	}
	if end.Before(start) {
		return errResult("end_date %s is before start_date %s", dateutil.FormatISO(end), dateutil.FormatISO(start))
	}
	if end.Sub(start) > maxFestivalRangeDays*24*time.Hour {
		return errResult("date range exceeds %d days", maxFestivalRangeDays)
	}

	wanted := parseTypeFilter(req.GetString("types", ""))

	h.logger.Debug("Festival scan",
		zap.String("country", country),
		zap.String("start", dateutil.FormatISO(start)),
		zap.String("end", dateutil.FormatISO(end)))

	// Holiday sets for every year the range touches
	overlays := make(map[int]holiday.Set)
	if wanted["public_holiday"] {
		for y := start.Year(); y <= end.Year(); y++ {
			overlays[y] = h.holidays.Get(ctx, country, y)
		}
	}

	entries := make([]festivalEntry, 0, 32)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		iso := dateutil.FormatISO(d)
		weekday := d.Weekday().String()
		l := lunar.FromSolar(d.Year(), d.Month(), d.Day())

		if wanted["lunar_festival"] {
			for _, name := range lunar.Strings(l.GetFestivals()) {
				entries = append(entries, festivalEntry{iso, weekday, "lunar_festival", name})
			}
		}
		if wanted["solar_festival"] {
			for _, name := range lunar.Strings(l.GetSolar().GetFestivals()) {
				entries = append(entries, festivalEntry{iso, weekday, "solar_festival", name})
			}
		}
		if wanted["solar_term"] {
			if term := l.GetJieQi(); term != "" {
				entries = append(entries, festivalEntry{iso, weekday, "solar_term", term})
			}
		}
		if wanted["public_holiday"] {
			if r, ok := overlays[d.Year()].Lookup(iso); ok && r.Kind == holiday.KindPublicHoliday {
				entries = append(entries, festivalEntry{iso, weekday, "public_holiday", r.Name})
			}
		}
	}

	// Catalog view for the range's years, so rule-based festivals (Easter,
	// nth-weekday holidays) appear even when lunar-go has no label for them
	catalog := catalogForCountry(country)
	resolved := make([]festival.Resolved, 0, 32)
	for y := start.Year(); y <= end.Year(); y++ {
		for _, r := range festival.ForYear(catalog, y) {
			if r.Date >= dateutil.FormatISO(start) && r.Date <= dateutil.FormatISO(end) {
				resolved = append(resolved, r)
			}
		}
	}

	return jsonResult(map[string]interface{}{
		"country":   country,
		"startDate": dateutil.FormatISO(start),
		"endDate":   dateutil.FormatISO(end),
		"count":     len(entries),
		"festivals": entries,
		"catalog":   resolved,
	})
}

// parseTypeFilter expands a CSV filter into a membership map; empty
// input selects every type
func parseTypeFilter(csv string) map[string]bool {
	all := []string{"lunar_festival", "solar_festival", "solar_term", "public_holiday"}
	wanted := make(map[string]bool, len(all))
	if strings.TrimSpace(csv) == "" {
		for _, t := range all {
			wanted[t] = true
		}
		return wanted
	}
	for _, part := range strings.Split(csv, ",") {
		wanted[strings.TrimSpace(strings.ToLower(part))] = true
	}
	return wanted
}

func catalogForCountry(country string) []festival.Festival {
	switch country {
	case "US":
		return festival.USFestivals
	case "HK":
		return festival.HongKongFestivals
	default:
		return festival.ChinaFestivals
	}
}
