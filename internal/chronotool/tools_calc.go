package chronotool

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/username/chrono-server/internal/festival"
	"github.com/username/chrono-server/internal/lunar"
	"github.com/username/chrono-server/pkg/dateutil"
)

func (h *Handler) registerDateCalc(s *server.MCPServer) {
	tool := mcp.NewTool("calculate_time",
		mcp.WithDescription("Date arithmetic in one of three modes: gregorian (plain calendar offsets), lunar (year/month offsets applied on the Chinese lunar calendar), or anchor (offsets from a named festival)"),
		mcp.WithString("mode", mcp.Description("Calculation mode"), mcp.Enum("gregorian", "lunar", "anchor")),
		mcp.WithString("base_date", mcp.Description("Base datetime (default now)")),
		mcp.WithString("timezone", mcp.Description("Timezone for parsing and output (default UTC)")),
		mcp.WithNumber("years", mcp.Description("Years to add (negative to subtract)")),
		mcp.WithNumber("months", mcp.Description("Months to add")),
		mcp.WithNumber("days", mcp.Description("Days to add")),
		mcp.WithNumber("hours", mcp.Description("Hours to add")),
		mcp.WithNumber("minutes", mcp.Description("Minutes to add")),
		mcp.WithString("festival", mcp.Description("Festival name for anchor mode, English or Chinese, e.g. 春节 or Mid-Autumn Festival")),
		mcp.WithNumber("festival_year", mcp.Description("Year the anchor festival resolves in (default current year)")),
	)
	s.AddTool(tool, h.handleDateCalc)
}

func (h *Handler) handleDateCalc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := req.GetString("mode", "gregorian")
	loc, err := dateutil.LoadLocation(req.GetString("timezone", "UTC"))
	if err != nil {
		return errResult("%v", err)
	}

	years := req.GetInt("years", 0)
	months := req.GetInt("months", 0)
	days := req.GetInt("days", 0)
	hours := req.GetInt("hours", 0)
	minutes := req.GetInt("minutes", 0)

	var base time.Time
	if baseStr := req.GetString("base_date", ""); baseStr != "" {
		base, err = dateutil.ParseDate(baseStr, loc)
		if err != nil {
			return errResult("%v", err)
		}
	} else {
		base = time.Now().In(loc)
	}

	switch mode {
	case "gregorian":
		result := base.AddDate(years, months, days).
			Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
		return jsonResult(map[string]interface{}{
			"mode":   mode,
			"base":   dateutil.FormatISO8601(base),
			"result": describeResult(result),
			"offset": offsetFields(years, months, days, hours, minutes),
		})

	case "lunar":
		result, lunarDesc, err := addLunar(base, years, months, days, loc)
		if err != nil {
			return errResult("%v", err)
		}
		result = result.Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
		return jsonResult(map[string]interface{}{
			"mode":        mode,
			"base":        dateutil.FormatISO8601(base),
			"baseLunar":   lunarLabel(base),
			"result":      describeResult(result),
			"resultLunar": lunarDesc,
			"offset":      offsetFields(years, months, days, hours, minutes),
		})

	case "anchor":
		name := req.GetString("festival", "")
		if name == "" {
			return errResult("anchor mode requires a festival name")
		}
		festivalYear := req.GetInt("festival_year", time.Now().In(loc).Year())
		anchor, ok := festival.ResolveByName(name, festivalYear)
		if !ok {
			return errResult("unknown festival %q or it does not occur in %d", name, festivalYear)
		}
		anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)
		result := anchor.AddDate(years, months, days).
			Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
		return jsonResult(map[string]interface{}{
			"mode":     mode,
			"festival": name,
			"anchor":   dateutil.FormatISO(anchor),
			"result":   describeResult(result),
			"offset":   offsetFields(years, months, days, hours, minutes),
		})

	default:
		return errResult("unknown mode %q", mode)
	}
}

// addLunar applies year and month offsets on the lunar calendar, then day
// offsets on the Gregorian one. When the target lunar day does not exist
// (short month), it falls back to day 29.
func addLunar(base time.Time, years, months, days int, loc *time.Location) (time.Time, map[string]interface{}, error) {
	l := lunar.FromTime(base)

	year := l.GetYear() + years
	month := l.GetMonth()
	// lunar-go reports leap months as negative; offsets land on the regular month
	if month < 0 {
		month = -month
	}
	month += months
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}

	day := l.GetDay()
	solar, err := lunar.ToSolar(year, month, day, false)
	if err != nil && day == 30 {
		// lunar months have 29 or 30 days; clamp to the short month
		day = 29
		solar, err = lunar.ToSolar(year, month, day, false)
	}
	if err != nil {
		return time.Time{}, nil, err
	}

	result := time.Date(solar.Year(), solar.Month(), solar.Day(),
		base.Hour(), base.Minute(), base.Second(), 0, loc).AddDate(0, 0, days)

	return result, lunarLabel(result), nil
}

// lunarLabel is the lunar-calendar description of a Gregorian date
func lunarLabel(t time.Time) map[string]interface{} {
	l := lunar.FromTime(t)
	return map[string]interface{}{
		"year":      l.GetYear(),
		"month":     l.GetMonth(),
		"day":       l.GetDay(),
		"yearName":  l.GetYearInChinese(),
		"monthName": l.GetMonthInChinese(),
		"dayName":   l.GetDayInChinese(),
		"zodiac":    l.GetYearShengXiao(),
	}
}

func describeResult(t time.Time) map[string]interface{} {
	return map[string]interface{}{
		"iso":     dateutil.FormatISO8601(t),
		"date":    dateutil.FormatISO(t),
		"weekday": t.Weekday().String(),
	}
}

func offsetFields(years, months, days, hours, minutes int) map[string]int {
	return map[string]int{
		"years":   years,
		"months":  months,
		"days":    days,
		"hours":   hours,
		"minutes": minutes,
	}
}
