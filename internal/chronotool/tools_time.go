package chronotool

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/username/chrono-server/pkg/dateutil"
)

func (h *Handler) registerCurrentTime(s *server.MCPServer) {
	tool := mcp.NewTool("get_current_time",
		mcp.WithDescription("Get the current date and time in a timezone, with calendar breakdown (weekday, week of year, day of year, UTC offset)"),
		mcp.WithString("timezone", mcp.Description("IANA timezone name, e.g. Asia/Shanghai (default UTC)")),
		mcp.WithString("format", mcp.Description("Output style: iso, human or unix"), mcp.Enum("iso", "human", "unix")),
	)
	s.AddTool(tool, h.handleCurrentTime)
}

func (h *Handler) handleCurrentTime(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tz := req.GetString("timezone", "UTC")
	format := req.GetString("format", "iso")

	loc, err := dateutil.LoadLocation(tz)
	if err != nil {
		return errResult("%v", err)
	}
	now := time.Now().In(loc)

	var formatted string
	switch format {
	case "human":
		formatted = now.Format("Monday, January 2, 2006 15:04:05 MST")
	case "unix":
		formatted = strconv.FormatInt(now.Unix(), 10)
	default:
		formatted = dateutil.FormatISO8601(now)
	}

	_, week := now.ISOWeek()
	return jsonResult(map[string]interface{}{
		"timezone":   loc.String(),
		"datetime":   formatted,
		"iso":        dateutil.FormatISO8601(now),
		"timestamp":  now.Unix(),
		"year":       now.Year(),
		"month":      int(now.Month()),
		"day":        now.Day(),
		"hour":       now.Hour(),
		"minute":     now.Minute(),
		"second":     now.Second(),
		"weekday":    now.Weekday().String(),
		"weekOfYear": week,
		"dayOfYear":  now.YearDay(),
		"utcOffset":  now.Format("-07:00"),
	})
}

func (h *Handler) registerTimezone(s *server.MCPServer) {
	convert := mcp.NewTool("convert_timezone",
		mcp.WithDescription("Convert a datetime from one timezone to another"),
		mcp.WithString("datetime", mcp.Required(), mcp.Description("Datetime to convert, e.g. 2025-01-15 10:00:00")),
		mcp.WithString("from_timezone", mcp.Required(), mcp.Description("Source IANA timezone")),
		mcp.WithString("to_timezone", mcp.Required(), mcp.Description("Target IANA timezone")),
	)
	s.AddTool(convert, h.handleConvertTimezone)

	list := mcp.NewTool("list_timezones",
		mcp.WithDescription("List well-known timezones with their current offset and local time; filterable by free-text query or continent"),
		mcp.WithString("query", mcp.Description("Match against zone name or city (English or Chinese)")),
		mcp.WithString("continent", mcp.Description("Restrict to a region, e.g. Asia, Europe, America")),
	)
	s.AddTool(list, h.handleListTimezones)
}

func (h *Handler) handleConvertTimezone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datetime, err := req.RequireString("datetime")
	if err != nil {
		return errResult("%v", err)
	}
	fromTZ, err := req.RequireString("from_timezone")
	if err != nil {
		return errResult("%v", err)
	}
	toTZ, err := req.RequireString("to_timezone")
	if err != nil {
		return errResult("%v", err)
	}

	fromLoc, err := dateutil.LoadLocation(fromTZ)
	if err != nil {
		return errResult("%v", err)
	}
	toLoc, err := dateutil.LoadLocation(toTZ)
	if err != nil {
		return errResult("%v", err)
	}

	t, err := dateutil.ParseDate(datetime, fromLoc)
	if err != nil {
		return errResult("%v", err)
	}
	converted := t.In(toLoc)

	_, fromOffset := t.Zone()
	_, toOffset := converted.Zone()

	return jsonResult(map[string]interface{}{
		"original": map[string]interface{}{
			"datetime":  dateutil.FormatISO8601(t),
			"timezone":  fromLoc.String(),
			"utcOffset": t.Format("-07:00"),
		},
		"converted": map[string]interface{}{
			"datetime":  dateutil.FormatISO8601(converted),
			"timezone":  toLoc.String(),
			"utcOffset": converted.Format("-07:00"),
		},
		"timeDifferenceMinutes": (toOffset - fromOffset) / 60,
	})
}

func (h *Handler) handleListTimezones(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	continent := req.GetString("continent", "")

	now := time.Now()
	zones := make([]map[string]interface{}, 0, len(knownZones))
	for _, z := range knownZones {
		if continent != "" && !strings.EqualFold(zoneContinent(z.Name), continent) {
			continue
		}
		if !matchZone(z, query) {
			continue
		}
		loc, err := time.LoadLocation(z.Name)
		if err != nil {
			continue
		}
		local := now.In(loc)
		zones = append(zones, map[string]interface{}{
			"name":      z.Name,
			"city":      zoneCity(z.Name),
			"cityZh":    z.CityZh,
			"continent": zoneContinent(z.Name),
			"utcOffset": local.Format("-07:00"),
			"localTime": local.Format("2006-01-02 15:04"),
		})
	}

	return jsonResult(map[string]interface{}{
		"count":     len(zones),
		"timezones": zones,
	})
}

func (h *Handler) registerParseTimestamp(s *server.MCPServer) {
	tool := mcp.NewTool("parse_timestamp",
		mcp.WithDescription("Parse a Unix timestamp (seconds or milliseconds) or a datetime string into a full calendar breakdown"),
		mcp.WithString("input", mcp.Required(), mcp.Description("Unix timestamp or ISO datetime string")),
		mcp.WithString("timezone", mcp.Description("Timezone for the local representation (default UTC)")),
	)
	s.AddTool(tool, h.handleParseTimestamp)
}

func (h *Handler) handleParseTimestamp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw, ok := args["input"]
	if !ok {
		return errResult("input is required")
	}
	tz := req.GetString("timezone", "UTC")
	loc, err := dateutil.LoadLocation(tz)
	if err != nil {
		return errResult("%v", err)
	}

	var t time.Time
	switch v := raw.(type) {
	case float64:
		t = timeFromEpoch(v)
	case string:
		if n, convErr := strconv.ParseFloat(strings.TrimSpace(v), 64); convErr == nil {
			t = timeFromEpoch(n)
		} else if t, err = dateutil.ParseDate(v, loc); err != nil {
			return errResult("cannot parse input %q as timestamp or datetime", v)
		}
	default:
		return errResult("input must be a number or a string")
	}

	local := t.In(loc)
	return jsonResult(map[string]interface{}{
		"timestamp":   t.Unix(),
		"timestampMs": t.UnixMilli(),
		"utc":         dateutil.FormatISO8601(t.UTC()),
		"local":       dateutil.FormatISO8601(local),
		"timezone":    loc.String(),
		"weekday":     local.Weekday().String(),
	})
}

// timeFromEpoch treats magnitudes of 1e12 and above as milliseconds
func timeFromEpoch(v float64) time.Time {
	if math.Abs(v) >= 1e12 {
		return time.UnixMilli(int64(v))
	}
	return time.Unix(int64(v), 0)
}

func (h *Handler) registerDateDiff(s *server.MCPServer) {
	tool := mcp.NewTool("date_diff",
		mcp.WithDescription("Compute the difference between two datetimes as a calendar breakdown and totals"),
		mcp.WithString("start", mcp.Required(), mcp.Description("Start datetime")),
		mcp.WithString("end", mcp.Required(), mcp.Description("End datetime")),
		mcp.WithString("timezone", mcp.Description("Timezone for parsing (default UTC)")),
	)
	s.AddTool(tool, h.handleDateDiff)
}

func (h *Handler) handleDateDiff(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startStr, err := req.RequireString("start")
	if err != nil {
		return errResult("%v", err)
	}
	endStr, err := req.RequireString("end")
	if err != nil {
		return errResult("%v", err)
	}
	loc, err := dateutil.LoadLocation(req.GetString("timezone", "UTC"))
	if err != nil {
		return errResult("%v", err)
	}

	start, err := dateutil.ParseDate(startStr, loc)
	if err != nil {
		return errResult("%v", err)
	}
	end, err := dateutil.ParseDate(endStr, loc)
	if err != nil {
		return errResult("%v", err)
	}

	direction := "future"
	a, b := start, end
	if end.Before(start) {
		direction = "past"
		a, b = end, start
	}
	d := componentDiff(a, b)
	elapsed := b.Sub(a)

	return jsonResult(map[string]interface{}{
		"start":     dateutil.FormatISO8601(start),
		"end":       dateutil.FormatISO8601(end),
		"direction": direction,
		"breakdown": map[string]int{
			"years":   d.Years,
			"months":  d.Months,
			"days":    d.Days,
			"hours":   d.Hours,
			"minutes": d.Minutes,
			"seconds": d.Seconds,
		},
		"totals": map[string]interface{}{
			"days":    math.Floor(elapsed.Hours() / 24),
			"hours":   math.Floor(elapsed.Hours()),
			"minutes": math.Floor(elapsed.Minutes()),
			"seconds": int64(elapsed.Seconds()),
		},
		"humanReadable": humanDiff(d),
	})
}

func (h *Handler) registerMonthInfo(s *server.MCPServer) {
	tool := mcp.NewTool("get_month_info",
		mcp.WithDescription("Summarize a calendar month: day count, first/last weekday, week rows and weekend count"),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Gregorian year")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Month 1-12")),
	)
	s.AddTool(tool, h.handleMonthInfo)
}

func (h *Handler) handleMonthInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return errResult("%v", err)
	}
	month, err := req.RequireInt("month")
	if err != nil {
		return errResult("%v", err)
	}
	if month < 1 || month > 12 {
		return errResult("month must be between 1 and 12, got %d", month)
	}

	m := time.Month(month)
	first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
	days := dateutil.DaysInMonth(year, m)
	last := time.Date(year, m, days, 0, 0, 0, 0, time.UTC)

	weekendDays := 0
	for d := 1; d <= days; d++ {
		if dateutil.IsWeekend(time.Date(year, m, d, 0, 0, 0, 0, time.UTC)) {
			weekendDays++
		}
	}

	return jsonResult(map[string]interface{}{
		"year":         year,
		"month":        month,
		"monthName":    m.String(),
		"days":         days,
		"firstDay":     dateutil.FormatISO(first),
		"firstWeekday": first.Weekday().String(),
		"lastDay":      dateutil.FormatISO(last),
		"lastWeekday":  last.Weekday().String(),
		"weekRows":     dateutil.WeekRows(year, m),
		"weekendDays":  weekendDays,
		"weekdays":     days - weekendDays,
		"isLeapYear":   dateutil.DaysInMonth(year, time.February) == 29,
	})
}

// humanDiff renders a breakdown as a compact phrase, skipping zero units
func humanDiff(d diffBreakdown) string {
	parts := make([]string, 0, 6)
	add := func(n int, unit string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, plural(n, unit)))
		}
	}
	add(d.Years, "year")
	add(d.Months, "month")
	add(d.Days, "day")
	add(d.Hours, "hour")
	add(d.Minutes, "minute")
	add(d.Seconds, "second")
	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
