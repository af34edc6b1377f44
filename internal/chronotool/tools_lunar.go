package chronotool

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/username/chrono-server/internal/lunar"
	"github.com/username/chrono-server/pkg/dateutil"
)

func (h *Handler) registerCalendarConvert(s *server.MCPServer) {
	tool := mcp.NewTool("convert_calendar",
		mcp.WithDescription("Convert between the Gregorian and Chinese lunar calendars"),
		mcp.WithString("direction", mcp.Required(), mcp.Description("Conversion direction"), mcp.Enum("gregorian_to_lunar", "lunar_to_gregorian")),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Year in the source calendar")),
		mcp.WithNumber("month", mcp.Required(), mcp.Description("Month in the source calendar, 1-12")),
		mcp.WithNumber("day", mcp.Required(), mcp.Description("Day in the source calendar")),
		mcp.WithBoolean("is_leap_month", mcp.Description("When converting from lunar, whether the month is the leap month")),
	)
	s.AddTool(tool, h.handleCalendarConvert)
}

func (h *Handler) handleCalendarConvert(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	direction, err := req.RequireString("direction")
	if err != nil {
		return errResult("%v", err)
	}
	year, err := req.RequireInt("year")
	if err != nil {
		return errResult("%v", err)
	}
	month, err := req.RequireInt("month")
	if err != nil {
		return errResult("%v", err)
	}
	day, err := req.RequireInt("day")
	if err != nil {
		return errResult("%v", err)
	}

	switch direction {
	case "gregorian_to_lunar":
		if month < 1 || month > 12 {
			return errResult("month must be between 1 and 12, got %d", month)
		}
		if day < 1 || day > dateutil.DaysInMonth(year, time.Month(month)) {
			return errResult("day %d does not exist in %d-%02d", day, year, month)
		}
		l := lunar.FromSolar(year, time.Month(month), day)
		solar := l.GetSolar()
		return jsonResult(map[string]interface{}{
			"gregorian": map[string]interface{}{
				"year":  year,
				"month": month,
				"day":   day,
				"date":  dateutil.FormatISO(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)),
			},
			"lunar": map[string]interface{}{
				"year":        l.GetYear(),
				"month":       l.GetMonth(),
				"day":         l.GetDay(),
				"yearName":    l.GetYearInChinese(),
				"monthName":   l.GetMonthInChinese(),
				"dayName":     l.GetDayInChinese(),
				"yearGanZhi":  l.GetYearInGanZhi(),
				"monthGanZhi": l.GetMonthInGanZhi(),
				"dayGanZhi":   l.GetDayInGanZhi(),
				"zodiac":      l.GetYearShengXiao(),
			},
			"solarTerm":     l.GetJieQi(),
			"festivals":     lunar.Strings(l.GetFestivals()),
			"constellation": solar.GetXingZuo(),
		})

	case "lunar_to_gregorian":
		isLeap := req.GetBool("is_leap_month", false)
		l, err := lunar.Lookup(year, month, day, isLeap)
		if err != nil {
			return errResult("%v", err)
		}
		solar := l.GetSolar()
		date := time.Date(solar.GetYear(), time.Month(solar.GetMonth()), solar.GetDay(), 0, 0, 0, 0, time.UTC)
		return jsonResult(map[string]interface{}{
			"lunar": map[string]interface{}{
				"year":        year,
				"month":       month,
				"day":         day,
				"isLeapMonth": isLeap,
				"yearName":    l.GetYearInChinese(),
				"monthName":   l.GetMonthInChinese(),
				"dayName":     l.GetDayInChinese(),
				"zodiac":      l.GetYearShengXiao(),
			},
			"gregorian": map[string]interface{}{
				"year":    solar.GetYear(),
				"month":   solar.GetMonth(),
				"day":     solar.GetDay(),
				"date":    dateutil.FormatISO(date),
				"weekday": date.Weekday().String(),
			},
		})

	default:
		return errResult("unknown direction %q", direction)
	}
}

func (h *Handler) registerAlmanac(s *server.MCPServer) {
	tool := mcp.NewTool("get_almanac",
		mcp.WithDescription("Traditional Chinese almanac (黄历) for a date: suitable/avoid activities, clash zodiac, auspicious directions and more"),
		mcp.WithString("date", mcp.Description("Gregorian date YYYY-MM-DD (default today)")),
		mcp.WithString("timezone", mcp.Description("Timezone used when date is omitted (default Asia/Shanghai)")),
	)
	s.AddTool(tool, h.handleAlmanac)
}

func (h *Handler) handleAlmanac(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loc, err := dateutil.LoadLocation(req.GetString("timezone", "Asia/Shanghai"))
	if err != nil {
		return errResult("%v", err)
	}

	var date time.Time
	if dateStr := req.GetString("date", ""); dateStr != "" {
		date, err = dateutil.ParseDate(dateStr, loc)
		if err != nil {
			return errResult("%v", err)
		}
	} else {
		date = time.Now().In(loc)
	}

	l := lunar.FromTime(date)
	solar := l.GetSolar()

	return jsonResult(map[string]interface{}{
		"date":    dateutil.FormatISO(date),
		"weekday": date.Weekday().String(),
		"lunar": map[string]interface{}{
			"yearName":  l.GetYearInChinese(),
			"monthName": l.GetMonthInChinese(),
			"dayName":   l.GetDayInChinese(),
			"zodiac":    l.GetYearShengXiao(),
		},
		"ganZhi": map[string]interface{}{
			"year":  l.GetYearInGanZhi(),
			"month": l.GetMonthInGanZhi(),
			"day":   l.GetDayInGanZhi(),
			"time":  l.GetTimeInGanZhi(),
		},
		"solarTerm":     l.GetJieQi(),
		"festivals":     append(lunar.Strings(l.GetFestivals()), lunar.Strings(l.GetOtherFestivals())...),
		"constellation": solar.GetXingZuo(),
		"suitable":      lunar.Strings(l.GetDayYi()),
		"avoid":         lunar.Strings(l.GetDayJi()),
		"luckyGods":     lunar.Strings(l.GetDayJiShen()),
		"evilGods":      lunar.Strings(l.GetDayXiongSha()),
		"clash":         l.GetDayChongDesc(),
		"sha":           l.GetDaySha(),
		"naYin":         l.GetDayNaYin(),
		"zhiXing":       l.GetZhiXing(),
		"dutyGod": map[string]interface{}{
			"name": l.GetDayTianShen(),
			"type": l.GetDayTianShenType(),
			"luck": l.GetDayTianShenLuck(),
		},
		"pengZu": map[string]interface{}{
			"gan": l.GetPengZuGan(),
			"zhi": l.GetPengZuZhi(),
		},
		"directions": map[string]interface{}{
			"joy":         l.GetDayPositionXiDesc(),
			"fortune":     l.GetDayPositionCaiDesc(),
			"blessing":    l.GetDayPositionFuDesc(),
			"yangNoble":   l.GetDayPositionYangGuiDesc(),
			"yinNoble":    l.GetDayPositionYinGuiDesc(),
			"fetusSpirit": l.GetDayPositionTai(),
		},
	})
}
