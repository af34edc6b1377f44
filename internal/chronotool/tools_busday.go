package chronotool

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/username/chrono-server/pkg/dateutil"
)

// maxBusinessDayWalk bounds the add walk so a wild argument cannot spin
// the server
const maxBusinessDayWalk = 10000

func (h *Handler) registerBusinessDays(s *server.MCPServer) {
	tool := mcp.NewTool("calculate_business_days",
		mcp.WithDescription("Count business days between two dates, or walk N business days from a date. Weekends are excluded; with a country, official public holidays and make-up workdays are applied."),
		mcp.WithString("action", mcp.Description("count: business days in [from, to); add: date after N business days"), mcp.Enum("count", "add")),
		mcp.WithString("from", mcp.Required(), mcp.Description("Start date YYYY-MM-DD")),
		mcp.WithString("to", mcp.Description("End date, exclusive (count action)")),
		mcp.WithNumber("business_days", mcp.Description("Business days to add, negative to go backward (add action)")),
		mcp.WithString("country", mcp.Description("ISO country code for holiday data, e.g. CN, US. Empty = weekend rule only")),
		mcp.WithString("timezone", mcp.Description("Timezone the dates are interpreted in (default UTC)")),
	)
	s.AddTool(tool, h.handleBusinessDays)
}

func (h *Handler) handleBusinessDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action := req.GetString("action", "count")
	country := req.GetString("country", "")

	loc, err := dateutil.LoadLocation(req.GetString("timezone", "UTC"))
	if err != nil {
		return errResult("%v", err)
	}

	fromStr, err := req.RequireString("from")
	if err != nil {
		return errResult("%v", err)
	}
	from, err := dateutil.ParseDate(fromStr, loc)
	if err != nil {
		return errResult("%v", err)
	}
	from = dateutil.StartOfDay(from)

	switch action {
	case "count":
		toStr := req.GetString("to", "")
		if toStr == "" {
			return errResult("count action requires to")
		}
		to, err := dateutil.ParseDate(toStr, loc)
		if err != nil {
			return errResult("%v", err)
		}
		to = dateutil.StartOfDay(to)
		if to.Before(from) {
			return errResult("to %s is before from %s", dateutil.FormatISO(to), dateutil.FormatISO(from))
		}
		return jsonResult(h.calculator.Count(ctx, from, to, country))

	case "add":
		n, err := req.RequireInt("business_days")
		if err != nil {
			return errResult("%v", err)
		}
		if n > maxBusinessDayWalk || n < -maxBusinessDayWalk {
			return errResult("business_days must be within ±%d, got %d", maxBusinessDayWalk, n)
		}
		return jsonResult(h.calculator.Add(ctx, from, n, country))

	default:
		return errResult("unknown action %q", action)
	}
}
