// Package chronotool registers the calendar/date tools on an MCP server
// and adapts tool arguments onto the engine packages.
package chronotool

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/username/chrono-server/internal/busday"
	"github.com/username/chrono-server/internal/countdown"
	"github.com/username/chrono-server/internal/holiday"
)

// Handler carries the engine services shared by all tool handlers
type Handler struct {
	holidays   *holiday.Cache
	calculator *busday.Calculator
	countdowns *countdown.Store
	logger     *zap.Logger
}

// New creates a Handler over the engine services
func New(holidays *holiday.Cache, calculator *busday.Calculator, countdowns *countdown.Store, logger *zap.Logger) *Handler {
	return &Handler{
		holidays:   holidays,
		calculator: calculator,
		countdowns: countdowns,
		logger:     logger,
	}
}

// Register adds every tool to the MCP server
func (h *Handler) Register(s *server.MCPServer) {
	h.registerCurrentTime(s)
	h.registerCalendarConvert(s)
	h.registerTimezone(s)
	h.registerDateCalc(s)
	h.registerDateDiff(s)
	h.registerParseTimestamp(s)
	h.registerFestivals(s)
	h.registerMonthInfo(s)
	h.registerCountdown(s)
	h.registerBusinessDays(s)
	h.registerAlmanac(s)
	h.registerManageCountdown(s)
}

// jsonResult renders a payload as indented JSON text content
func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult reports a caller-visible input or lookup error. Tool errors are
// in-band results, never transport failures.
func errResult(format string, args ...interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...)), nil
}
