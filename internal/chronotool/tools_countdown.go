package chronotool

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/username/chrono-server/internal/countdown"
	"github.com/username/chrono-server/pkg/dateutil"
)

func (h *Handler) registerCountdown(s *server.MCPServer) {
	tool := mcp.NewTool("countdown",
		mcp.WithDescription("Time remaining until a target datetime, broken down into days, hours, minutes and seconds"),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target datetime, e.g. 2026-01-01 or 2026-01-01 08:00:00")),
		mcp.WithString("timezone", mcp.Description("Timezone the target is interpreted in (default UTC)")),
		mcp.WithString("name", mcp.Description("Label carried through to the result")),
	)
	s.AddTool(tool, h.handleCountdown)
}

func (h *Handler) handleCountdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	targetStr, err := req.RequireString("target")
	if err != nil {
		return errResult("%v", err)
	}
	loc, err := dateutil.LoadLocation(req.GetString("timezone", "UTC"))
	if err != nil {
		return errResult("%v", err)
	}
	target, err := dateutil.ParseDate(targetStr, loc)
	if err != nil {
		return errResult("%v", err)
	}

	payload := countdownPayload(target, time.Now().In(loc))
	if name := req.GetString("name", ""); name != "" {
		payload["name"] = name
	}
	return jsonResult(payload)
}

func (h *Handler) registerManageCountdown(s *server.MCPServer) {
	tool := mcp.NewTool("manage_countdown",
		mcp.WithDescription("Manage persisted countdown events: set stores one, get/list report remaining time, delete removes one"),
		mcp.WithString("action", mcp.Required(), mcp.Description("Operation"), mcp.Enum("set", "get", "list", "delete")),
		mcp.WithString("id", mcp.Description("Countdown ID (get/delete, or set to overwrite)")),
		mcp.WithString("name", mcp.Description("Event name (set)")),
		mcp.WithString("target", mcp.Description("Target datetime (set)")),
		mcp.WithString("timezone", mcp.Description("Timezone for the target (set, default UTC)")),
	)
	s.AddTool(tool, h.handleManageCountdown)
}

func (h *Handler) handleManageCountdown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := req.RequireString("action")
	if err != nil {
		return errResult("%v", err)
	}

	switch action {
	case "set":
		name := req.GetString("name", "")
		targetStr := req.GetString("target", "")
		if name == "" || targetStr == "" {
			return errResult("set action requires name and target")
		}
		tz := req.GetString("timezone", "UTC")
		loc, err := dateutil.LoadLocation(tz)
		if err != nil {
			return errResult("%v", err)
		}
		target, err := dateutil.ParseDate(targetStr, loc)
		if err != nil {
			return errResult("%v", err)
		}

		id := req.GetString("id", "")
		if id == "" {
			id = countdown.NewID()
		}
		item := countdown.Item{
			ID:         id,
			Name:       name,
			TargetDate: dateutil.FormatISO8601(target),
			Timezone:   loc.String(),
			CreatedAt:  dateutil.FormatISO8601(time.Now().In(loc)),
		}
		if err := h.countdowns.Put(item); err != nil {
			return errResult("failed to store countdown: %v", err)
		}
		return jsonResult(map[string]interface{}{
			"action":    "set",
			"countdown": item,
		})

	case "get":
		id, err := req.RequireString("id")
		if err != nil {
			return errResult("%v", err)
		}
		item, err := h.countdowns.Get(id)
		if err != nil {
			return errResult("%v", err)
		}
		return jsonResult(itemPayload(item))

	case "list":
		items, err := h.countdowns.List()
		if err != nil {
			return errResult("failed to read countdowns: %v", err)
		}
		payloads := make([]map[string]interface{}, 0, len(items))
		for _, item := range items {
			payloads = append(payloads, itemPayload(item))
		}
		return jsonResult(map[string]interface{}{
			"count":      len(payloads),
			"countdowns": payloads,
		})

	case "delete":
		id, err := req.RequireString("id")
		if err != nil {
			return errResult("%v", err)
		}
		item, err := h.countdowns.Delete(id)
		if err != nil {
			return errResult("%v", err)
		}
		return jsonResult(map[string]interface{}{
			"action":  "delete",
			"deleted": item,
		})

	default:
		return errResult("unknown action %q", action)
	}
}

// itemPayload decorates a stored item with its live remaining time
func itemPayload(item countdown.Item) map[string]interface{} {
	payload := map[string]interface{}{
		"id":        item.ID,
		"name":      item.Name,
		"target":    item.TargetDate,
		"timezone":  item.Timezone,
		"createdAt": item.CreatedAt,
	}

	loc, err := dateutil.LoadLocation(item.Timezone)
	if err != nil {
		loc = time.UTC
	}
	if target, err := dateutil.ParseDate(item.TargetDate, loc); err == nil {
		payload["remaining"] = countdownPayload(target, time.Now().In(loc))["remaining"]
		payload["reached"] = !target.After(time.Now())
	}
	return payload
}

// countdownPayload breaks the interval from now to target into day/time
// components. A past target reports reached=true with the elapsed interval.
func countdownPayload(target, now time.Time) map[string]interface{} {
	remaining := target.Sub(now)
	reached := remaining <= 0
	if reached {
		remaining = -remaining
	}

	days := int(remaining / (24 * time.Hour))
	rem := remaining % (24 * time.Hour)
	hours := int(rem / time.Hour)
	rem %= time.Hour
	minutes := int(rem / time.Minute)
	seconds := int(rem%time.Minute) / int(time.Second)

	return map[string]interface{}{
		"target":  dateutil.FormatISO8601(target),
		"now":     dateutil.FormatISO8601(now),
		"reached": reached,
		"remaining": map[string]interface{}{
			"days":         days,
			"hours":        hours,
			"minutes":      minutes,
			"seconds":      seconds,
			"totalSeconds": int64(remaining / time.Second),
		},
	}
}
