// Package toolset exposes the fixed set of operations the external
// reasoning component may call: message dispatch to a participant, court
// booking and court availability lookup. Every call returns a plain
// status/message map so the caller can act on failures without inspecting
// internals.
package toolset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"courtside/contract"
	"courtside/schedule"
)

const (
	ToolSendMessage  = "send_message"
	ToolBookCourt    = "book_court"
	ToolAvailability = "list_court_availabilities"

	StatusSuccess = "success"
	StatusError   = "error"
)

// Handler runs one tool call against its typed arguments.
type Handler func(ctx context.Context, args map[string]any) map[string]any

// Tool is one callable contract of the boundary.
type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// Toolset binds the three tools to a dispatcher and a schedule instance.
// Calls are independent and stateless; the reasoning caller supplies the
// control flow across them.
type Toolset struct {
	log        *slog.Logger
	dispatcher contract.Dispatcher
	schedule   *schedule.Schedule
}

func New(log *slog.Logger, dispatcher contract.Dispatcher, sched *schedule.Schedule) *Toolset {
	return &Toolset{log: log, dispatcher: dispatcher, schedule: sched}
}

// Tools lists the boundary contracts in a stable order.
func (t *Toolset) Tools() []Tool {
	return []Tool{
		{
			Name:        ToolSendMessage,
			Description: "Send a task to a participant agent by name and await its reply.",
			Handler: func(ctx context.Context, args map[string]any) map[string]any {
				return t.SendMessage(ctx, stringArg(args, "agent_name"), stringArg(args, "task"))
			},
		},
		{
			Name:        ToolBookCourt,
			Description: "Book a court slot for a date, start time, end time and reservation name.",
			Handler: func(ctx context.Context, args map[string]any) map[string]any {
				return t.BookCourt(
					stringArg(args, "date"),
					stringArg(args, "start_time"),
					stringArg(args, "end_time"),
					stringArg(args, "reservation_name"),
				)
			},
		},
		{
			Name:        ToolAvailability,
			Description: "List available, blocked and booked court slots for a date.",
			Handler: func(ctx context.Context, args map[string]any) map[string]any {
				return t.ListCourtAvailabilities(stringArg(args, "date"))
			},
		},
	}
}

// Invoke runs a tool by name. Unknown names are an error for the caller,
// not a tool result: the boundary is a fixed set, not free-form dispatch.
func (t *Toolset) Invoke(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	tool, ok := lo.Find(t.Tools(), func(tool Tool) bool { return tool.Name == name })
	if !ok {
		names := lo.Map(t.Tools(), func(tool Tool, _ int) string { return tool.Name })
		return nil, fmt.Errorf("unknown tool %q, available tools: %s", name, strings.Join(names, ", "))
	}
	return tool.Handler(ctx, args), nil
}

// SendMessage routes a task to a participant agent. Dispatch failures come
// back as error results carrying the reason, including the registered agent
// names when the target is unknown.
func (t *Toolset) SendMessage(ctx context.Context, agentName, task string) map[string]any {
	result, err := t.dispatcher.Dispatch(ctx, agentName, task)
	if err != nil {
		t.log.Warn("Dispatch failed", "agent", agentName, "error", err)
		return map[string]any{
			"status":  StatusError,
			"message": err.Error(),
		}
	}
	return map[string]any{
		"status":     StatusSuccess,
		"agent_name": result.AgentName,
		"agent_url":  result.AgentURL,
		"response":   result.Response,
	}
}

// BookCourt books a single slot in the shared schedule.
func (t *Toolset) BookCourt(date, startTime, endTime, reservationName string) map[string]any {
	occupant, err := t.schedule.Book(date, startTime, endTime, reservationName)
	if err != nil {
		return map[string]any{
			"status":  StatusError,
			"message": err.Error(),
		}
	}
	t.log.Info("Court booked", "date", date, "slot", startTime, "occupant", occupant)
	return map[string]any{
		"status":  StatusSuccess,
		"message": fmt.Sprintf("Booked %s %s-%s for %s.", date, startTime, endTime, occupant),
	}
}

// ListCourtAvailabilities partitions a date's slots by current state.
// Unknown dates return an error result with empty partitions so the caller
// can still read the three keys.
func (t *Toolset) ListCourtAvailabilities(date string) map[string]any {
	report, err := t.schedule.Availability(date)
	if err != nil {
		return map[string]any{
			"status":          StatusError,
			"message":         err.Error(),
			"available_slots": report.Available,
			"blocked_slots":   report.Blocked,
			"booked_slots":    report.Booked,
		}
	}
	return map[string]any{
		"status":          StatusSuccess,
		"message":         fmt.Sprintf("Court schedule for %s.", date),
		"available_slots": report.Available,
		"blocked_slots":   report.Blocked,
		"booked_slots":    report.Booked,
	}
}

func stringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}
