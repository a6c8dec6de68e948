package participant

import (
	"context"
	"regexp"
)

// Responder turns one incoming task message into a reply. The calendar
// responder below is the deterministic implementation; a model-backed one
// can sit behind the same interface.
type Responder interface {
	Respond(ctx context.Context, text string) string
}

var isoDatePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// CalendarResponder answers scheduling questions that carry an ISO date by
// consulting the owner's calendar, and politely declines everything else.
type CalendarResponder struct {
	calendar *Calendar
}

func NewCalendarResponder(calendar *Calendar) *CalendarResponder {
	return &CalendarResponder{calendar: calendar}
}

func (r *CalendarResponder) Respond(ctx context.Context, text string) string {
	date := isoDatePattern.FindString(text)
	if date == "" {
		return "I can only help with scheduling questions for a specific date. " +
			"Please include the date in ISO format (YYYY-MM-DD)."
	}
	return r.calendar.GetAvailability(date).Message
}
