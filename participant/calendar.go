// Package participant implements one person's scheduling agent: a demo
// availability calendar, a responder that answers task messages from it,
// and the HTTP surface hosts discover and talk to.
package participant

import (
	"fmt"
	"strings"
	"time"
)

// Availability statuses, part of the reply contract with hosts.
const (
	StatusCompleted     = "completed"
	StatusError         = "error"
	StatusInputRequired = "input_required"
)

// AvailabilityResult is the outcome of one calendar lookup.
type AvailabilityResult struct {
	Status  string
	Message string
}

// Calendar answers date-specific availability questions for its owner from
// a fixed map of date -> free-text availability.
type Calendar struct {
	owner   string
	entries map[string]string
}

func NewCalendar(owner string, entries map[string]string) *Calendar {
	copied := make(map[string]string, len(entries))
	for date, note := range entries {
		copied[date] = note
	}
	return &Calendar{owner: owner, entries: copied}
}

// DemoEntries builds a five-day demo availability window starting at base.
func DemoEntries(base time.Time) map[string]string {
	day := func(offset int) string { return base.AddDate(0, 0, offset).Format(time.DateOnly) }
	return map[string]string{
		day(0): "available from 16:00 to 18:00",
		day(1): "available from 10:00 to 12:00",
		day(2): "available from 11:00 to 12:00",
		day(3): "busy from 13:00 to 17:00",
		day(4): "available all day",
	}
}

// GetAvailability looks up the owner's availability for an ISO date.
// Blank or non-ISO input is an error telling the caller which format to
// use; a well-formed date with no entry asks for another date.
func (c *Calendar) GetAvailability(date string) AvailabilityResult {
	normalized := strings.TrimSpace(date)
	if normalized == "" {
		return AvailabilityResult{
			Status:  StatusError,
			Message: "No date provided. Use YYYY-MM-DD.",
		}
	}
	if _, err := time.Parse(time.DateOnly, normalized); err != nil {
		return AvailabilityResult{
			Status:  StatusError,
			Message: fmt.Sprintf("Invalid date %q. Use ISO format YYYY-MM-DD.", date),
		}
	}

	note, ok := c.entries[normalized]
	if !ok {
		return AvailabilityResult{
			Status:  StatusInputRequired,
			Message: fmt.Sprintf("No availability is recorded for %s on %s. Please ask about another date.", c.owner, normalized),
		}
	}
	return AvailabilityResult{
		Status:  StatusCompleted,
		Message: fmt.Sprintf("On %s, %s is %s.", normalized, c.owner, note),
	}
}
