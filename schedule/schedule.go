// Package schedule holds the shared court schedule: an exclusive-assignment
// state machine over (date, slot) pairs. The slot set of a date is fixed at
// construction time; the only transition is available -> booked, committed
// atomically under the schedule lock.
package schedule

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	courterr "courtside/errors"
)

// DefaultOccupant is used when a booking comes in with a blank name.
const DefaultOccupant = "Badminton Group"

const timeLayout = "15:04"

type kind int

const (
	kindAvailable kind = iota
	kindBlocked
	kindBooked
)

// SlotState is a tagged value: available, blocked with a reason, or booked
// by an occupant. Blocked and booked are terminal for booking purposes.
type SlotState struct {
	kind kind
	note string // blocked reason or occupant name
}

func Available() SlotState            { return SlotState{kind: kindAvailable} }
func Blocked(reason string) SlotState { return SlotState{kind: kindBlocked, note: reason} }

func Occupied(occupant string) SlotState { return SlotState{kind: kindBooked, note: occupant} }

func (s SlotState) IsAvailable() bool { return s.kind == kindAvailable }
func (s SlotState) IsBlocked() bool   { return s.kind == kindBlocked }
func (s SlotState) IsBooked() bool    { return s.kind == kindBooked }

// Occupant returns the booking name for a booked slot.
func (s SlotState) Occupant() (string, bool) { return s.note, s.kind == kindBooked }

// String renders the state the way callers see it in error messages:
// "available", the blocking reason, or the occupant name.
func (s SlotState) String() string {
	if s.kind == kindAvailable {
		return "available"
	}
	return s.note
}

// Report partitions one date's slots by current state. The three partitions
// are disjoint and together cover the full slot set of the date.
type Report struct {
	Date      string
	Available []string
	Blocked   map[string]string // slot -> reason
	Booked    map[string]string // slot -> occupant
}

// Schedule is the only mutable shared state in the host process. All
// mutation goes through Book, which validates against current state and
// commits under the lock, so concurrent bookings of the same slot cannot
// both succeed.
type Schedule struct {
	mu   sync.Mutex
	days map[string]map[string]SlotState
}

// New copies the seed so the caller cannot mutate the schedule behind the
// lock. Each test gets its own instance; there is no package-level schedule.
func New(seed map[string]map[string]SlotState) *Schedule {
	days := make(map[string]map[string]SlotState, len(seed))
	for date, slots := range seed {
		day := make(map[string]SlotState, len(slots))
		for slot, state := range slots {
			day[slot] = state
		}
		days[date] = day
	}
	return &Schedule{days: days}
}

// NewDemo builds the three-day demo schedule relative to a base date:
// a maintenance block on day one, an existing booking on day two and a
// fully open day three.
func NewDemo(base time.Time) *Schedule {
	day1 := base.Format(time.DateOnly)
	day2 := base.AddDate(0, 0, 1).Format(time.DateOnly)
	day3 := base.AddDate(0, 0, 2).Format(time.DateOnly)

	return New(map[string]map[string]SlotState{
		day1: {
			"08:00": Available(),
			"09:00": Available(),
			"10:00": Blocked("maintenance"),
			"11:00": Available(),
		},
		day2: {
			"08:00": Occupied("morning-club"),
			"09:00": Available(),
			"10:00": Available(),
			"11:00": Available(),
		},
		day3: {
			"08:00": Available(),
			"09:00": Available(),
			"10:00": Available(),
			"11:00": Available(),
		},
	})
}

// Dates returns the known schedule dates, sorted.
func (s *Schedule) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.datesLocked()
}

func (s *Schedule) datesLocked() []string {
	dates := make([]string, 0, len(s.days))
	for date := range s.days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Slots returns the sorted slot labels of a date, or false for unknown dates.
func (s *Schedule) Slots(date string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, ok := s.days[date]
	if !ok {
		return nil, false
	}
	return sortedSlots(day), true
}

func sortedSlots(day map[string]SlotState) []string {
	slots := make([]string, 0, len(day))
	for slot := range day {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	return slots
}

// Availability partitions the date's slots into available, blocked and
// booked. An unknown date yields ErrUnknownDate together with a report
// carrying empty partitions.
func (s *Schedule) Availability(date string) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := Report{
		Date:      date,
		Available: []string{},
		Blocked:   map[string]string{},
		Booked:    map[string]string{},
	}

	day, ok := s.days[date]
	if !ok {
		return report, fmt.Errorf("%w: no court schedule found for %s, known dates: %s",
			courterr.ErrUnknownDate, date, strings.Join(s.datesLocked(), ", "))
	}

	for _, slot := range sortedSlots(day) {
		state := day[slot]
		switch {
		case state.IsAvailable():
			report.Available = append(report.Available, slot)
		case state.IsBlocked():
			report.Blocked[slot] = state.note
		default:
			report.Booked[slot] = state.note
		}
	}
	return report, nil
}

// Book marks the start slot as occupied after validating the request
// against current state, and returns the committed occupant name. The end
// time is validated for format and order but only the start slot is
// committed: the demo court is booked one slot label at a time. Checks run
// in a fixed order and the first failure is terminal, so no partial
// mutation ever happens.
func (s *Schedule) Book(date, start, end, occupant string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[date]
	if !ok {
		return "", fmt.Errorf("%w: no court schedule found for %s, known dates: %s",
			courterr.ErrUnknownDate, date, strings.Join(s.datesLocked(), ", "))
	}

	startAt, err := time.Parse(timeLayout, start)
	if err != nil {
		return "", fmt.Errorf("%w: time must be provided in 24-hour HH:MM format", courterr.ErrInvalidTimeFormat)
	}
	endAt, err := time.Parse(timeLayout, end)
	if err != nil {
		return "", fmt.Errorf("%w: time must be provided in 24-hour HH:MM format", courterr.ErrInvalidTimeFormat)
	}

	if !endAt.After(startAt) {
		return "", fmt.Errorf("%w: end time %s must be later than start time %s", courterr.ErrInvalidRange, end, start)
	}

	state, ok := day[start]
	if !ok {
		return "", fmt.Errorf("%w: invalid start time %q, valid slots: %s",
			courterr.ErrInvalidSlot, start, strings.Join(sortedSlots(day), ", "))
	}

	if !state.IsAvailable() {
		return "", fmt.Errorf("%w: slot %s on %s is unavailable (current state: %s)",
			courterr.ErrSlotUnavailable, start, date, state)
	}

	name := strings.TrimSpace(occupant)
	if name == "" {
		name = DefaultOccupant
	}
	day[start] = Occupied(name)
	return name, nil
}
