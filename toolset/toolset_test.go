package toolset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"courtside/domain"
	courterr "courtside/errors"
	"courtside/schedule"
)

type fakeDispatcher struct {
	result domain.TaskResult
	err    error
	last   string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, agentName, task string) (domain.TaskResult, error) {
	f.last = task
	if f.err != nil {
		return domain.TaskResult{}, f.err
	}
	return f.result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testToolset(dispatcher *fakeDispatcher) (*Toolset, string) {
	date := "2026-09-01"
	sched := schedule.New(map[string]map[string]schedule.SlotState{
		date: {
			"08:00": schedule.Available(),
			"09:00": schedule.Available(),
			"10:00": schedule.Blocked("maintenance"),
			"11:00": schedule.Available(),
		},
	})
	return New(testLogger(), dispatcher, sched), date
}

func TestSendMessage_Success(t *testing.T) {
	req := require.New(t)
	dispatcher := &fakeDispatcher{result: domain.TaskResult{
		Status:    domain.TaskSuccess,
		AgentName: "Jeff's Agent",
		AgentURL:  "http://localhost:10004",
		Response:  map[string]any{"result": map[string]any{"kind": "message"}},
	}}
	tools, _ := testToolset(dispatcher)

	got := tools.SendMessage(context.Background(), "Jeff's Agent", "Are you free tomorrow?")

	req.Equal(StatusSuccess, got["status"])
	req.Equal("Jeff's Agent", got["agent_name"])
	req.Equal("http://localhost:10004", got["agent_url"])
	req.NotNil(got["response"])
	req.Equal("Are you free tomorrow?", dispatcher.last)
}

func TestSendMessage_UnknownAgentSurfacesNames(t *testing.T) {
	req := require.New(t)
	dispatcher := &fakeDispatcher{err: fmt.Errorf("%w: no agent named %q, available agents: Jeff's Agent",
		courterr.ErrUnknownAgent, "Elon")}
	tools, _ := testToolset(dispatcher)

	got := tools.SendMessage(context.Background(), "Elon", "hi")

	req.Equal(StatusError, got["status"])
	req.Contains(got["message"], "Jeff's Agent")
}

func TestBookCourt_SuccessMessage(t *testing.T) {
	req := require.New(t)
	tools, date := testToolset(&fakeDispatcher{})

	got := tools.BookCourt(date, "08:00", "09:00", "Team A")

	req.Equal(StatusSuccess, got["status"])
	req.Equal("Booked 2026-09-01 08:00-09:00 for Team A.", got["message"])
}

func TestBookCourt_ErrorsAreResultsNotPanics(t *testing.T) {
	req := require.New(t)
	tools, date := testToolset(&fakeDispatcher{})

	got := tools.BookCourt("1999-01-01", "08:00", "09:00", "Team A")
	req.Equal(StatusError, got["status"])
	req.Contains(got["message"], date)

	got = tools.BookCourt(date, "10am", "11:00", "Team A")
	req.Equal(StatusError, got["status"])
	req.Contains(got["message"], "HH:MM")
}

func TestListCourtAvailabilities_Partitions(t *testing.T) {
	req := require.New(t)
	tools, date := testToolset(&fakeDispatcher{})

	got := tools.ListCourtAvailabilities(date)

	req.Equal(StatusSuccess, got["status"])
	req.Equal([]string{"08:00", "09:00", "11:00"}, got["available_slots"])
	req.Equal(map[string]string{"10:00": "maintenance"}, got["blocked_slots"])
	req.Empty(got["booked_slots"])
}

func TestListCourtAvailabilities_UnknownDateKeepsEmptyPartitions(t *testing.T) {
	req := require.New(t)
	tools, _ := testToolset(&fakeDispatcher{})

	got := tools.ListCourtAvailabilities("1999-01-01")

	req.Equal(StatusError, got["status"])
	req.Empty(got["available_slots"])
	req.Empty(got["blocked_slots"])
	req.Empty(got["booked_slots"])
}

func TestInvoke_DispatchesByName(t *testing.T) {
	req := require.New(t)
	tools, date := testToolset(&fakeDispatcher{})

	got, err := tools.Invoke(context.Background(), ToolAvailability, map[string]any{"date": date})
	req.NoError(err)
	req.Equal(StatusSuccess, got["status"])

	_, err = tools.Invoke(context.Background(), "delete_schedule", nil)
	req.Error(err)
	req.Contains(err.Error(), ToolBookCourt)
}

// Full flow: list, book, list again and watch the slot move partitions.
func TestEndToEnd_BookingMovesSlot(t *testing.T) {
	req := require.New(t)
	tools, date := testToolset(&fakeDispatcher{})

	before := tools.ListCourtAvailabilities(date)
	req.Contains(before["available_slots"], "08:00")

	booked := tools.BookCourt(date, "08:00", "09:00", "Team A")
	req.Equal(StatusSuccess, booked["status"])

	after := tools.ListCourtAvailabilities(date)
	req.NotContains(after["available_slots"], "08:00")
	req.Equal(map[string]string{"08:00": "Team A"}, after["booked_slots"])

	again := tools.BookCourt(date, "08:00", "09:00", "Team B")
	req.Equal(StatusError, again["status"])
	req.Contains(again["message"], "Team A")
}
