package hostapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"courtside/a2a"
	"courtside/domain"
	"courtside/registry"
	"courtside/schedule"
	"courtside/toolset"
)

type fakeDispatcher struct {
	result domain.TaskResult
	err    error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, _ string, _ string) (domain.TaskResult, error) {
	return d.result, d.err
}

type nopSender struct{}

func (nopSender) SendMessage(_ context.Context, _ a2a.SendMessageRequest) (a2a.SendMessageResponse, error) {
	return a2a.SendMessageResponse{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServer(t *testing.T, dispatcher *fakeDispatcher) (*httptest.Server, *registry.Registry) {
	t.Helper()
	sched := schedule.New(map[string]map[string]schedule.SlotState{
		"2026-09-02": {
			"09:00": schedule.Available(),
			"10:00": schedule.Occupied("morning-club"),
		},
	})
	reg := registry.New()
	tools := toolset.New(testLogger(), dispatcher, sched)
	ts := httptest.NewServer(New(testLogger(), tools, reg).Router())
	t.Cleanup(ts.Close)
	return ts, reg
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()
	req := require.New(t)

	body, err := json.Marshal(payload)
	req.NoError(err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestServer_ListAgents(t *testing.T) {
	req := require.New(t)
	ts, reg := testServer(t, &fakeDispatcher{})

	// Given two registered participants
	reg.Add(&registry.Connection{
		Card:     a2a.AgentCard{Name: "Jeff's Agent", Description: "Jeff's calendar", Version: "1.0.0"},
		Endpoint: "http://localhost:10004",
		Client:   nopSender{},
	})
	reg.Add(&registry.Connection{
		Card:     a2a.AgentCard{Name: "Karley's Agent", Description: "Karley's calendar", Version: "1.0.0"},
		Endpoint: "http://localhost:10005",
		Client:   nopSender{},
	})

	// When listing agents
	resp, err := http.Get(ts.URL + "/api/v1/agents")
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	// Then both appear, sorted by name
	req.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Items []map[string]any `json:"items"`
	}
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Len(body.Items, 2)
	req.Equal("Jeff's Agent", body.Items[0]["name"])
	req.Equal("http://localhost:10004", body.Items[0]["url"])
	req.Equal("Karley's Agent", body.Items[1]["name"])
}

func TestServer_ListTools(t *testing.T) {
	req := require.New(t)
	ts, _ := testServer(t, &fakeDispatcher{})

	resp, err := http.Get(ts.URL + "/api/v1/tools")
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	req.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Items []map[string]any `json:"items"`
	}
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Len(body.Items, 3)
	names := []string{
		body.Items[0]["name"].(string),
		body.Items[1]["name"].(string),
		body.Items[2]["name"].(string),
	}
	req.Contains(names, toolset.ToolSendMessage)
	req.Contains(names, toolset.ToolBookCourt)
	req.Contains(names, toolset.ToolAvailability)
}

func TestServer_InvokeAvailability(t *testing.T) {
	req := require.New(t)
	ts, _ := testServer(t, &fakeDispatcher{})

	resp, body := postJSON(t, ts.URL+"/api/v1/tools/"+toolset.ToolAvailability,
		map[string]any{"date": "2026-09-02"})

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(toolset.StatusSuccess, body["status"])
	req.Equal([]any{"09:00"}, body["available_slots"])
	req.Equal(map[string]any{"10:00": "morning-club"}, body["booked_slots"])
}

func TestServer_InvokeBookCourt(t *testing.T) {
	req := require.New(t)
	ts, _ := testServer(t, &fakeDispatcher{})

	resp, body := postJSON(t, ts.URL+"/api/v1/tools/"+toolset.ToolBookCourt, map[string]any{
		"date":             "2026-09-02",
		"start_time":       "09:00",
		"end_time":         "10:00",
		"reservation_name": "Team A",
	})

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(toolset.StatusSuccess, body["status"])
	req.Equal("Booked 2026-09-02 09:00-10:00 for Team A.", body["message"])
}

func TestServer_InvokeSendMessage(t *testing.T) {
	req := require.New(t)
	dispatcher := &fakeDispatcher{result: domain.TaskResult{
		Status:    domain.TaskSuccess,
		AgentName: "Jeff's Agent",
		AgentURL:  "http://localhost:10004",
		Response:  map[string]any{"result": "I am free then."},
	}}
	ts, _ := testServer(t, dispatcher)

	resp, body := postJSON(t, ts.URL+"/api/v1/tools/"+toolset.ToolSendMessage, map[string]any{
		"agent_name": "Jeff's Agent",
		"task":       "Are you free on 2026-09-02?",
	})

	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal(toolset.StatusSuccess, body["status"])
	req.Equal("Jeff's Agent", body["agent_name"])
}

func TestServer_UnknownToolIs404(t *testing.T) {
	req := require.New(t)
	ts, _ := testServer(t, &fakeDispatcher{})

	resp, body := postJSON(t, ts.URL+"/api/v1/tools/open_portal", map[string]any{})

	req.Equal(http.StatusNotFound, resp.StatusCode)
	req.Equal("unknown_tool", body["error"])
	req.Contains(body["message"], "open_portal")
}

func TestServer_EmptyBodyMeansNoArguments(t *testing.T) {
	req := require.New(t)
	ts, _ := testServer(t, &fakeDispatcher{})

	// An empty body is treated as an empty argument map; the tool itself
	// reports the missing date.
	resp, err := http.Post(ts.URL+"/api/v1/tools/"+toolset.ToolAvailability,
		"application/json", http.NoBody)
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	req.Equal(http.StatusOK, resp.StatusCode)
	var body map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&body))
	req.Equal(toolset.StatusError, body["status"])
}

func TestServer_MalformedBodyIs400(t *testing.T) {
	req := require.New(t)
	ts, _ := testServer(t, &fakeDispatcher{})

	resp, err := http.Post(ts.URL+"/api/v1/tools/"+toolset.ToolBookCourt,
		"application/json", strings.NewReader("{not json"))
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestServer_ServesOpenAPIDocument(t *testing.T) {
	req := require.New(t)
	ts, _ := testServer(t, &fakeDispatcher{})

	resp, err := http.Get(ts.URL + "/api/v1/openapi.yaml")
	req.NoError(err)
	defer func() { _ = resp.Body.Close() }()

	req.Equal(http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	req.NoError(err)
	req.Contains(string(data), "Courtside Host API")
	req.Contains(string(data), fmt.Sprintf("enum: [%s, %s, %s]",
		toolset.ToolSendMessage, toolset.ToolBookCourt, toolset.ToolAvailability))
}
