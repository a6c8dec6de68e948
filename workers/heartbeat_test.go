package workers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"courtside/a2a"
	"courtside/registry"
)

type countingResolver struct {
	mu       sync.Mutex
	resolved []string
	failFor  string
}

func (r *countingResolver) Resolve(_ context.Context, endpoint string) (a2a.AgentCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = append(r.resolved, endpoint)
	if endpoint == r.failFor {
		return a2a.AgentCard{}, errors.New("connection refused")
	}
	return a2a.AgentCard{Name: "someone", URL: endpoint}, nil
}

type nopSender struct{}

func (nopSender) SendMessage(_ context.Context, _ a2a.SendMessageRequest) (a2a.SendMessageResponse, error) {
	return a2a.SendMessageResponse{}, nil
}

func TestHeartbeat_ChecksEveryRegisteredParticipant(t *testing.T) {
	req := require.New(t)

	// Given two registered participants, one of them unreachable
	reg := registry.New()
	reg.Add(&registry.Connection{
		Card:     a2a.AgentCard{Name: "Jeff's Agent"},
		Endpoint: "http://localhost:10004",
		Client:   nopSender{},
	})
	reg.Add(&registry.Connection{
		Card:     a2a.AgentCard{Name: "Karley's Agent"},
		Endpoint: "http://localhost:10005",
		Client:   nopSender{},
	})
	resolver := &countingResolver{failFor: "http://localhost:10005"}
	worker := NewHeartbeatWorker(testLogger(), reg, resolver, 0)

	// When one check round runs
	worker.checkParticipants(context.Background())

	// Then both endpoints were probed and the registry is untouched
	req.ElementsMatch(
		[]string{"http://localhost:10004", "http://localhost:10005"},
		resolver.resolved,
	)
	req.Equal(2, reg.Len())
}
