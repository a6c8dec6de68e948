// Package dispatch routes task requests to participant agents and
// normalizes their replies.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"courtside/domain"
	courterr "courtside/errors"
	"courtside/registry"
)

type Dispatcher struct {
	log      *slog.Logger
	registry *registry.Registry
}

func New(log *slog.Logger, reg *registry.Registry) *Dispatcher {
	return &Dispatcher{log: log, registry: reg}
}

// Dispatch resolves the agent name, sends the task text as a fresh uniquely
// identified message and awaits the single structured reply. Nothing is
// cached or retried; a failed dispatch is reported to the caller, who owns
// the decision to try again.
func (d *Dispatcher) Dispatch(ctx context.Context, agentName, task string) (domain.TaskResult, error) {
	conn, ok := d.registry.Lookup(agentName)
	if !ok {
		return domain.TaskResult{}, fmt.Errorf("%w: no agent named %q, available agents: %s",
			courterr.ErrUnknownAgent, agentName, d.availableAgents())
	}

	request := domain.TaskRequest{
		ID:        uuid.NewString(),
		AgentName: conn.Card.Name,
		Text:      task,
	}
	d.log.Debug("Dispatching task", "agent", request.AgentName, "request_id", request.ID)

	envelope := newEnvelope(request)
	response, err := conn.Client.SendMessage(ctx, envelope)
	if err != nil {
		return domain.TaskResult{}, fmt.Errorf("%w: agent %q at %s: %w",
			courterr.ErrRemoteDispatch, conn.Card.Name, conn.Endpoint, err)
	}
	if response.Error != nil {
		return domain.TaskResult{}, fmt.Errorf("%w: agent %q at %s answered code %d: %s",
			courterr.ErrRemoteDispatch, conn.Card.Name, conn.Endpoint,
			response.Error.Code, response.Error.Message)
	}

	return domain.TaskResult{
		Status:    domain.TaskSuccess,
		AgentName: conn.Card.Name,
		AgentURL:  conn.Endpoint,
		Response:  toResultMap(response),
	}, nil
}

func (d *Dispatcher) availableAgents() string {
	names := d.registry.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
