package contract

import (
	"context"
	"reflect"

	"courtside/a2a"
	"courtside/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision, avoiding a manual Name method on the
// Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// MessageSender is the transport side of one participant connection.
type MessageSender interface {
	SendMessage(ctx context.Context, req a2a.SendMessageRequest) (a2a.SendMessageResponse, error)
}

// CardResolver resolves a capability descriptor at an endpoint.
type CardResolver interface {
	Resolve(ctx context.Context, endpoint string) (a2a.AgentCard, error)
}

// Dispatcher routes one task to one participant and awaits the reply.
type Dispatcher interface {
	Dispatch(ctx context.Context, agentName, task string) (domain.TaskResult, error)
}
