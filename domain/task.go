package domain

type TaskStatus string

const (
	TaskSuccess TaskStatus = "success"
	TaskError   TaskStatus = "error"
)

// TaskRequest is one outgoing unit of work for a participant agent.
// It lives only for the duration of a single dispatch call.
type TaskRequest struct {
	ID        string
	AgentName string
	Text      string
}

// TaskResult is the normalized outcome of a dispatch, echoing which agent
// answered and where it lives so the caller can self-correct on errors.
type TaskResult struct {
	Status    TaskStatus
	AgentName string
	AgentURL  string
	Response  map[string]any
}
