// Package a2a implements the JSON wire format spoken between the host and
// participant agents: the agent card served at a well-known path and the
// JSON-RPC message/send exchange. The shapes must stay stable because
// already-running participants depend on them.
package a2a

import "encoding/json"

const (
	// WellKnownCardPath is where every participant serves its agent card.
	WellKnownCardPath = "/.well-known/agent.json"

	// MethodSendMessage is the only JSON-RPC method participants handle.
	MethodSendMessage = "message/send"

	Version = "2.0"

	RoleUser  = "user"
	RoleAgent = "agent"

	PartTypeText = "text"
)

// JSON-RPC error codes used by participant servers.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
)

// AgentSkill advertises one capability of a participant agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// AgentCard is the capability descriptor resolved during discovery.
// Name is the registry key; URL is where message/send requests go.
type AgentCard struct {
	Name               string       `json:"name"`
	Description        string       `json:"description,omitempty"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	DefaultInputModes  []string     `json:"defaultInputModes,omitempty"`
	DefaultOutputModes []string     `json:"defaultOutputModes,omitempty"`
	Skills             []AgentSkill `json:"skills,omitempty"`
}

type Part struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Message struct {
	Role      string `json:"role"`
	Parts     []Part `json:"parts"`
	MessageID string `json:"messageId"`
}

// Text concatenates the text parts of a message into one string.
func (m Message) Text() string {
	var out string
	for _, p := range m.Parts {
		if p.Type != PartTypeText {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p.Text
	}
	return out
}

type MessageSendParams struct {
	Message Message `json:"message"`
}

type SendMessageRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      string            `json:"id"`
	Method  string            `json:"method"`
	Params  MessageSendParams `json:"params"`
}

// NewSendMessageRequest builds a user message envelope carrying the raw task
// text as a single text part. The same id is used for the request and the
// message, matching what participants expect.
func NewSendMessageRequest(id, text string) SendMessageRequest {
	return SendMessageRequest{
		JSONRPC: Version,
		ID:      id,
		Method:  MethodSendMessage,
		Params: MessageSendParams{
			Message: Message{
				Role:      RoleUser,
				Parts:     []Part{{Type: PartTypeText, Text: text}},
				MessageID: id,
			},
		},
	}
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type SendMessageResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}
