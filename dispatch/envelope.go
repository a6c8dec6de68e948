package dispatch

import (
	"encoding/json"

	"courtside/a2a"
	"courtside/domain"
)

func newEnvelope(request domain.TaskRequest) a2a.SendMessageRequest {
	return a2a.NewSendMessageRequest(request.ID, request.Text)
}

// toResultMap flattens a typed response into a plain nested map so the
// reasoning caller never needs to know the wire types. Falls back to
// wrapping the value under a "result" key when it does not round-trip
// through JSON as an object.
func toResultMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"result": v}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"result": v}
	}
	return m
}
