package participant

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"courtside/a2a"
)

// Server serves one participant over HTTP: the agent card at the
// well-known path and the message/send endpoint at the root.
type Server struct {
	log       *slog.Logger
	card      a2a.AgentCard
	responder Responder
}

func NewServer(log *slog.Logger, card a2a.AgentCard, responder Responder) *Server {
	return &Server{log: log, card: card, responder: responder}
}

// NewCard builds the card a participant advertises, with the availability
// skill every scheduling participant carries.
func NewCard(name, description, url string) a2a.AgentCard {
	return a2a.AgentCard{
		Name:               name,
		Description:        description,
		URL:                url,
		Version:            "1.0.0",
		DefaultInputModes:  []string{"text", "text/plain"},
		DefaultOutputModes: []string{"text", "text/plain"},
		Skills: []a2a.AgentSkill{{
			ID:          "schedule_badminton",
			Name:        "Availability Lookup",
			Description: "Returns " + name + "'s availability for badminton scheduling requests.",
			Tags:        []string{"scheduling", "badminton"},
			Examples:    []string{"Are you free to play badminton on 2026-03-01?"},
		}},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get(a2a.WellKnownCardPath, s.handleAgentCard)
	r.Post("/", s.handleSendMessage)
	return r
}

func (s *Server) handleAgentCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(s.card)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req a2a.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "", a2a.CodeParseError, "request body is not valid JSON")
		return
	}
	if req.Method != a2a.MethodSendMessage {
		s.writeError(w, req.ID, a2a.CodeMethodNotFound, "unsupported method: "+req.Method)
		return
	}
	text := req.Params.Message.Text()
	if text == "" {
		s.writeError(w, req.ID, a2a.CodeInvalidRequest, "message has no text part")
		return
	}

	s.log.Info("Handling task", "request_id", req.ID)
	reply := s.responder.Respond(r.Context(), text)

	result, err := json.Marshal(a2a.Message{
		Role:      a2a.RoleAgent,
		Parts:     []a2a.Part{{Type: a2a.PartTypeText, Text: reply}},
		MessageID: uuid.NewString(),
	})
	if err != nil {
		s.writeError(w, req.ID, a2a.CodeInvalidRequest, "failed to encode reply")
		return
	}

	s.writeResponse(w, a2a.SendMessageResponse{
		JSONRPC: a2a.Version,
		ID:      req.ID,
		Result:  result,
	})
}

func (s *Server) writeError(w http.ResponseWriter, id string, code int, message string) {
	s.log.Warn("Rejecting request", "code", code, "reason", message)
	s.writeResponse(w, a2a.SendMessageResponse{
		JSONRPC: a2a.Version,
		ID:      id,
		Error:   &a2a.RPCError{Code: code, Message: message},
	})
}

func (s *Server) writeResponse(w http.ResponseWriter, resp a2a.SendMessageResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}
