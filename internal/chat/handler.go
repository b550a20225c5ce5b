package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lojachat/internal/httpapi"
	"lojachat/internal/model"
	"lojachat/internal/observability"
)

type ChatRequest struct {
	Message   string              `json:"message"`
	History   []model.ChatMessage `json:"history,omitempty"`
	SessionID string              `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Handler serves POST /api/chat.
func Handler(svc *Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			observability.ChatRequestsTotal.WithLabelValues("bad_request").Inc()
			httpapi.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "JSON inválido"})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			observability.ChatRequestsTotal.WithLabelValues("bad_request").Inc()
			httpapi.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "Mensagem é obrigatória"})
			return
		}

		reply, err := svc.Reply(r.Context(), Request{
			Message:   req.Message,
			History:   req.History,
			SessionID: req.SessionID,
		})
		if err != nil {
			if errors.Is(err, model.ErrEmptyMessage) {
				observability.ChatRequestsTotal.WithLabelValues("bad_request").Inc()
				httpapi.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "Mensagem é obrigatória"})
				return
			}
			observability.ChatRequestsTotal.WithLabelValues("error").Inc()
			logger.Error().Err(err).Msg("Erro no chat")
			httpapi.WriteJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "Erro interno do servidor",
				Details: err.Error(),
			})
			return
		}

		observability.ChatRequestsTotal.WithLabelValues("ok").Inc()
		httpapi.WriteJSON(w, http.StatusOK, ChatResponse{
			Response:  reply.Text,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			SessionID: reply.SessionID,
		})
	}
}
