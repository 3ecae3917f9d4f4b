package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fwojciec/stratchat"
)

type chatRequest struct {
	History []stratchat.Message `json:"history"`
	Message string              `json:"message"`
}

type chatResponse struct {
	Text     string             `json:"text"`
	Intent   stratchat.Intent   `json:"intent"`
	Strategy stratchat.Strategy `json:"strategy"`
	Refused  bool               `json:"refused"`

	// Prompt is the message to append to history with the reply, empty
	// when the turn does not belong to the conversation.
	Prompt string `json:"prompt,omitempty"`
}

// handleChat answers one routed turn statelessly. The client keeps the
// history and sends it back with every message.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.Responder == nil {
		writeError(w, http.StatusInternalServerError, ErrAPIKeyMissing)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "A message is required.")
		return
	}

	var b strings.Builder
	turn, err := s.Responder.Respond(r.Context(), stratchat.TurnRequest{History: req.History, Input: req.Message}, &b)
	if err != nil {
		s.logger.Error("chat failed", "code", stratchat.ErrorCode(err), "err", err)
		writeError(w, http.StatusInternalServerError, stratchat.FailureMessage(err))
		return
	}

	resp := chatResponse{
		Text:     turn.Text,
		Intent:   turn.Intent,
		Strategy: turn.Strategy,
		Refused:  turn.Refused(),
	}
	if turn.InHistory() {
		resp.Prompt = turn.Prompt
	}
	writeJSON(w, http.StatusOK, resp)
}
