package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/stratchat"
)

// Fixed messages of the generate proxy.
const (
	ErrAPIKeyMissing = "API key not configured on the server."
	ErrPromptMissing = "A prompt is required."
)

// Content is a conversation turn in the hosted model's wire shape.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is one text part of a Content.
type Part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	History []Content `json:"history"`
	Prompt  string    `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// handleGenerate is the stateless proxy: history and prompt in, text out.
// Every failure is a 500 with a plain message.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.Generator == nil {
		s.fail(w, r, errors.New(ErrAPIKeyMissing))
		return
	}

	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)).Decode(&req); err != nil {
		s.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		s.fail(w, r, errors.New(ErrPromptMissing))
		return
	}

	text, err := s.Generator.Generate(r.Context(), stratchat.GenerateRequest{
		SystemInstruction: s.ProxyInstruction,
		History:           Messages(req.History),
		Prompt:            req.Prompt,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Text: text})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("generate failed", "path", r.URL.Path, "err", err)
	message := err.Error()
	if stratchat.ErrorCode(err) != stratchat.EINTERNAL {
		message = stratchat.ErrorMessage(err)
	}
	writeError(w, http.StatusInternalServerError, message)
}

// Messages converts wire contents into history messages. Parts are joined
// and roles other than model are treated as user.
func Messages(contents []Content) []stratchat.Message {
	if len(contents) == 0 {
		return nil
	}
	messages := make([]stratchat.Message, 0, len(contents))
	for _, c := range contents {
		var b strings.Builder
		for _, p := range c.Parts {
			b.WriteString(p.Text)
		}
		role := stratchat.RoleUser
		if c.Role == string(stratchat.RoleModel) {
			role = stratchat.RoleModel
		}
		messages = append(messages, stratchat.Message{Role: role, Text: b.String()})
	}
	return messages
}
