package stratchat

import (
	"context"
	"io"
	"slices"
	"strings"
)

// Intent is the routing category of a user question.
type Intent string

// Intent values, in routing priority order.
const (
	IntentProjectVision   Intent = "project_vision"
	IntentProjectDGA      Intent = "project_dga"
	IntentObjectiveVision Intent = "objective_vision"
	IntentDGARequirements Intent = "dga_requirements"
	IntentGovDirections   Intent = "gov_directions"
	IntentObjectives      Intent = "objectives"
	IntentProjectLookup   Intent = "project_lookup"
	IntentLookup          Intent = "lookup"
)

// Strategy records how a turn was answered.
type Strategy string

// Strategy values.
const (
	StrategyRefusal  Strategy = "refusal"
	StrategyContext  Strategy = "context"
	StrategySearch   Strategy = "search"
	StrategyFallback Strategy = "fallback"
)

// TurnRequest is one user question plus the conversation so far.
type TurnRequest struct {
	History []Message
	Input   string
}

// Turn is the outcome of answering one user question.
type Turn struct {
	Intent   Intent
	Strategy Strategy

	// Entity is the project or objective name extracted from the question.
	Entity string

	// Text is the full reply as displayed.
	Text string

	// Prompt is the message actually sent to the model, empty for refusals.
	Prompt string

	Sources []Source
}

// Refused reports whether the turn was answered locally without calling
// the model.
func (t *Turn) Refused() bool {
	return t.Strategy == StrategyRefusal
}

// InHistory reports whether the turn belongs to the conversation history.
// Search turns are standalone calls and refusals never reach the model.
func (t *Turn) InHistory() bool {
	return t.Strategy == StrategyContext || t.Strategy == StrategyFallback
}

// Responder answers user questions. Reply text is written to w as it
// arrives so callers can display partial output.
type Responder interface {
	Respond(ctx context.Context, req TurnRequest, w io.Writer) (*Turn, error)
}

// Session carries one conversation's history across turns. It is not safe
// for concurrent use; callers send one turn at a time.
type Session struct {
	responder Responder
	history   []Message
}

// NewSession returns a session seeded with the given history.
func NewSession(r Responder, seed []Message) *Session {
	return &Session{responder: r, history: slices.Clone(seed)}
}

// History returns a copy of the conversation history.
func (s *Session) History() []Message {
	return slices.Clone(s.history)
}

// Send answers input. History is only extended after a successful turn so
// a failed call leaves the conversation as the model last saw it.
func (s *Session) Send(ctx context.Context, input string, w io.Writer) (*Turn, error) {
	if strings.TrimSpace(input) == "" {
		return nil, Errorf(EINVALID, "question required")
	}

	turn, err := s.responder.Respond(ctx, TurnRequest{History: s.History(), Input: input}, w)
	if err != nil {
		return nil, err
	}
	if turn.InHistory() {
		s.history = append(s.history,
			Message{Role: RoleUser, Text: turn.Prompt},
			Message{Role: RoleModel, Text: turn.Text},
		)
	}
	return turn, nil
}
