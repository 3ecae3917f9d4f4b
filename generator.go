package stratchat

import (
	"context"
	"iter"
)

// Role identifies the author of a conversation message.
type Role string

// Role constants match the hosted model's role names.
const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of conversation history.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// GenerateRequest describes a single generation call.
type GenerateRequest struct {
	SystemInstruction string
	History           []Message
	Prompt            string

	// Search enables the web search tool for grounding.
	Search bool
}

// Source is a grounding citation returned with search-backed answers.
// Sources are kept on the turn but not rendered to the end user.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Chunk is an incremental piece of a streamed generation.
type Chunk struct {
	Text    string
	Sources []Source
}

// Generator calls the hosted language model.
type Generator interface {
	// Generate returns the complete reply for req.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// GenerateStream yields reply chunks in arrival order. Iteration stops
	// at the first error.
	GenerateStream(ctx context.Context, req GenerateRequest) iter.Seq2[Chunk, error]
}
