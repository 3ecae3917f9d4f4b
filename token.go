package stratchat

import "context"

// TokenCounter counts model tokens in text. It is used to size knowledge
// entries against the model's context window.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
