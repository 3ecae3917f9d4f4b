package gemini

import (
	"context"

	"github.com/fwojciec/stratchat"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ stratchat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally with the Gemini tokenizer, without an
// API call.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model. An empty model selects
// DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, stratchat.WrapError(stratchat.ECONFIG, err, "no local tokenizer for model %q", model)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens in text as a single user message.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
