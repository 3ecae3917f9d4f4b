package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/stratchat"
)

var _ stratchat.Generator = (*Generator)(nil)

// Generator is a mock implementation of stratchat.Generator.
type Generator struct {
	GenerateFn       func(ctx context.Context, req stratchat.GenerateRequest) (string, error)
	GenerateStreamFn func(ctx context.Context, req stratchat.GenerateRequest) iter.Seq2[stratchat.Chunk, error]
}

func (g *Generator) Generate(ctx context.Context, req stratchat.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}

func (g *Generator) GenerateStream(ctx context.Context, req stratchat.GenerateRequest) iter.Seq2[stratchat.Chunk, error] {
	return g.GenerateStreamFn(ctx, req)
}

// Stream returns a sequence yielding one chunk per text followed by err,
// if err is not nil.
func Stream(err error, texts ...string) iter.Seq2[stratchat.Chunk, error] {
	return func(yield func(stratchat.Chunk, error) bool) {
		for _, text := range texts {
			if !yield(stratchat.Chunk{Text: text}, nil) {
				return
			}
		}
		if err != nil {
			yield(stratchat.Chunk{}, err)
		}
	}
}
