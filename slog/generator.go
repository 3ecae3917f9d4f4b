package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/stratchat"
)

// Ensure LoggingGenerator implements stratchat.Generator.
var _ stratchat.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging of every model call.
type LoggingGenerator struct {
	next   stratchat.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next stratchat.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Generate(ctx context.Context, req stratchat.GenerateRequest) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"search", req.Search,
			"history", len(req.History),
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, req)
}

// GenerateStream delegates to the wrapped generator and logs the call once
// the stream ends, including streams abandoned by the caller.
func (g *LoggingGenerator) GenerateStream(ctx context.Context, req stratchat.GenerateRequest) iter.Seq2[stratchat.Chunk, error] {
	return func(yield func(stratchat.Chunk, error) bool) {
		var (
			bytes, chunks, sources int
			err                    error
		)
		defer func(begin time.Time) {
			g.logger.Info("generate stream",
				"search", req.Search,
				"history", len(req.History),
				"chunks", chunks,
				"bytes", bytes,
				"sources", sources,
				"duration", time.Since(begin),
				"err", err,
			)
		}(time.Now())

		for chunk, e := range g.next.GenerateStream(ctx, req) {
			if e != nil {
				err = e
			} else {
				chunks++
				bytes += len(chunk.Text)
				sources += len(chunk.Sources)
			}
			if !yield(chunk, e) {
				return
			}
		}
	}
}
