package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/stratchat"
)

// Ensure LoggingResponder implements stratchat.Responder.
var _ stratchat.Responder = (*LoggingResponder)(nil)

// LoggingResponder wraps a Responder with one log line per answered turn.
type LoggingResponder struct {
	next   stratchat.Responder
	logger *slog.Logger
}

// NewLoggingResponder creates a new LoggingResponder.
func NewLoggingResponder(next stratchat.Responder, logger *slog.Logger) *LoggingResponder {
	return &LoggingResponder{next: next, logger: logger}
}

// Respond delegates to the wrapped responder and logs the turn.
func (r *LoggingResponder) Respond(ctx context.Context, req stratchat.TurnRequest, w io.Writer) (turn *stratchat.Turn, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"history", len(req.History),
			"duration", time.Since(begin),
		}
		if turn != nil {
			attrs = append(attrs,
				"intent", turn.Intent,
				"strategy", turn.Strategy,
				"refused", turn.Refused(),
				"bytes", len(turn.Text),
			)
		}
		if err != nil {
			attrs = append(attrs, "code", stratchat.ErrorCode(err), "err", err)
			r.logger.Error("turn", attrs...)
			return
		}
		r.logger.Info("turn", attrs...)
	}(time.Now())
	return r.next.Respond(ctx, req, w)
}
