package mock

import (
	"context"
	"io"

	"github.com/fwojciec/stratchat"
)

var _ stratchat.Responder = (*Responder)(nil)

// Responder is a mock implementation of stratchat.Responder.
type Responder struct {
	RespondFn func(ctx context.Context, req stratchat.TurnRequest, w io.Writer) (*stratchat.Turn, error)
}

func (r *Responder) Respond(ctx context.Context, req stratchat.TurnRequest, w io.Writer) (*stratchat.Turn, error) {
	return r.RespondFn(ctx, req, w)
}
