package mock

import "github.com/fwojciec/stratchat"

var _ stratchat.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of stratchat.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}
