// Package glamour renders Markdown answers for the terminal.
package glamour

import (
	"github.com/charmbracelet/glamour"
	"github.com/fwojciec/stratchat"
)

// DefaultWordWrap is the column answers are wrapped at.
const DefaultWordWrap = 80

// Ensure Renderer implements stratchat.Renderer.
var _ stratchat.Renderer = (*Renderer)(nil)

// Renderer renders Markdown with glamour.
type Renderer struct {
	term *glamour.TermRenderer
}

// NewRenderer creates a Renderer. An empty style selects the style from the
// terminal background.
func NewRenderer(style string, wordWrap int) (*Renderer, error) {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wordWrap)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, stratchat.WrapError(stratchat.ECONFIG, err, "invalid render style %q", style)
	}
	return &Renderer{term: term}, nil
}

// Render converts markdown to styled terminal text.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.term.Render(markdown)
}
