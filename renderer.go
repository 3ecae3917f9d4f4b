package stratchat

// Renderer turns Markdown answers into display text.
type Renderer interface {
	Render(markdown string) (string, error)
}
