package xwl

// MathRenderer converts TeX source into a markup fragment.
type MathRenderer interface {
	RenderMath(src string, display bool) (string, error)
}

// DiagramRenderer converts a diagram description into a markup fragment.
type DiagramRenderer interface {
	RenderDiagram(src string) (string, error)
}

// HighlightOptions select how source code is highlighted.
type HighlightOptions struct {
	Language string
	Theme    string
	Inline   bool
}

// Highlighter converts source code into highlighted markup.
// An unknown language must be rendered as plain text, not reported as an error.
type Highlighter interface {
	Highlight(src string, opts HighlightOptions) (string, error)
}

// Externals groups the renderers that the converters delegate to.
// A nil member makes the tags that need it fail with ErrNoRenderer.
type Externals struct {
	Math        MathRenderer
	Diagram     DiagramRenderer
	Highlighter Highlighter
}

func (e Externals) renderMath(tag string, src string, display bool) (string, error) {
	if e.Math == nil {
		return "", converterError(tag, src, ErrNoRenderer)
	}
	out, err := e.Math.RenderMath(src, display)
	if err != nil {
		return "", converterError(tag, src, err)
	}
	return out, nil
}

func (e Externals) renderDiagram(tag string, src string) (string, error) {
	if e.Diagram == nil {
		return "", converterError(tag, src, ErrNoRenderer)
	}
	out, err := e.Diagram.RenderDiagram(src)
	if err != nil {
		return "", converterError(tag, src, err)
	}
	return out, nil
}

func (e Externals) highlight(tag string, src string, opts HighlightOptions) (string, error) {
	if e.Highlighter == nil {
		return "", converterError(tag, src, ErrNoRenderer)
	}
	out, err := e.Highlighter.Highlight(src, opts)
	if err != nil {
		return "", converterError(tag, src, err)
	}
	return out, nil
}
