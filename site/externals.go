package site

import (
	"fmt"

	"github.com/hesusruiz/xwl/diagram"
	"github.com/hesusruiz/xwl/highlight"
	"github.com/hesusruiz/xwl/katex"
	"github.com/hesusruiz/xwl/xwl"
	"go.uber.org/zap"
)

// NewExternals builds the renderers selected by the configuration.
// Every renderer is safe for concurrent use by the build workers.
func NewExternals(c Config, log *zap.SugaredLogger) (xwl.Externals, error) {
	var d xwl.DiagramRenderer
	switch c.Diagram {
	case DiagramMermaid:
		d = diagram.NewMermaid(c.MermaidCommand)
	case DiagramD2:
		d = diagram.NewD2()
	case DiagramKroki:
		d = diagram.NewKroki(c.KrokiURL, c.DiagramType)
	default:
		return xwl.Externals{}, fmt.Errorf("unknown diagram renderer %q", c.Diagram)
	}

	if len(c.DiagramCache) > 0 {
		d = &diagram.Cache{Renderer: d, Dir: c.DiagramCache, Prefix: c.Diagram, Log: log}
	}

	return xwl.Externals{
		Math:        katex.New(c.KatexCommand),
		Diagram:     d,
		Highlighter: highlight.New(),
	}, nil
}
