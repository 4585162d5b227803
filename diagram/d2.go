package diagram

import (
	"context"

	"github.com/hesusruiz/xwl/xwl"
	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// D2 renders D2 diagrams with the embedded D2 processor, without any external tool.
type D2 struct {
	ThemeID int64
}

var _ xwl.DiagramRenderer = (*D2)(nil)

// NewD2 returns a D2 renderer using the neutral default theme.
func NewD2() *D2 {
	return &D2{ThemeID: d2themescatalog.NeutralDefault.ID}
}

// RenderDiagram compiles src and renders it to SVG.
func (d *D2) RenderDiagram(src string) (string, error) {
	return d.RenderDiagramContext(context.Background(), src)
}

// RenderDiagramContext is like RenderDiagram with a context for the layout engine.
func (d *D2) RenderDiagramContext(ctx context.Context, src string) (string, error) {
	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return "", err
	}

	defaultLayout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(ctx, src, &d2lib.CompileOptions{
		Layout: defaultLayout,
		Ruler:  ruler,
	})
	if err != nil {
		return "", err
	}

	body, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d.ThemeID,
	})
	if err != nil {
		return "", err
	}
	return wrap(body), nil
}
