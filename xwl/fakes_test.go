package xwl

import (
	"errors"
	"fmt"
)

var errBadSource = errors.New("bad source")

type fakeMath struct{}

func (fakeMath) RenderMath(src string, display bool) (string, error) {
	if src == "bad" {
		return "", errBadSource
	}
	if display {
		return `<math display="block">` + src + `</math>`, nil
	}
	return "<math>" + src + "</math>", nil
}

type fakeDiagram struct{}

func (fakeDiagram) RenderDiagram(src string) (string, error) {
	if src == "bad" {
		return "", errBadSource
	}
	return `<div class="diagram"><svg>` + src + `</svg></div>`, nil
}

// fakeHighlighter records the options of the last call.
type fakeHighlighter struct {
	last HighlightOptions
}

func (h *fakeHighlighter) Highlight(src string, opts HighlightOptions) (string, error) {
	h.last = opts
	if opts.Inline {
		return fmt.Sprintf("<code %s>%s</code>", opts.Language, src), nil
	}
	return fmt.Sprintf("<pre %s>%s</pre>", opts.Language, src), nil
}

func fakeExternals() (Externals, *fakeHighlighter) {
	h := &fakeHighlighter{}
	return Externals{
		Math:        fakeMath{},
		Diagram:     fakeDiagram{},
		Highlighter: h,
	}, h
}
