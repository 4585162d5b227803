// Package highlight renders source code to HTML with chroma.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/hesusruiz/xwl/xwl"
)

// DefaultTheme is used when the options do not name a theme.
const DefaultTheme = "monokai"

// Chroma implements xwl.Highlighter.
// Block code is wrapped in a <pre> element and inline code in a <code> element,
// both with the style inlined in the markup.
type Chroma struct {
	// TabWidth replaces tabs in the output. Zero keeps the chroma default.
	TabWidth int
}

var _ xwl.Highlighter = (*Chroma)(nil)

// New returns a highlighter with the chroma defaults.
func New() *Chroma {
	return &Chroma{}
}

// Highlight formats src. An unknown language is rendered as plain text.
func (c *Chroma) Highlight(src string, opts xwl.HighlightOptions) (string, error) {

	// Determine lexer
	l := lexers.Get(strings.TrimSpace(opts.Language))
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	theme := opts.Theme
	if len(theme) == 0 {
		theme = DefaultTheme
	}
	// styles.Get never returns nil, unknown names get the fallback style
	s := styles.Get(theme)

	formatterOpts := []hlhtml.Option{hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(opts.Inline)}
	if c.TabWidth > 0 {
		formatterOpts = append(formatterOpts, hlhtml.TabWidth(c.TabWidth))
	}
	f := hlhtml.New(formatterOpts...)

	it, err := l.Tokenise(nil, src)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if opts.Inline {
		buf.WriteString(`<code class="chroma">`)
	}
	if err := f.Format(&buf, s, it); err != nil {
		return "", err
	}
	if opts.Inline {
		buf.WriteString(`</code>`)
	}
	return buf.String(), nil
}
