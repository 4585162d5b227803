package xwl

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

// RenderFunc renders a tag from the rendered content of its children.
type RenderFunc func(r *TreeRenderer, contents string, n *Node) (string, error)

// TreeRenderer renders a tree built by Parse, children first.
type TreeRenderer struct {
	ext   Externals
	rules map[string]RenderFunc
	md    goldmark.Markdown
	log   *zap.SugaredLogger
}

// NewTreeRenderer returns a TreeRenderer using the given external renderers.
func NewTreeRenderer(ext Externals, opts ...Option) *TreeRenderer {
	o := buildOptions(opts)
	return &TreeRenderer{
		ext:   ext,
		rules: treeRules,
		md:    goldmark.New(),
		log:   o.log,
	}
}

// RenderTree parses src and renders it to HTML.
func RenderTree(src string, ext Externals, opts ...Option) (string, error) {
	root, err := Parse(src)
	if err != nil {
		return "", err
	}
	return NewTreeRenderer(ext, opts...).Render(root)
}

// Render renders n and its subtree.
func (r *TreeRenderer) Render(n *Node) (string, error) {
	if n.Type == TextNode {
		return n.Data, nil
	}
	if n.Type != TagNode {
		return "", fmt.Errorf("rendering %s", n.Type)
	}

	var br ByteRenderer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s, err := r.Render(c)
		if err != nil {
			return "", err
		}
		br.Render(s)
	}

	rule, ok := r.rules[n.Name]
	if !ok {
		r.log.Debugw("no rendering rule", "tag", n.Name)
		return "", &UnknownTagError{Tag: n.Name}
	}
	return rule(r, br.String(), n)
}

var treeRules map[string]RenderFunc

func init() {
	treeRules = map[string]RenderFunc{
		"article": wrapRule("article"),
		"title":   wrapRule("h1"),
		"section": wrapRule("h2"),
		"b":       wrapRule("b"),
		"bold":    wrapRule("b"),
		"p":       wrapRule("p"),
		"ul":      wrapRule("ul"),
		"ol":      wrapRule("ol"),
		"li":      wrapRule("li"),
		"img":     renderImg,
		"a":       renderLink,

		"eq":              mathRule(true),
		"equation":        mathRule(true),
		"ieq":             mathRule(false),
		"inline-equation": mathRule(false),

		"c":           codeRule("onedark", false, `<div class="code-display">`, `</div>`),
		"code":        codeRule("onedark", false, `<div class="code-display">`, `</div>`),
		"ic":          codeRule("github", true, `<span class="code-inline">`, `</span>`),
		"icode":       codeRule("github", true, `<span class="code-inline">`, `</span>`),
		"inline-code": codeRule("github", true, `<span class="code-inline">`, `</span>`),

		"mermaid": func(_ *TreeRenderer, contents string, _ *Node) (string, error) {
			return `<pre class="mermaid">` + contents + `</pre>`, nil
		},

		"md":       renderMarkdown,
		"markdown": renderMarkdown,
	}
}

func wrapRule(tag string) RenderFunc {
	return func(_ *TreeRenderer, contents string, _ *Node) (string, error) {
		return "<" + tag + ">" + contents + "</" + tag + ">", nil
	}
}

func renderImg(_ *TreeRenderer, contents string, n *Node) (string, error) {
	src := n.Attr.Lookup("src", "")
	if len(src) == 0 {
		return "", &MissingAttributeError{Tag: n.Name, Attr: "src"}
	}
	return fmt.Sprintf(`<img src="%s" alt="%s"/>`, src, contents), nil
}

func renderLink(_ *TreeRenderer, contents string, n *Node) (string, error) {
	href := n.Attr.Lookup("href", "")
	if len(href) == 0 {
		return "", &MissingAttributeError{Tag: n.Name, Attr: "href"}
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, contents), nil
}

func mathRule(display bool) RenderFunc {
	return func(r *TreeRenderer, contents string, n *Node) (string, error) {
		return r.ext.renderMath(n.Name, contents, display)
	}
}

func codeRule(defaultTheme string, inline bool, open string, closing string) RenderFunc {
	return func(r *TreeRenderer, contents string, n *Node) (string, error) {
		html, err := r.ext.highlight(n.Name, contents, HighlightOptions{
			Language: n.Attr.Lookup("lang", "text"),
			Theme:    n.Attr.Lookup("theme", defaultTheme),
			Inline:   inline,
		})
		if err != nil {
			return "", err
		}
		return open + html + closing, nil
	}
}

// renderMarkdown converts the content of a raw markdown tag, like <!md>...</md>.
func renderMarkdown(r *TreeRenderer, contents string, n *Node) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(contents), &buf); err != nil {
		return "", converterError(n.Name, contents, err)
	}
	return buf.String(), nil
}
