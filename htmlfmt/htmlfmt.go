// Package htmlfmt pretty-prints HTML fragments, putting block elements on their own lines.
//
// Phrasing elements (b, em, a, code, span, ...) and the text around them stay on the
// line of their block, and the content of preformatted elements (pre, textarea, script,
// style) is written verbatim, so the rendered text does not change.
package htmlfmt

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Indent is written once per nesting level.
const Indent = "  "

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// Phrasing elements never start a line of their own.
var inlineElements = map[atom.Atom]bool{
	atom.A:      true,
	atom.Abbr:   true,
	atom.B:      true,
	atom.Bdi:    true,
	atom.Bdo:    true,
	atom.Br:     true,
	atom.Cite:   true,
	atom.Code:   true,
	atom.Data:   true,
	atom.Del:    true,
	atom.Dfn:    true,
	atom.Em:     true,
	atom.I:      true,
	atom.Img:    true,
	atom.Ins:    true,
	atom.Kbd:    true,
	atom.Label:  true,
	atom.Mark:   true,
	atom.Math:   true,
	atom.Q:      true,
	atom.S:      true,
	atom.Samp:   true,
	atom.Small:  true,
	atom.Span:   true,
	atom.Strong: true,
	atom.Sub:    true,
	atom.Sup:    true,
	atom.Time:   true,
	atom.U:      true,
	atom.Var:    true,
	atom.Wbr:    true,
}

var preformatted = map[atom.Atom]bool{
	atom.Pre:      true,
	atom.Textarea: true,
	atom.Script:   true,
	atom.Style:    true,
}

// Format returns src pretty-printed.
func Format(src string) (string, error) {
	var b strings.Builder
	if err := Fprint(&b, strings.NewReader(src)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Fprint reads HTML from r and writes it pretty-printed to w.
// Tags and text are written as they appear in the source. Only whitespace
// between block elements is changed, and runs of whitespace in text are
// collapsed to a single space.
func Fprint(w io.Writer, r io.Reader) error {
	z := html.NewTokenizer(r)
	bw := bufio.NewWriter(w)

	depth := 0
	// Nesting of preformatted elements, written without any change
	verbatim := 0
	// Inline content of the current line
	var run strings.Builder

	line := func(s string) {
		bw.WriteString(strings.Repeat(Indent, depth))
		bw.WriteString(s)
		bw.WriteByte('\n')
	}
	// The edges of a run touch block boundaries, where whitespace is not displayed
	flush := func() {
		if s := strings.TrimSpace(run.String()); len(s) > 0 {
			line(s)
		}
		run.Reset()
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				flush()
				return bw.Flush()
			}
			return z.Err()
		}

		// Copy the raw token, the tokenizer may unescape its buffer in place
		raw := string(z.Raw())

		if verbatim > 0 {
			bw.WriteString(raw)
			switch tt {
			case html.StartTagToken:
				if preformatted[tagAtom(z)] {
					verbatim++
				}
			case html.EndTagToken:
				if preformatted[tagAtom(z)] {
					verbatim--
					if verbatim == 0 {
						bw.WriteByte('\n')
					}
				}
			}
			continue
		}

		switch tt {
		case html.StartTagToken:
			a := tagAtom(z)
			if inlineElements[a] {
				run.WriteString(raw)
				continue
			}
			flush()
			if preformatted[a] {
				bw.WriteString(strings.Repeat(Indent, depth))
				bw.WriteString(raw)
				verbatim = 1
				continue
			}
			line(raw)
			if !voidElements[a] {
				depth++
			}

		case html.EndTagToken:
			if inlineElements[tagAtom(z)] {
				run.WriteString(raw)
				continue
			}
			flush()
			if depth > 0 {
				depth--
			}
			line(raw)

		case html.SelfClosingTagToken:
			if inlineElements[tagAtom(z)] {
				run.WriteString(raw)
				continue
			}
			flush()
			line(raw)

		case html.CommentToken:
			if run.Len() > 0 {
				run.WriteString(raw)
				continue
			}
			line(raw)

		case html.DoctypeToken:
			flush()
			line(raw)

		case html.TextToken:
			run.WriteString(collapseSpace(raw))
		}
	}
}

// collapseSpace replaces every run of whitespace with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(c)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

func tagAtom(z *html.Tokenizer) atom.Atom {
	name, _ := z.TagName()
	return atom.Lookup(name)
}
