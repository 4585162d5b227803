package htmlfmt

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "nesting",
			src:  `<div><p>a <b>b</b></p><img src="a"></div>`,
			want: "<div>\n  <p>\n    a <b>b</b>\n  </p>\n  <img src=\"a\">\n</div>\n",
		},
		{
			name: "inline elements stay on the line",
			src:  "<p>foo<b>bar</b>baz</p>",
			want: "<p>\n  foo<b>bar</b>baz\n</p>\n",
		},
		{
			name: "space between inline elements is kept",
			src:  "<p><b>a</b> <i>b</i></p>",
			want: "<p>\n  <b>a</b> <i>b</i>\n</p>\n",
		},
		{
			name: "highlighted inline code",
			src:  `<p>call <code class="chroma"><span class="n">fmt</span><span class="o">.</span><span class="n">Println</span></code></p>`,
			want: "<p>\n  call <code class=\"chroma\"><span class=\"n\">fmt</span><span class=\"o\">.</span><span class=\"n\">Println</span></code>\n</p>\n",
		},
		{
			name: "whitespace in text is collapsed",
			src:  "<p>one\n   two\tthree</p>",
			want: "<p>\n  one two three\n</p>\n",
		},
		{
			name: "preformatted content is kept",
			src:  "<div><pre>x\n  <b>y</b></pre></div>",
			want: "<div>\n  <pre>x\n  <b>y</b></pre>\n</div>\n",
		},
		{
			name: "entities are not changed",
			src:  "<p>a &lt; b</p>",
			want: "<p>\n  a &lt; b\n</p>\n",
		},
		{
			name: "self closing and comments",
			src:  "<p><br/><!-- c --></p>",
			want: "<p>\n  <br/><!-- c -->\n</p>\n",
		},
		{
			name: "whitespace only text is dropped",
			src:  "<ul>\n   <li>x</li>\n</ul>",
			want: "<ul>\n  <li>\n    x\n  </li>\n</ul>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// textContent returns the text that a browser displays for a fragment
// outside preformatted elements, with whitespace collapsed.
func textContent(t *testing.T, src string) string {
	t.Helper()
	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			require.Equal(t, io.EOF, z.Err())
			return strings.Join(strings.Fields(b.String()), " ")
		}
		if tt == html.TextToken {
			b.Write(z.Text())
		}
	}
}

func TestFormat_KeepsDisplayedText(t *testing.T) {
	sources := []string{
		"<p>foo<b>bar</b>baz</p>",
		"<div>\n<p>Some <em>very</em> <a href=\"x\">linked</a> text.</p>\n<ul>\n<li>one</li>\n<li>t<i>w</i>o</li>\n</ul>\n</div>",
		`<span class="code-inline"><code class="chroma"><span class="n">fmt</span><span class="o">.</span><span class="n">Println</span></code></span>`,
	}
	for _, src := range sources {
		got, err := Format(src)
		require.NoError(t, err)
		assert.Equal(t, textContent(t, src), textContent(t, got), "source %q", src)
	}
	assert.Equal(t, "foobarbaz", textContent(t, "<p>\n  foo<b>bar</b>baz\n</p>\n"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestFprint_ReaderError(t *testing.T) {
	var b strings.Builder
	err := Fprint(&b, failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
