package xwl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTree(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "article",
			src:  "<article><title>Hi</title><p>Some <b>bold</b> text</p></article>",
			want: "<article><h1>Hi</h1><p>Some <b>bold</b>text</p></article>",
		},
		{
			name: "lists and sections",
			src:  "<section><ul><li>a</li><li>b</li></ul><ol><li>c</li></ol></section>",
			want: "<h2><ul><li>a</li><li>b</li></ul><ol><li>c</li></ol></h2>",
		},
		{
			name: "bold alias",
			src:  "<p><bold>x</bold></p>",
			want: "<p><b>x</b></p>",
		},
		{
			name: "image",
			src:  `<p><img src="a.png">alt</img></p>`,
			want: `<p><img src="a.png" alt="alt"/></p>`,
		},
		{
			name: "link",
			src:  `<p><a href="https://example.com">here</a></p>`,
			want: `<p><a href="https://example.com">here</a></p>`,
		},
		{
			name: "display math",
			src:  "<p><eq>x^2</eq></p>",
			want: `<p><math display="block">x^2</math></p>`,
		},
		{
			name: "inline math",
			src:  "<p><inline-equation>y</inline-equation></p>",
			want: "<p><math>y</math></p>",
		},
		{
			name: "raw code block",
			src:  "<article><!code lang=go>a < b</code></article>",
			want: `<article><div class="code-display"><pre go>a < b</pre></div></article>`,
		},
		{
			name: "inline code",
			src:  "<p><ic>x</ic></p>",
			want: `<p><span class="code-inline"><code text>x</code></span></p>`,
		},
		{
			name: "mermaid",
			src:  "<article><!mermaid>graph TD; A-->B</mermaid></article>",
			want: `<article><pre class="mermaid">graph TD; A-->B</pre></article>`,
		},
		{
			name: "markdown",
			src:  "<article><!md># Title</md></article>",
			want: "<article><h1>Title</h1>\n</article>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, _ := fakeExternals()
			got, err := RenderTree(tt.src, ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTree_CodeThemes(t *testing.T) {
	ext, h := fakeExternals()

	_, err := RenderTree("<p><code>x</code></p>", ext)
	require.NoError(t, err)
	assert.Equal(t, HighlightOptions{Language: "text", Theme: "onedark", Inline: false}, h.last)

	_, err = RenderTree("<p><icode lang=go theme=dracula>x</icode></p>", ext)
	require.NoError(t, err)
	assert.Equal(t, HighlightOptions{Language: "go", Theme: "dracula", Inline: true}, h.last)

	_, err = RenderTree("<p><inline-code>x</inline-code></p>", ext)
	require.NoError(t, err)
	assert.Equal(t, "github", h.last.Theme)
}

func TestRenderTree_Errors(t *testing.T) {
	ext, _ := fakeExternals()

	_, err := RenderTree("<article><bogus>x</bogus></article>", ext)
	var ute *UnknownTagError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "bogus", ute.Tag)

	_, err = RenderTree("<p><img>alt</img></p>", ext)
	var mae *MissingAttributeError
	require.True(t, errors.As(err, &mae))
	assert.Equal(t, "img", mae.Tag)
	assert.Equal(t, "src", mae.Attr)

	_, err = RenderTree("<p><a>x</a></p>", ext)
	require.True(t, errors.As(err, &mae))
	assert.Equal(t, "href", mae.Attr)

	_, err = RenderTree("<p><eq>bad</eq></p>", ext)
	var ce *ConverterError
	require.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, errBadSource))

	_, err = RenderTree("not a tree", ext)
	assert.True(t, errors.Is(err, ErrNoRootTag))
}

func TestRenderTree_MissingRenderer(t *testing.T) {
	_, err := RenderTree("<p><eq>x</eq></p>", Externals{})
	assert.True(t, errors.Is(err, ErrNoRenderer))

	_, err = RenderTree("<p><c>x</c></p>", Externals{})
	assert.True(t, errors.Is(err, ErrNoRenderer))
}

func TestTreeRenderer_Render(t *testing.T) {
	ext, _ := fakeExternals()
	root := NewTag("p", nil, NewText("a"), NewTag("b", nil, NewText("c")))

	got, err := NewTreeRenderer(ext).Render(root)
	require.NoError(t, err)
	assert.Equal(t, "<p>a<b>c</b></p>", got)

	_, err = NewTreeRenderer(ext).Render(&Node{})
	assert.Error(t, err)
}
