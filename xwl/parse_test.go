package xwl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "single tag",
			src:  "<tag>contents</tag>",
			want: `(tag "contents")`,
		},
		{
			name: "arguments",
			src:  "<tag key1='str' key2=42>contents</tag>",
			want: `(tag key1="str" key2="42" "contents")`,
		},
		{
			name: "tag inside tag",
			src:  "<tag><tag2>contents</tag2></tag>",
			want: `(tag (tag2 "contents"))`,
		},
		{
			name: "string and tag",
			src:  "<root>hello<tag>world</tag></root>",
			want: `(root "hello" (tag "world"))`,
		},
		{
			name: "tag between strings",
			src:  "<root>\nhello<tag>world</tag>!\n</root>",
			want: `(root "hello" (tag "world") "!")`,
		},
		{
			name: "siblings and indentation",
			src: `<root>
      <header level=1>title</header>
      <header level=2><italic>abstract</italic></header>
      This is <bold>abstract</bold>.
    </root>`,
			want: `(root (header level="1" "title") (header level="2" (italic "abstract")) "This is " (bold "abstract") ".")`,
		},
		{
			name: "raw content is not parsed",
			src:  "<root><!code>a < b</code></root>",
			want: `(root (code "a < b"))`,
		},
		{
			name: "raw content keeps tags",
			src:  "<root><!code lang=html>\n  <p>x</p>\n</code></root>",
			want: `(root (code lang="html" "<p>x</p>"))`,
		},
		{
			name: "raw tag closed with sentinel",
			src:  "<root><!eq>a<b</!eq></root>",
			want: `(root (eq "a<b"))`,
		},
		{
			name: "empty tag gets an empty text leaf",
			src:  "<a></a>",
			want: `(a "")`,
		},
		{
			name: "open tag without close is text",
			src:  "<root>a <br> b</root>",
			want: `(root "a <br> b")`,
		},
		{
			name: "nested tag with the same name closes early",
			src:  "<root><b>x<b>y</b>z</b></root>",
			want: `(root (b "x<b>y") "z</b>")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_Structure(t *testing.T) {
	root, err := Parse("<root>hello<tag>world</tag></root>")
	require.NoError(t, err)

	assert.Equal(t, TagNode, root.Type)
	assert.Equal(t, "root", root.Name)
	assert.Nil(t, root.Attr)

	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, TextNode, children[0].Type)
	assert.Equal(t, "hello", children[0].Data)
	assert.Equal(t, TagNode, children[1].Type)
	assert.Equal(t, "tag", children[1].Name)
	assert.Same(t, root, children[1].Parent)

	grandChildren := children[1].Children()
	require.Len(t, grandChildren, 1)
	assert.Equal(t, "world", grandChildren[0].Data)
}

func TestParse_EmptyArgumentsAreNotNil(t *testing.T) {
	root, err := Parse("<tag >x</tag>")
	require.NoError(t, err)
	assert.NotNil(t, root.Attr)
	assert.Len(t, root.Attr, 0)
}

func TestParse_NoRootTag(t *testing.T) {
	tests := []string{
		"<a>x</a><b>y</b>",
		"hello",
		"",
		"<a>x</b>",
		"<!code>x</code>",
		"text <a>x</a>",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoRootTag))

			var se *SyntaxError
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestParseArgs(t *testing.T) {
	assert.Nil(t, parseArgs(""))
	assert.Equal(t, Attributes{{Key: "a", Val: "1"}, {Key: "b", Val: "two"}}, parseArgs(` a=1   b="two" `))
	assert.Equal(t, Attributes{{Key: "a", Val: "x"}}, parseArgs(`a='x"`))
	assert.Equal(t, Attributes{{Key: "flag", Val: ""}}, parseArgs(`flag`))
	assert.Equal(t, Attributes{{Key: "a", Val: "2"}}, parseArgs(`a=1 a=2`))
}
