package xwl

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer_SingleEvent(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Event
	}{
		{
			name: "start tag",
			src:  "<start>",
			want: Event{Type: StartTagEvent, Name: "start", Attr: Attributes{}},
		},
		{
			name: "start tag with trailing blanks",
			src:  "<start   >",
			want: Event{Type: StartTagEvent, Name: "start", Attr: Attributes{}},
		},
		{
			name: "end tag",
			src:  "</end  >",
			want: Event{Type: EndTagEvent, Name: "end", Attr: Attributes{}},
		},
		{
			name: "empty element",
			src:  "<empty   />",
			want: Event{Type: EmptyElementTagEvent, Name: "empty", Attr: Attributes{}},
		},
		{
			name: "attribute",
			src:  `<start day="1">`,
			want: Event{Type: StartTagEvent, Name: "start", Attr: Attributes{{Key: "day", Val: "1"}}},
		},
		{
			name: "characters",
			src:  "text",
			want: Event{Type: CharactersEvent, Data: "text"},
		},
		{
			name: "cdata",
			src:  "<![CDATA[\n<xml>I can write xml like this</xml>\n]]>",
			want: Event{Type: CDataEvent, Data: "<xml>I can write xml like this</xml>"},
		},
		{
			name: "cdata keeps inner newlines",
			src:  "<![CDATA[\n\nX\n\n]]>",
			want: Event{Type: CDataEvent, Data: "\nX\n"},
		},
		{
			name: "comment",
			src:  "<!-- a note -->",
			want: Event{Type: CommentEvent, Data: " a note "},
		},
		{
			name: "leading whitespace is skipped",
			src:  "\n\t  <p>",
			want: Event{Type: StartTagEvent, Name: "p", Attr: Attributes{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := NewTokenizer(tt.src).Next()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestTokenizer_SelfClosingAttributes(t *testing.T) {
	ev, err := NewTokenizer(`<img src="img_girl.jpg" alt="Girl in a jacket"/>`).Next()
	require.NoError(t, err)

	assert.Equal(t, EmptyElementTagEvent, ev.Type)
	assert.Equal(t, "img", ev.Name)
	assert.Len(t, ev.Attr, 2)

	src, ok := ev.Attr.Get("src")
	assert.True(t, ok)
	assert.Equal(t, "img_girl.jpg", src)

	alt, ok := ev.Attr.Get("alt")
	assert.True(t, ok)
	assert.Equal(t, "Girl in a jacket", alt)
}

func TestTokenizer_Stream(t *testing.T) {
	z := NewTokenizer("<text>\nhello\n</text>")

	ev, err := z.Next()
	require.NoError(t, err)
	assert.Equal(t, Event{Type: StartTagEvent, Name: "text", Attr: Attributes{}}, ev)

	ev, err = z.Next()
	require.NoError(t, err)
	assert.Equal(t, Event{Type: CharactersEvent, Data: "hello"}, ev)

	ev, err = z.Next()
	require.NoError(t, err)
	assert.Equal(t, Event{Type: EndTagEvent, Name: "text", Attr: Attributes{}}, ev)

	_, err = z.Next()
	assert.Equal(t, io.EOF, err)

	// The stream can not be restarted
	_, err = z.Next()
	assert.Equal(t, io.EOF, err)
}

func TestTokenize_Balanced(t *testing.T) {
	events, err := Tokenize("<a>x</a>")
	require.NoError(t, err)
	assert.Equal(t, []Event{
		{Type: StartTagEvent, Name: "a", Attr: Attributes{}},
		{Type: CharactersEvent, Data: "x"},
		{Type: EndTagEvent, Name: "a", Attr: Attributes{}},
	}, events)
}

func TestTokenize_IndentationTrim(t *testing.T) {
	events, err := Tokenize("<p>\n   hello\n   world\n</p>")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "hello\nworld", events[1].Data)

	z := NewTokenizer("<p>\n   hello\n   world\n</p>")
	z.SetTrimIndent(false)
	_, err = z.Next()
	require.NoError(t, err)
	ev, err := z.Next()
	require.NoError(t, err)
	assert.Equal(t, "hello\n   world", ev.Data)
}

func TestTrimIndent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "\n   hello\n   world", want: "\nhello\nworld"},
		{in: "a  b", want: "a  b"},
		{in: "a\n\t\tb", want: "a\nb"},
		{in: "a\n\n   \n b", want: "a\nb"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trimIndent(tt.in), "input %q", tt.in)
	}
}

func TestTokenize_WhitespaceOnlyCharactersAreDropped(t *testing.T) {
	events, err := Tokenize("<a>   \n\t  </a>")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		unexpEOF  bool
		wantLine  int
		wantInMsg string
	}{
		{name: "no tag name", src: "<>", wantLine: 1, wantInMsg: "name of tag"},
		{name: "bad end tag", src: "</a x", unexpEOF: true, wantLine: 1},
		{name: "missing closing bracket", src: "<a b=\"1\" !>", wantLine: 1, wantInMsg: "start-tag"},
		{name: "end tag with garbage", src: "</a !>", wantLine: 1, wantInMsg: "end-tag"},
		{name: "unterminated tag at end", src: "<abc", unexpEOF: true, wantLine: 1},
		{name: "unterminated comment", src: "<!-- open", unexpEOF: true, wantLine: 1},
		{name: "unterminated cdata", src: "<![CDATA[ open", unexpEOF: true, wantLine: 1},
		{name: "unterminated attribute", src: "<a b=\"1>", unexpEOF: true, wantLine: 1},
		{name: "error on second line", src: "<a>\n<>", wantLine: 2, wantInMsg: "name of tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)
			require.Error(t, err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantLine, se.Line)
			assert.Equal(t, tt.unexpEOF, errors.Is(err, ErrUnexpectedEOF))
			if len(tt.wantInMsg) > 0 {
				assert.Contains(t, err.Error(), tt.wantInMsg)
			}
		})
	}
}

func TestTokenize_Reconstruct(t *testing.T) {
	src := `<article><info><title>T</title><draft/></info><p class="x">body<em>text</em></p><![CDATA[a<b]]></article>`
	events, err := Tokenize(src)
	require.NoError(t, err)

	var b strings.Builder
	for _, ev := range events {
		b.WriteString(ev.String())
	}
	assert.Equal(t, src, b.String())

	again, err := Tokenize(b.String())
	require.NoError(t, err)
	assert.Equal(t, events, again)
}
