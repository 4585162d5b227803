package xwl

import (
	"io"
	"strings"
)

// Tokenizer returns a stream of XWL events for a source text.
// The stream is pulled with Next and can not be restarted.
type Tokenizer struct {
	src string
	pos int

	// Row and column of the next byte to read, for error messages only
	row int
	col int

	trimIndent bool

	// Sticky error, returned by every call to Next once set
	err error
}

// NewTokenizer returns a Tokenizer for src with indentation trimming enabled.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{
		src:        src,
		row:        1,
		col:        1,
		trimIndent: true,
	}
}

// SetTrimIndent enables or disables the removal of indentation in character data.
func (z *Tokenizer) SetTrimIndent(trim bool) {
	z.trimIndent = trim
}

// Tokenize returns all the events in src.
func Tokenize(src string) ([]Event, error) {
	z := NewTokenizer(src)
	events := []Event{}
	for {
		ev, err := z.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

// Next returns the next event. It returns io.EOF when the input is exhausted.
func (z *Tokenizer) Next() (Event, error) {
	if z.err != nil {
		return Event{}, z.err
	}

	for {
		z.skipWhiteSpace()
		if z.atEOF() {
			z.err = io.EOF
			return Event{}, z.err
		}

		ev, ok, err := z.readEvent()
		if err != nil {
			z.err = err
			return Event{}, err
		}

		// Character data which is empty after trimming does not produce an event
		if ok {
			return ev, nil
		}
	}
}

func (z *Tokenizer) readEvent() (Event, bool, error) {

	// Comment
	if z.consume("<!--") {
		comment, err := z.consumeUntil("-->")
		if err != nil {
			return Event{}, false, err
		}
		z.consume("-->")
		return Event{Type: CommentEvent, Data: comment}, true, nil
	}

	// CDATA section, keeping its content verbatim except for one leading and one trailing newline
	if z.consume("<![CDATA[") {
		data, err := z.consumeUntil("]]>")
		if err != nil {
			return Event{}, false, err
		}
		z.consume("]]>")
		data = strings.TrimPrefix(data, "\n")
		data = strings.TrimSuffix(data, "\n")
		return Event{Type: CDataEvent, Data: data}, true, nil
	}

	// End tag
	if z.consume("</") {
		name, attrs, err := z.readTagBody()
		if err != nil {
			return Event{}, false, err
		}
		if z.consume(">") {
			return Event{Type: EndTagEvent, Name: name, Attr: attrs}, true, nil
		}
		return Event{}, false, z.syntaxError("failed to parse end-tag", nil)
	}

	// Start tag or empty-element tag
	if z.consume("<") {
		name, attrs, err := z.readTagBody()
		if err != nil {
			return Event{}, false, err
		}
		if z.consume("/>") {
			return Event{Type: EmptyElementTagEvent, Name: name, Attr: attrs}, true, nil
		}
		if z.consume(">") {
			return Event{Type: StartTagEvent, Name: name, Attr: attrs}, true, nil
		}
		return Event{}, false, z.syntaxError("failed to parse start-tag or empty-element tag", nil)
	}

	// Character data up to the next tag or the end of the input
	chars := strings.TrimSpace(z.consumeUntilOrEOF("<"))
	if z.trimIndent {
		chars = trimIndent(chars)
	}
	if len(chars) == 0 {
		return Event{}, false, nil
	}
	return Event{Type: CharactersEvent, Data: chars}, true, nil
}

// readTagBody reads the name and the attributes of a tag, leaving the
// tokenizer at the closing delimiter.
func (z *Tokenizer) readTagBody() (string, Attributes, error) {
	if err := z.skipSpaceOrTab(); err != nil {
		return "", nil, err
	}
	name, err := z.consumeName()
	if err != nil {
		return "", nil, err
	}
	if len(name) == 0 {
		return "", nil, z.syntaxError("failed to parse name of tag", nil)
	}
	if err := z.skipSpaceOrTab(); err != nil {
		return "", nil, err
	}
	attrs, err := z.consumeAttributes()
	if err != nil {
		return "", nil, err
	}
	if err := z.skipSpaceOrTab(); err != nil {
		return "", nil, err
	}
	return name, attrs, nil
}

// consumeAttributes reads key="value" pairs until something else is found.
func (z *Tokenizer) consumeAttributes() (Attributes, error) {
	attrs := Attributes{}
	for {
		key, err := z.consumeName()
		if err != nil {
			return nil, err
		}
		if len(key) == 0 {
			return attrs, nil
		}
		if !z.consume("=") {
			return attrs, nil
		}
		if !z.consume(`"`) {
			return attrs, nil
		}
		val, err := z.consumeUntil(`"`)
		if err != nil {
			return nil, err
		}
		z.consume(`"`)
		attrs.Set(key, val)

		if err := z.skipSpaceOrTab(); err != nil {
			return nil, err
		}
	}
}

// consumeName reads an identifier made only of ASCII letters.
// An empty name means that the next byte is not a letter.
func (z *Tokenizer) consumeName() (string, error) {
	start := z.pos
	for {
		c, err := z.getc()
		if err != nil {
			return "", err
		}
		if !isIdentChar(c) {
			return z.src[start:z.pos], nil
		}
		z.increment()
	}
}

// consume advances past sub if the input continues with it.
func (z *Tokenizer) consume(sub string) bool {
	if !strings.HasPrefix(z.src[z.pos:], sub) {
		return false
	}
	for i := 0; i < len(sub); i++ {
		z.increment()
	}
	return true
}

// consumeUntil returns the text up to sub, leaving sub unconsumed.
// It fails if sub does not appear in the rest of the input.
func (z *Tokenizer) consumeUntil(sub string) (string, error) {
	i := strings.Index(z.src[z.pos:], sub)
	if i == -1 {
		z.advance(len(z.src) - z.pos)
		return "", z.syntaxError("looking for '"+sub+"'", ErrUnexpectedEOF)
	}
	start := z.pos
	z.advance(i)
	return z.src[start:z.pos], nil
}

// consumeUntilOrEOF is like consumeUntil but stops at the end of the input.
func (z *Tokenizer) consumeUntilOrEOF(sub string) string {
	i := strings.Index(z.src[z.pos:], sub)
	if i == -1 {
		i = len(z.src) - z.pos
	}
	start := z.pos
	z.advance(i)
	return z.src[start:z.pos]
}

func (z *Tokenizer) skipSpaceOrTab() error {
	for {
		c, err := z.getc()
		if err != nil {
			return err
		}
		if !isSpaceOrTab(c) {
			return nil
		}
		z.increment()
	}
}

func (z *Tokenizer) skipWhiteSpace() {
	for !z.atEOF() {
		switch z.src[z.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			z.increment()
		default:
			return
		}
	}
}

func (z *Tokenizer) atEOF() bool {
	return z.pos >= len(z.src)
}

// getc returns the next byte without consuming it.
func (z *Tokenizer) getc() (byte, error) {
	if z.atEOF() {
		return 0, z.syntaxError("reading past the end", ErrUnexpectedEOF)
	}
	return z.src[z.pos], nil
}

func (z *Tokenizer) increment() {
	if z.src[z.pos] == '\n' {
		z.row++
		z.col = 0
	}
	z.col++
	z.pos++
}

func (z *Tokenizer) advance(n int) {
	for i := 0; i < n; i++ {
		z.increment()
	}
}

func (z *Tokenizer) syntaxError(msg string, err error) error {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &SyntaxError{Line: z.row, Column: z.col, Msg: msg, Err: err}
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func isIdentChar(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// trimIndent removes the horizontal whitespace that follows each newline.
// Runs of blank lines collapse into a single newline.
func trimIndent(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	isIndent := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\n':
			if !isIndent {
				b.WriteByte(c)
				isIndent = true
			}
		case isSpaceOrTab(c):
			if !isIndent {
				b.WriteByte(c)
			}
		default:
			isIndent = false
			b.WriteByte(c)
		}
	}
	return b.String()
}
