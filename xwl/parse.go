package xwl

import (
	"regexp"
	"strings"
)

// rawSentinel in front of a tag name disables parsing of the tag content.
const rawSentinel = '!'

var reRootOpenTag = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9_-]*)([^>]*)>`)
var reOpenTag = regexp.MustCompile(`<(!?[A-Za-z][A-Za-z0-9_-]*)([^>]*)>`)

// Parse builds the tree of a document that must be entirely enclosed by a single tag.
//
// Tags are matched with the nearest close tag of the same name, so a nested tag with
// the same name as its ancestor closes the ancestor early. Use a raw tag (<!name>)
// for content that contains markup-like text.
func Parse(src string) (*Node, error) {
	s := strings.TrimSpace(src)

	loc := reRootOpenTag.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil, &SyntaxError{Line: 1, Column: 1, Msg: ErrNoRootTag.Error(), Err: ErrNoRootTag}
	}
	name := s[loc[2]:loc[3]]
	closeTag := "</" + name + ">"

	if !strings.HasSuffix(s, closeTag) || len(s)-len(closeTag) < loc[1] {
		return nil, &SyntaxError{Line: 1, Column: 1, Msg: ErrNoRootTag.Error(), Err: ErrNoRootTag}
	}

	root := NewTag(name, parseArgs(s[loc[4]:loc[5]]))
	for _, child := range parseInner(s[loc[1] : len(s)-len(closeTag)]) {
		root.AppendChild(child)
	}
	return root, nil
}

// parseInner parses a span of sibling nodes.
// A span without tags results in a single text leaf, which may be empty.
func parseInner(input string) []*Node {
	trimmed := strings.TrimSpace(input)

	m, ok := findTagPair(trimmed)
	if !ok {
		return []*Node{NewText(trimmed)}
	}

	var parsed []*Node
	if m.start > 0 {
		parsed = append(parsed, NewText(trimmed[:m.start]))
	}

	tag := NewTag(m.name, parseArgs(m.args))
	if m.raw {
		tag.AppendChild(NewText(strings.TrimSpace(m.contents)))
	} else {
		for _, child := range parseInner(m.contents) {
			tag.AppendChild(child)
		}
	}
	parsed = append(parsed, tag)

	if m.end < len(trimmed) {
		parsed = append(parsed, parseInner(trimmed[m.end:])...)
	}
	return parsed
}

type tagPair struct {
	start, end int
	name       string
	args       string
	contents   string
	raw        bool
}

// findTagPair finds the leftmost open tag that has a close tag with the same name
// after it, and pairs it with the nearest such close tag.
func findTagPair(s string) (tagPair, bool) {
	offset := 0
	for offset < len(s) {
		loc := reOpenTag.FindStringSubmatchIndex(s[offset:])
		if loc == nil {
			return tagPair{}, false
		}
		start := offset + loc[0]
		openEnd := offset + loc[1]
		fullName := s[offset+loc[2] : offset+loc[3]]
		args := s[offset+loc[4] : offset+loc[5]]

		name := fullName
		raw := name[0] == rawSentinel
		if raw {
			name = name[1:]
		}

		if contentLen, closeLen := findCloseTag(s[openEnd:], name, raw); contentLen >= 0 {
			return tagPair{
				start:    start,
				end:      openEnd + contentLen + closeLen,
				name:     name,
				args:     args,
				contents: s[openEnd : openEnd+contentLen],
				raw:      raw,
			}, true
		}

		offset = start + 1
	}
	return tagPair{}, false
}

// findCloseTag returns the length of the content before the nearest close tag
// for name, and the length of that close tag. A raw tag may also be closed
// with the sentinel repeated, as in </!code>.
func findCloseTag(s string, name string, raw bool) (int, int) {
	closeTag := "</" + name + ">"
	i := strings.Index(s, closeTag)
	closeLen := len(closeTag)

	if raw {
		rawClose := "</" + string(rawSentinel) + name + ">"
		if j := strings.Index(s, rawClose); j >= 0 && (i == -1 || j < i) {
			i = j
			closeLen = len(rawClose)
		}
	}
	return i, closeLen
}

// parseArgs parses space separated key=value pairs, stripping one surrounding
// quote character from each value. It returns nil for an empty argument string.
func parseArgs(raw string) Attributes {
	if len(raw) == 0 {
		return nil
	}
	args := Attributes{}
	for _, kv := range strings.Split(strings.TrimSpace(raw), " ") {
		if len(kv) == 0 {
			continue
		}
		key, val, _ := strings.Cut(kv, "=")
		args.Set(key, stripQuotes(strings.TrimSpace(val)))
	}
	return args
}

// stripQuotes removes one leading and one trailing quote character, which
// do not need to be the same.
func stripQuotes(val string) string {
	if len(val) > 0 && isQuote(val[0]) {
		val = val[1:]
	}
	if len(val) > 0 && isQuote(val[len(val)-1]) {
		val = val[:len(val)-1]
	}
	return val
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}
