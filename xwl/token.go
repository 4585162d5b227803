package xwl

import (
	"bytes"
	"strconv"
)

// An EventType is the type of an Event.
type EventType uint32

const (
	// ErrorEvent means that an error occurred during tokenization.
	ErrorEvent EventType = iota
	// A StartTagEvent looks like <a>.
	StartTagEvent
	// An EndTagEvent looks like </a>.
	EndTagEvent
	// An EmptyElementTagEvent looks like <draft/>.
	EmptyElementTagEvent
	// CharactersEvent means character data between tags.
	CharactersEvent
	// A CDataEvent looks like <![CDATA[x]]>.
	CDataEvent
	// A CommentEvent looks like <!--x-->.
	CommentEvent
)

// String returns a string representation of the EventType.
func (t EventType) String() string {
	switch t {
	case ErrorEvent:
		return "Error"
	case StartTagEvent:
		return "StartTag"
	case EndTagEvent:
		return "EndTag"
	case EmptyElementTagEvent:
		return "EmptyElementTag"
	case CharactersEvent:
		return "Characters"
	case CDataEvent:
		return "CData"
	case CommentEvent:
		return "Comment"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// An Attribute is an attribute key-value pair. Val is kept exactly as written
// between the quotes, there is no escape processing.
type Attribute struct {
	Key string
	Val string
}

// Attributes holds the attributes of a tag in source order. Keys are unique.
type Attributes []Attribute

// Get returns the value of the attribute with the given key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Lookup returns the value of the attribute or def when absent or empty.
func (a Attributes) Lookup(key string, def string) string {
	if v, ok := a.Get(key); ok && len(v) > 0 {
		return v
	}
	return def
}

// Set adds an attribute, replacing the value of an existing one with the same key.
func (a *Attributes) Set(key string, val string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Val = val
			return
		}
	}
	*a = append(*a, Attribute{Key: key, Val: val})
}

// String renders the attributes as ` key="val"` pairs, in source order.
func (a Attributes) String() string {
	var buf bytes.Buffer
	for _, attr := range a {
		buf.WriteByte(' ')
		buf.WriteString(attr.Key)
		buf.WriteString(`="`)
		buf.WriteString(attr.Val)
		buf.WriteByte('"')
	}
	return buf.String()
}

// An Event is one structural element of an XWL document. Name and Attr are set
// for tag events, Data holds the text of character, CDATA and comment events.
type Event struct {
	Type EventType
	Name string
	Attr Attributes
	Data string
}

// String returns a string representation of the Event, in source syntax.
func (e Event) String() string {
	switch e.Type {
	case ErrorEvent:
		return ""
	case StartTagEvent:
		return "<" + e.Name + e.Attr.String() + ">"
	case EndTagEvent:
		return "</" + e.Name + e.Attr.String() + ">"
	case EmptyElementTagEvent:
		return "<" + e.Name + e.Attr.String() + "/>"
	case CharactersEvent:
		return e.Data
	case CDataEvent:
		return "<![CDATA[" + e.Data + "]]>"
	case CommentEvent:
		return "<!--" + e.Data + "-->"
	}
	return "Invalid(" + strconv.Itoa(int(e.Type)) + ")"
}
