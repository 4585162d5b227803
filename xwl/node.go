package xwl

import (
	"strconv"
	"strings"
)

// A NodeType is the type of a Node.
type NodeType uint32

const (
	ErrorNode NodeType = iota
	TextNode
	TagNode
)

// String returns a string representation of the NodeType.
func (n NodeType) String() string {
	switch n {
	case ErrorNode:
		return "Error Node"
	case TextNode:
		return "Text Node"
	case TagNode:
		return "Tag Node"
	}
	return "Invalid Node (" + strconv.Itoa(int(n)) + ")"
}

// A Node is either a tag with attributes and children, or a text leaf.
// Attr is nil when the tag was written without any attribute text.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type NodeType
	Name string
	Attr Attributes
	Data string
}

// NewTag returns a detached tag node with the given children.
func NewTag(name string, attr Attributes, children ...*Node) *Node {
	n := &Node{Type: TagNode, Name: name, Attr: attr}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// NewText returns a detached text leaf.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// AppendChild adds a node child as the last child of parent.
//
// It will panic if child already has a parent or siblings.
func (parent *Node) AppendChild(child *Node) {
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		panic("AppendChild called for an already attached child Node")
	}
	last := parent.LastChild
	if last != nil {
		last.NextSibling = child
	} else {
		parent.FirstChild = child
	}
	parent.LastChild = child

	child.Parent = parent
	child.PrevSibling = last
}

// Children returns the children of n in order.
func (n *Node) Children() []*Node {
	var children []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// String returns a compact s-expression of the subtree, like
// (root "hello" (tag key="v" "world")).
func (n *Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (n *Node) writeTo(b *strings.Builder) {
	switch n.Type {
	case TextNode:
		b.WriteString(strconv.Quote(n.Data))
	case TagNode:
		b.WriteByte('(')
		b.WriteString(n.Name)
		b.WriteString(n.Attr.String())
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.WriteByte(' ')
			c.writeTo(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString(n.Type.String())
	}
}
