package xwl

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF means that the tokenizer needed more input to finish a construct.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// ErrNoRootTag means that a tree document is not enclosed by a single tag.
var ErrNoRootTag = errors.New("no enclosing root tag found")

// ErrNoRenderer is returned when a tag needs a collaborator that was not configured.
var ErrNoRenderer = errors.New("no renderer configured")

// SyntaxError reports malformed markup. Line and Column are 1-based and
// refer to the position where the tokenizer stopped.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
	Err      error
}

func (e *SyntaxError) Error() string {
	if len(e.Filename) > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// InvariantError reports a broken capture or attribute stack protocol.
// It points to a bug in a dispatch table, not to bad input.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Msg
}

// MissingAttributeError is returned when a tag lacks a required attribute.
type MissingAttributeError struct {
	Tag  string
	Attr string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("tag <%s> needs the '%s' attribute", e.Tag, e.Attr)
}

// UnknownTagError is returned by the tree renderer for tags without a rule.
type UnknownTagError struct {
	Tag string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag: %s", e.Tag)
}

// ConverterError wraps a failure of an external renderer, keeping the
// offending tag and the beginning of its source.
type ConverterError struct {
	Tag    string
	Source string
	Err    error
}

func (e *ConverterError) Error() string {
	return fmt.Sprintf("rendering <%s> %q: %v", e.Tag, e.Source, e.Err)
}

func (e *ConverterError) Unwrap() error {
	return e.Err
}

// converterError builds a ConverterError with a short excerpt of src.
func converterError(tag string, src string, err error) error {
	const maxExcerpt = 40
	if len(src) > maxExcerpt {
		src = src[:maxExcerpt] + "..."
	}
	return &ConverterError{Tag: tag, Source: src, Err: err}
}
