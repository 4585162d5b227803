// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit queues many replacements over a byte slice and applies them
// with a single allocation, on top of rsc.io/edit.
//
// All the positions refer to the original data: replacement text is never
// searched again, so a value may contain a placeholder without being expanded.
package sliceedit

import (
	"bytes"
	"fmt"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  *edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{
		ed:  edit.NewBuffer(buf),
		buf: buf,
	}
}

// FindAll returns the offsets of all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}
	if len(item) == 0 {
		return found
	}

	realOffset := 0
	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// ReplaceAllString replaces every instance of old with new and returns how many were found.
func (b *Buffer) ReplaceAllString(old string, new string) int {
	hits := FindAll(b.buf, old)
	for _, hit := range hits {
		b.ed.Replace(hit, hit+len(old), new)
	}
	return len(hits)
}

// ReplacePairs queues ReplaceAllString for each old, new pair.
// The old strings must not overlap in the data, or Bytes will panic.
func (b *Buffer) ReplacePairs(oldnew ...string) error {
	if len(oldnew)%2 == 1 {
		return fmt.Errorf("sliceedit: odd argument count %d", len(oldnew))
	}
	for i := 0; i < len(oldnew); i += 2 {
		b.ReplaceAllString(oldnew[i], oldnew[i+1])
	}
	return nil
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return string(b.ed.Bytes())
}
