package xwl

import "bytes"

// ByteRenderer accumulates output fragments.
type ByteRenderer struct {
	buf bytes.Buffer
}

// Render appends each of its arguments.
func (br *ByteRenderer) Render(args ...string) {
	for _, arg := range args {
		br.buf.WriteString(arg)
	}
}

// Len returns the number of accumulated bytes.
func (br *ByteRenderer) Len() int {
	return br.buf.Len()
}

func (br *ByteRenderer) String() string {
	return br.buf.String()
}
