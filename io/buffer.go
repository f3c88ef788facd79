package io

import (
	"bytes"
	"io"
	"strconv"
)

// Buffer is a memory-backed console channel. Reads consume Input from the
// front; writes append to Output. Rewind restarts the input and truncates
// the output, which makes Buffer suitable for repeated runs of the same
// program.
type Buffer struct {
	Input  []byte
	Output []byte

	br *bytes.Reader
}

var _ Channel = (*Buffer)(nil)

// Rewind restarts the input and discards any collected output.
func (buf *Buffer) Rewind() {
	buf.br = nil
	buf.Output = buf.Output[:0]
}

func (buf *Buffer) reader() io.ByteScanner {
	if buf.br == nil {
		buf.br = bytes.NewReader(buf.Input)
	}
	return buf.br
}

// ReadInt scans a signed decimal integer from the buffered input.
func (buf *Buffer) ReadInt() (value int32, err error) {
	return scanInt(buf.reader())
}

// ReadByte reads a single byte from the buffered input.
func (buf *Buffer) ReadByte() (value byte, err error) {
	return buf.reader().ReadByte()
}

// WriteInt appends the decimal textual representation of value.
func (buf *Buffer) WriteInt(value int32) (err error) {
	buf.Output = strconv.AppendInt(buf.Output, int64(value), 10)
	return
}

// WriteByte appends a single raw byte.
func (buf *Buffer) WriteByte(value byte) (err error) {
	buf.Output = append(buf.Output, value)
	return
}
