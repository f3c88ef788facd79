package io

import (
	"io"
)

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// scanInt scans a signed decimal integer, scanf-style: leading whitespace is
// skipped, an optional sign is consumed, and scanning stops at the first
// non-digit, which is left in the stream. The accumulated value wraps at 32
// bits.
func scanInt(br io.ByteScanner) (value int32, err error) {
	var ch byte
	for {
		ch, err = br.ReadByte()
		if err != nil {
			err = io.EOF
			return
		}
		if !isSpace(ch) {
			break
		}
	}

	negative := false
	if ch == '+' || ch == '-' {
		negative = ch == '-'
		ch, err = br.ReadByte()
		if err != nil {
			err = io.EOF
			return
		}
	}

	if ch < '0' || ch > '9' {
		br.UnreadByte()
		err = ErrMalformedInt
		return
	}

	var accum uint32
	for {
		accum = accum*10 + uint32(ch-'0')
		ch, err = br.ReadByte()
		if err != nil {
			err = nil
			break
		}
		if ch < '0' || ch > '9' {
			br.UnreadByte()
			break
		}
	}

	value = int32(accum)
	if negative {
		value = -value
	}

	return
}
