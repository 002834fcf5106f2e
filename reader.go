package wetex

import (
	"encoding/binary"
	"fmt"
	"math"
)

// cursor is a bounds-checked little-endian reader over an immutable byte
// slice. It never copies the underlying slice; byte reads (take) return views
// into it, while string reads copy the bytes they return.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, c.pos, c.remaining())
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// cstring reads bytes up to and including the first 0x00, returning the
// bytes before it as a string and advancing past the null. maxLen bounds how
// many bytes are scanned before giving up with ErrUnexpectedEOF.
func (c *cursor) cstring(maxLen int) (string, error) {
	limit := c.pos + maxLen
	if limit > len(c.data) {
		limit = len(c.data)
	}
	for i := c.pos; i < limit; i++ {
		if c.data[i] == 0 {
			s := string(c.data[c.pos:i])
			c.pos = i + 1
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: no null terminator within %d bytes at offset %d", ErrUnexpectedEOF, maxLen, c.pos)
}

// lengthPrefixedString reads (len:u32, bytes:len, null:u8) and returns the
// bytes as a string, excluding the trailing null. maxLen bounds the accepted
// declared length as a safety limit against corrupt/hostile input.
func (c *cursor) lengthPrefixedString(maxLen uint32) (string, error) {
	n, err := c.u32()
	if err != nil {
		return "", err
	}
	if n > maxLen {
		return "", fmt.Errorf("%w: string length %d exceeds limit %d", ErrMalformedPayload, n, maxLen)
	}
	b, err := c.take(int(n))
	if err != nil {
		return "", err
	}
	null, err := c.u8()
	if err != nil {
		return "", err
	}
	if null != 0 {
		return "", fmt.Errorf("%w: length-prefixed string missing null terminator", ErrMalformedPayload)
	}
	return string(b), nil
}

const maxStringLen = 1 << 20
