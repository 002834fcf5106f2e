package wetex

import (
	"bytes"
	"errors"
	"testing"
)

func TestLZ4RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		bytes.Repeat([]byte("hello world "), 200),
		[]byte("no repetition here at all, just some plain text 12345"),
	}
	for i, src := range cases {
		compressed, err := compressLZ4Block(src)
		if err != nil {
			if errors.Is(err, ErrInvalidLZ4) && len(src) == 0 {
				continue
			}
			t.Fatalf("case %d: compress: %v", i, err)
		}
		got, err := decompressLZ4Block(compressed, len(src))
		if err != nil {
			t.Fatalf("case %d: decompress: %v", i, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("case %d: round trip mismatch: got %q, want %q", i, got, src)
		}
	}
}

func TestDecompressLZ4Block_LengthMismatch(t *testing.T) {
	src := bytes.Repeat([]byte("x"), 64)
	compressed, err := compressLZ4Block(src)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if _, err := decompressLZ4Block(compressed, len(src)+1); !errors.Is(err, ErrInvalidLZ4) {
		t.Fatalf("wrong expected length: got %v, want ErrInvalidLZ4", err)
	}
}

func TestDecompressLZ4Block_EmptyExpected(t *testing.T) {
	out, err := decompressLZ4Block(nil, 0)
	if err != nil {
		t.Fatalf("decompress zero-length: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(out))
	}
}
