package wetex

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// decompressLZ4Block decodes a single unframed LZ4 block: a sequence of
// token-prefixed literal runs and back-references with no framing,
// dictionary, or checksum. expectedLen is the declared decompressed length
// carried by the mipmap header; the produced length must match it exactly.
func decompressLZ4Block(input []byte, expectedLen int) ([]byte, error) {
	if expectedLen < 0 {
		return nil, fmt.Errorf("%w: negative expected length %d", ErrInvalidLZ4, expectedLen)
	}
	if expectedLen == 0 {
		return []byte{}, nil
	}
	out := make([]byte, expectedLen)
	n, err := lz4.UncompressBlock(input, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLZ4, err)
	}
	if n != expectedLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", ErrInvalidLZ4, n, expectedLen)
	}
	return out, nil
}

// compressLZ4Block encodes src as a single unframed LZ4 block using the
// fastest compressor pierrec/lz4 offers. It exists so the round-trip
// property test can produce real LZ4 input without depending on an external
// fixture file.
func compressLZ4Block(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: compress: %v", ErrInvalidLZ4, err)
	}
	if n == 0 {
		// pierrec/lz4 signals input it treats as incompressible by returning
		// n == 0; that case is reported as an error rather than emitted as an
		// all-literal block.
		return nil, fmt.Errorf("%w: input incompressible", ErrInvalidLZ4)
	}
	return buf[:n], nil
}
