package wetex

import "errors"

var (
	// ErrUnexpectedEOF indicates a read ran past the end of the input buffer.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrInvalidMagic indicates a fixed magic string did not match any known value.
	ErrInvalidMagic = errors.New("invalid magic")
	// ErrUnsupportedVersion indicates a recognised-shape but unhandled version magic.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrUnsupportedFormat indicates a texture format discriminant with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrMalformedPayload indicates a length or structural mismatch inside a payload.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrInvalidLZ4 indicates an LZ4 block stream violated the block-format contract.
	ErrInvalidLZ4 = errors.New("invalid lz4 block stream")
	// ErrNotFound indicates a requested package entry path does not exist.
	ErrNotFound = errors.New("entry not found")
)
