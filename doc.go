/*
Package wetex reads two proprietary binary container formats used by a
desktop wallpaper product: PKG package archives holding named file
entries, and TEX texture containers holding image pixel data in several
encodings.

The package parses both formats, decodes TEX pixel payloads (LZ4 block
decompression, BC1/BC3 block-compressed textures, raw pixel formats,
embedded standard images) into RGBA8, and re-encodes to common image
formats. Parsing and decoding are synchronous and perform no I/O; the
caller supplies the full input as a byte slice and owns the resulting
buffers.
*/
package wetex
