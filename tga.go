package wetex

import (
	"encoding/binary"
	"image"
	"io"
)

// encodeTGA writes img as an uncompressed 32-bit BGRA TGA image. No
// ecosystem TGA encoder exists in the dependency set this package draws
// from; the format's on-wire shape (an 18-byte header plus a raw scanline
// dump) is small enough to write directly.
func encodeTGA(w io.Writer, img *image.RGBA) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	header := make([]byte, 18)
	header[2] = 2 // uncompressed true-color
	binary.LittleEndian.PutUint16(header[12:14], uint16(width))
	binary.LittleEndian.PutUint16(header[14:16], uint16(height))
	header[16] = 32   // bits per pixel
	header[17] = 0x28 // 8 alpha bits, top-left origin
	if _, err := w.Write(header); err != nil {
		return err
	}

	row := make([]byte, width*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			r, g, bl, a := img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3]
			o := x * 4
			row[o+0] = bl
			row[o+1] = g
			row[o+2] = r
			row[o+3] = a
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
