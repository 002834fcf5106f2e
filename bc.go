package wetex

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

// decodeBlockCompressed decodes a BC1 (DXT1) or BC3 (DXT5) payload into a
// tightly packed RGBA8 image of the given dimensions, via bcn's decoder.
// bcn clips non-4-aligned edges itself, so no bounds wrapper is needed here.
func decodeBlockCompressed(payload []byte, width, height int, blockFormat bcn.Format) ([]byte, error) {
	img, err := bcn.DecodeImageWithOptions(payload, width, height, blockFormat, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return toRGBA(img).Pix, nil
}

// decodeBC1Block decodes one 8-byte BC1 (DXT1) block into 16 RGBA8 texels in
// row-major order, via bcn's decoder applied to a single 4x4 block.
func decodeBC1Block(block []byte) [16][4]uint8 {
	return decodeSingleBlock(block, bcn.FormatDXT1)
}

// decodeBC3Block decodes one 16-byte BC3 (DXT5) block into 16 RGBA8 texels
// in row-major order, via bcn's decoder applied to a single 4x4 block.
func decodeBC3Block(block []byte) [16][4]uint8 {
	return decodeSingleBlock(block, bcn.FormatDXT5)
}

func decodeSingleBlock(block []byte, format bcn.Format) [16][4]uint8 {
	img, err := bcn.DecodeImageWithOptions(block, 4, 4, format, nil)
	if err != nil {
		panic(fmt.Sprintf("decode single %v block: %v", format, err))
	}
	rgba := toRGBA(img)

	var out [16][4]uint8
	for i := 0; i < 16; i++ {
		x, y := i%4, i/4
		p := rgba.PixOffset(x, y)
		out[i] = [4]uint8{rgba.Pix[p], rgba.Pix[p+1], rgba.Pix[p+2], rgba.Pix[p+3]}
	}
	return out
}
