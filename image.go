package wetex

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/woozymasta/bcn"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const defaultJPEGQuality = 90

func mipmapRawPayload(m Mipmap, index int) ([]byte, error) {
	if !m.Compressed {
		return m.Payload, nil
	}
	out, err := decompressLZ4Block(m.Payload, int(m.DecompressedLen))
	if err != nil {
		return nil, fmt.Errorf("%w: mipmap %d: %w", ErrMalformedPayload, index, err)
	}
	if len(out) != int(m.DecompressedLen) {
		return nil, fmt.Errorf("%w: mipmap %d decompressed length mismatch", ErrMalformedPayload, index)
	}
	return out, nil
}

// DecodeToRGBA8 produces an in-memory RGBA8 image at the first mipmap's
// dimensions.
func DecodeToRGBA8(tex *Texture) (*image.RGBA, error) {
	if tex.IsVideo {
		return nil, fmt.Errorf("%w: cannot decode a video texture to RGBA8", ErrUnsupportedFormat)
	}

	first := tex.Mipmaps[0]
	width, height := int(first.Width), int(first.Height)

	raw, err := mipmapRawPayload(first, 0)
	if err != nil {
		return nil, err
	}

	if tex.IsEmbeddedImage {
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: embedded %s decode: %v", ErrMalformedPayload, tex.EmbeddedFormat, err)
		}
		return toRGBA(img), nil
	}

	switch tex.Header.Format {
	case FormatRGBA8888:
		return expandRGBA8888(raw, width, height)
	case FormatR8:
		return expandR8(raw, width, height)
	case FormatRG88:
		return expandRG88(raw, width, height)
	case FormatDXT1:
		pix, err := decodeBlockCompressed(raw, width, height, bcn.FormatDXT1)
		if err != nil {
			return nil, err
		}
		return &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}, nil
	case FormatDXT5:
		pix, err := decodeBlockCompressed(raw, width, height, bcn.FormatDXT5)
		if err != nil {
			return nil, err
		}
		return &image.RGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, tex.Header.Format)
	}
}

func expandRGBA8888(raw []byte, width, height int) (*image.RGBA, error) {
	need := width * height * 4
	if len(raw) < need {
		return nil, fmt.Errorf("%w: RGBA8888 payload too short: need %d, have %d", ErrMalformedPayload, need, len(raw))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, raw[:need])
	return img, nil
}

func expandR8(raw []byte, width, height int) (*image.RGBA, error) {
	need := width * height
	if len(raw) < need {
		return nil, fmt.Errorf("%w: R8 payload too short: need %d, have %d", ErrMalformedPayload, need, len(raw))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < need; i++ {
		v := raw[i]
		p := i * 4
		img.Pix[p+0] = v
		img.Pix[p+1] = v
		img.Pix[p+2] = v
		img.Pix[p+3] = 255
	}
	return img, nil
}

func expandRG88(raw []byte, width, height int) (*image.RGBA, error) {
	need := width * height * 2
	if len(raw) < need {
		return nil, fmt.Errorf("%w: RG88 payload too short: need %d, have %d", ErrMalformedPayload, need, len(raw))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		r := raw[i*2]
		g := raw[i*2+1]
		p := i * 4
		img.Pix[p+0] = r
		img.Pix[p+1] = g
		img.Pix[p+2] = 0
		img.Pix[p+3] = 255
	}
	return img, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

// EncodeOptions controls Encode's output.
type EncodeOptions struct {
	Quality int // 1..100, JPEG only, default 90
}

func (o EncodeOptions) quality() int {
	if o.Quality <= 0 {
		return defaultJPEGQuality
	}
	if o.Quality > 100 {
		return 100
	}
	return o.Quality
}

// Encode writes img in the named format.
// format is one of png, jpg/jpeg, gif, webp, bmp, tiff, tga.
func Encode(img image.Image, format string, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: opts.quality()})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "webp":
		err = webp.Encode(&buf, img, &webp.Options{Lossless: true})
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tiff":
		err = tiff.Encode(&buf, img, nil)
	case "tga":
		err = encodeTGA(&buf, toRGBA(img))
	default:
		return nil, fmt.Errorf("%w: encode format %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s encoder: %v", ErrMalformedPayload, format, err)
	}
	return buf.Bytes(), nil
}

const lastFrameDefaultDelayCentiseconds = 10

// AssembleGIF composites the frame-info block's sub-rectangles from the
// decoded sprite sheet into a multi-frame GIF. The last frame's
// delay defaults to 100ms (10 centiseconds) if the declared time is zero.
func AssembleGIF(tex *Texture) ([]byte, error) {
	if tex.FrameInfo == nil {
		return nil, fmt.Errorf("%w: texture has no frame-info block", ErrMalformedPayload)
	}

	sheet, err := DecodeToRGBA8(tex)
	if err != nil {
		return nil, err
	}
	sheetBounds := image.Rect(0, 0, int(tex.FrameInfo.SheetWidth), int(tex.FrameInfo.SheetHeight))

	frames := tex.FrameInfo.Frames
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}

	for i, f := range frames {
		rect := image.Rect(int(f.X), int(f.Y), int(f.X+f.Width), int(f.Y+f.Height))
		rect = rect.Intersect(sheetBounds)
		if rect.Empty() {
			return nil, fmt.Errorf("%w: frame %d rectangle outside sheet bounds", ErrMalformedPayload, i)
		}

		paletted := image.NewPaletted(image.Rect(0, 0, rect.Dx(), rect.Dy()), palette.Plan9)
		draw.Draw(paletted, paletted.Bounds(), sheet, rect.Min, draw.Src)

		delay := int(f.Time*100 + 0.5)
		if delay == 0 && i == len(frames)-1 {
			delay = lastFrameDefaultDelayCentiseconds
		}

		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return nil, fmt.Errorf("%w: gif encode: %v", ErrMalformedPayload, err)
	}
	return buf.Bytes(), nil
}

// VideoPassthrough returns the byte range of the raw MP4 payload within the
// buffer the Texture was parsed from, so a caller can copy it out
// without re-encoding. If the mipmap was LZ4-compressed, no such range
// exists in the source buffer; the decompressed bytes are returned directly
// instead.
func VideoPassthrough(tex *Texture) (ByteRange, []byte, error) {
	if !tex.IsVideo {
		return ByteRange{}, nil, fmt.Errorf("%w: texture is not a video texture", ErrUnsupportedFormat)
	}
	m := tex.Mipmaps[0]
	if !m.Compressed {
		r := ByteRange{Offset: m.SourceOffset, Length: len(m.Payload)}
		return r, tex.Bytes(r), nil
	}
	raw, err := mipmapRawPayload(m, 0)
	if err != nil {
		return ByteRange{}, nil, err
	}
	return ByteRange{}, raw, nil
}
