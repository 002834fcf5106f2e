package wetex

import (
	"fmt"
	"strings"
)

// ContainerVersion is the TEXB body-layout version tag read after the
// texture header, governing per-mipmap record layout and whether frame
// info follows the mipmap table.
type ContainerVersion string

const (
	ContainerV1 ContainerVersion = "TEXB0001"
	ContainerV2 ContainerVersion = "TEXB0002"
	ContainerV3 ContainerVersion = "TEXB0003"
	ContainerV4 ContainerVersion = "TEXB0004"
)

// imageContainerV1 reuses the header's declared format verbatim; later
// image-container versions may override it from the first mipmap's payload
// signature (see resolveFormat).
const imageContainerV1 = "TEXI0001"

// TextureHeader carries the fields read from the container header and the
// image-container version that governs format resolution.
type TextureHeader struct {
	Magic                 string
	ImageContainerVersion string
	Format                TextureFormat
	Flags                 uint32
	ImageWidth            uint32
	ImageHeight           uint32
	TextureWidth          uint32
	TextureHeight         uint32
	ContainerVersion      ContainerVersion
}

func (h TextureHeader) hasFrameInfo() bool {
	return h.Flags&flagHasFrameInfo != 0
}

// Mipmap is one resolution level of a texture.
type Mipmap struct {
	Level           int
	Width           uint32
	Height          uint32
	Compressed      bool
	DecompressedLen uint32
	// SourceOffset is the byte offset of Payload within the buffer passed to
	// ParseTexture, used by VideoPassthrough to return a byte range instead
	// of a copy.
	SourceOffset int
	Payload      []byte
}

// Frame is a single animation frame descriptor.
type Frame struct {
	ImageIndex uint32
	Time       float32
	X          float32
	Y          float32
	Width      float32
	Height     float32
}

// FrameInfo is the optional animation metadata block.
type FrameInfo struct {
	SheetWidth  uint32
	SheetHeight uint32
	Frames      []Frame
}

// Texture is a fully parsed TEX container.
type Texture struct {
	Header          TextureHeader
	Mipmaps         []Mipmap
	FrameInfo       *FrameInfo
	IsVideo         bool
	IsEmbeddedImage bool
	EmbeddedFormat  embeddedImageFormat

	src []byte
}

// ByteRange is an (offset, length) view into the buffer a Texture was
// parsed from.
type ByteRange struct {
	Offset int
	Length int
}

// Bytes slices r out of the buffer this Texture was parsed from.
func (t *Texture) Bytes(r ByteRange) []byte {
	return t.src[r.Offset : r.Offset+r.Length]
}

// IsAnimated reports whether the texture carries a frame-info block.
func (t *Texture) IsAnimated() bool {
	return t.FrameInfo != nil
}

// ParseTexture reads a TEX container from data.
func ParseTexture(data []byte) (*Texture, error) {
	c := newCursor(data)

	magic1, err := c.cstring(16)
	if err != nil {
		return nil, fmt.Errorf("tex container magic: %w", err)
	}
	if !strings.HasPrefix(magic1, "TEXV") {
		return nil, fmt.Errorf("%w: tex magic %q", ErrInvalidMagic, magic1)
	}

	magic2, err := c.cstring(16)
	if err != nil {
		return nil, fmt.Errorf("tex image-container magic: %w", err)
	}
	if !strings.HasPrefix(magic2, "TEXI") {
		return nil, fmt.Errorf("%w: tex image-container magic %q", ErrInvalidMagic, magic2)
	}

	formatVal, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("tex format: %w", err)
	}
	flags, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("tex flags: %w", err)
	}
	imgW, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("tex image width: %w", err)
	}
	imgH, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("tex image height: %w", err)
	}
	texW, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("tex texture width: %w", err)
	}
	texH, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("tex texture height: %w", err)
	}

	bodyMagic, err := c.cstring(16)
	if err != nil {
		return nil, fmt.Errorf("tex body magic: %w", err)
	}
	version := ContainerVersion(bodyMagic)
	switch version {
	case ContainerV1, ContainerV2, ContainerV3, ContainerV4:
	default:
		return nil, fmt.Errorf("%w: tex body magic %q", ErrUnsupportedVersion, bodyMagic)
	}

	header := TextureHeader{
		Magic:                 magic1,
		ImageContainerVersion: magic2,
		Format:                TextureFormat(formatVal),
		Flags:                 flags,
		ImageWidth:            imgW,
		ImageHeight:           imgH,
		TextureWidth:          texW,
		TextureHeight:         texH,
		ContainerVersion:      version,
	}

	mipmaps, err := readMipmaps(c, version)
	if err != nil {
		return nil, err
	}
	if len(mipmaps) == 0 {
		return nil, fmt.Errorf("%w: texture has no mipmaps", ErrMalformedPayload)
	}

	tex := &Texture{Header: header, Mipmaps: mipmaps, src: data}

	// The first mipmap's declared dimensions are authoritative.
	tex.Header.ImageWidth = mipmaps[0].Width
	tex.Header.ImageHeight = mipmaps[0].Height

	var frameInfo *FrameInfo
	if (version == ContainerV3 || version == ContainerV4) && header.hasFrameInfo() {
		if version == ContainerV4 {
			if _, err := c.u8(); err != nil {
				return nil, fmt.Errorf("tex reserved byte: %w", err)
			}
		}
		frameInfo, err = readFrameInfo(c)
		if err != nil {
			return nil, err
		}
	}
	tex.FrameInfo = frameInfo

	if err := resolveFormat(tex); err != nil {
		return nil, err
	}

	return tex, nil
}

func readMipmaps(c *cursor, version ContainerVersion) ([]Mipmap, error) {
	count, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("tex mipmap count: %w", err)
	}

	mipmaps := make([]Mipmap, 0, count)
	for i := uint32(0); i < count; i++ {
		width, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("mipmap %d width: %w", i, err)
		}
		height, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("mipmap %d height: %w", i, err)
		}

		var compressed bool
		var decompressedLen uint32
		if version != ContainerV1 {
			flag, err := c.u8()
			if err != nil {
				return nil, fmt.Errorf("mipmap %d compressed flag: %w", i, err)
			}
			compressed = flag != 0
			if compressed {
				decompressedLen, err = c.u32()
				if err != nil {
					return nil, fmt.Errorf("mipmap %d decompressed length: %w", i, err)
				}
			}
		}

		payloadLen, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("mipmap %d payload length: %w", i, err)
		}
		sourceOffset := c.pos
		payload, err := c.take(int(payloadLen))
		if err != nil {
			return nil, fmt.Errorf("mipmap %d payload: %w", i, err)
		}
		body := make([]byte, len(payload))
		copy(body, payload)

		mipmaps = append(mipmaps, Mipmap{
			Level:           int(i),
			Width:           width,
			Height:          height,
			Compressed:      compressed,
			DecompressedLen: decompressedLen,
			SourceOffset:    sourceOffset,
			Payload:         body,
		})
	}
	return mipmaps, nil
}

func readFrameInfo(c *cursor) (*FrameInfo, error) {
	frameCount, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("frame-info count: %w", err)
	}
	sheetW, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("frame-info sheet width: %w", err)
	}
	sheetH, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("frame-info sheet height: %w", err)
	}

	frames := make([]Frame, 0, frameCount)
	for i := uint32(0); i < frameCount; i++ {
		imageIndex, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("frame %d image index: %w", i, err)
		}
		t, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("frame %d time: %w", i, err)
		}
		x, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("frame %d x: %w", i, err)
		}
		y, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("frame %d y: %w", i, err)
		}
		w, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("frame %d width: %w", i, err)
		}
		h, err := c.f32()
		if err != nil {
			return nil, fmt.Errorf("frame %d height: %w", i, err)
		}
		frames = append(frames, Frame{ImageIndex: imageIndex, Time: t, X: x, Y: y, Width: w, Height: h})
	}
	return &FrameInfo{SheetWidth: sheetW, SheetHeight: sheetH, Frames: frames}, nil
}

// resolveFormat applies the format-resolution policy: sniff the first
// mipmap's decompressed payload for a video or embedded-image signature
// before ever trusting the header's claimed pixel format.
func resolveFormat(tex *Texture) error {
	first := tex.Mipmaps[0]

	rawPayload := first.Payload
	if first.Compressed {
		decoded, err := decompressLZ4Block(first.Payload, int(first.DecompressedLen))
		if err != nil {
			return fmt.Errorf("%w: mipmap 0: %w", ErrMalformedPayload, err)
		}
		if len(decoded) != int(first.DecompressedLen) {
			return fmt.Errorf("%w: mipmap 0 decompressed length mismatch", ErrMalformedPayload)
		}
		rawPayload = decoded
	}

	if isVideoPayload(rawPayload) {
		tex.IsVideo = true
		return nil
	}

	if tex.Header.ImageContainerVersion != imageContainerV1 {
		if embedded := detectEmbeddedImage(rawPayload); embedded != embeddedNone {
			tex.IsEmbeddedImage = true
			tex.EmbeddedFormat = embedded
			return nil
		}
	}

	switch tex.Header.Format {
	case FormatRGBA8888, FormatR8, FormatRG88, FormatDXT1, FormatDXT5:
		return nil
	case FormatDXT3:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, tex.Header.Format)
	default:
		return fmt.Errorf("%w: format value %d", ErrUnsupportedFormat, int32(tex.Header.Format))
	}
}
