package wetex

import "bytes"

// TextureFormat is the texture pixel-format discriminant carried in a TEX
// container header.
type TextureFormat int32

const (
	FormatRGBA8888 TextureFormat = 0
	FormatDXT5     TextureFormat = 1 // BC3
	FormatDXT3     TextureFormat = 2 // BC2, recognised but not decoded
	FormatDXT1     TextureFormat = 3 // BC1
	FormatRG88     TextureFormat = 4
	FormatR8       TextureFormat = 5
)

func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatDXT5:
		return "DXT5"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT1:
		return "DXT1"
	case FormatRG88:
		return "RG88"
	case FormatR8:
		return "R8"
	default:
		return "unknown"
	}
}

const (
	flagNoInterpolation = 1 << 0
	flagHasFrameInfo    = 1 << 20
)

// EntryKind classifies a PackageEntry by its path suffix.
type EntryKind string

const (
	EntryKindTexture EntryKind = "texture"
	EntryKindJSON    EntryKind = "json"
	EntryKindShader  EntryKind = "shader"
	EntryKindOther   EntryKind = "other"
)

func entryKindFromPath(path string) EntryKind {
	ext := extLower(path)
	switch ext {
	case ".tex":
		return EntryKindTexture
	case ".json":
		return EntryKindJSON
	case ".vert", ".frag":
		return EntryKindShader
	default:
		return EntryKindOther
	}
}

func extLower(path string) string {
	dot := -1
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			break
		}
		if path[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return ""
	}
	b := []byte(path[dot:])
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// embeddedImageFormat is the recognised standard-image format a mipmap
// payload may embed.
type embeddedImageFormat string

const (
	embeddedNone embeddedImageFormat = ""
	embeddedPNG  embeddedImageFormat = "png"
	embeddedJPEG embeddedImageFormat = "jpeg"
	embeddedGIF  embeddedImageFormat = "gif"
	embeddedWebP embeddedImageFormat = "webp"
	embeddedBMP  embeddedImageFormat = "bmp"
	embeddedTIFF embeddedImageFormat = "tiff"
	embeddedTGA  embeddedImageFormat = "tga"
)

var (
	pngSignature    = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegSignature   = []byte{0xFF, 0xD8, 0xFF}
	gif87Signature  = []byte("GIF87a")
	gif89Signature  = []byte("GIF89a")
	bmpSignature    = []byte("BM")
	tiffLESignature = []byte{0x49, 0x49, 0x2A, 0x00}
	tiffBESignature = []byte{0x4D, 0x4D, 0x00, 0x2A}
	riffSignature   = []byte("RIFF")
	webpSignature   = []byte("WEBP")
	ftypSignature   = []byte("ftyp")
)

// detectEmbeddedImage sniffs the leading bytes of a mipmap payload for a
// recognised standard-image magic. TGA has no reliable magic
// number, so it is never auto-detected here; it is reachable only as an
// explicit encode target.
func detectEmbeddedImage(payload []byte) embeddedImageFormat {
	switch {
	case bytes.HasPrefix(payload, pngSignature):
		return embeddedPNG
	case bytes.HasPrefix(payload, jpegSignature):
		return embeddedJPEG
	case bytes.HasPrefix(payload, gif87Signature), bytes.HasPrefix(payload, gif89Signature):
		return embeddedGIF
	case bytes.HasPrefix(payload, bmpSignature):
		return embeddedBMP
	case bytes.HasPrefix(payload, tiffLESignature), bytes.HasPrefix(payload, tiffBESignature):
		return embeddedTIFF
	case len(payload) >= 12 && bytes.HasPrefix(payload, riffSignature) && bytes.Equal(payload[8:12], webpSignature):
		return embeddedWebP
	default:
		return embeddedNone
	}
}

// isVideoPayload reports whether payload carries the ISO-BMFF `ftyp`
// signature at byte offset 4.
func isVideoPayload(payload []byte) bool {
	return len(payload) >= 8 && bytes.Equal(payload[4:8], ftypSignature)
}

func mimeTypeForFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	case "tga":
		return "image/x-tga"
	case "mp4":
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}
