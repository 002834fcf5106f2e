package wetex

import (
	"errors"
	"fmt"
)

// FileKind is the result of Describe: exactly one of PackageInfo,
// TextureInfo, or UnknownInfo.
type FileKind interface {
	isFileKind()
}

// PackageEntryInfo summarises one PackageEntry for Describe.
type PackageEntryInfo struct {
	Path string
	Size int
	Kind EntryKind
}

// PackageInfo is the Describe result for a PKG buffer.
type PackageInfo struct {
	Magic      string
	EntryCount int
	Entries    []PackageEntryInfo
}

func (PackageInfo) isFileKind() {}

// TextureInfo is the Describe result for a TEX buffer.
type TextureInfo struct {
	Width         uint32
	Height        uint32
	TextureWidth  uint32
	TextureHeight uint32
	Format        string
	IsAnimated    bool
	IsVideo       bool
	MipmapCount   int
}

func (TextureInfo) isFileKind() {}

// UnknownInfo is the Describe result when data matches neither format.
type UnknownInfo struct{}

func (UnknownInfo) isFileKind() {}

// Describe answers "what is it?" for an arbitrary byte buffer.
func Describe(data []byte) FileKind {
	if pkg, err := ParsePackage(data); err == nil || errors.Is(err, ErrUnsupportedVersion) {
		entries := make([]PackageEntryInfo, len(pkg.Entries))
		for i, e := range pkg.Entries {
			entries[i] = PackageEntryInfo{Path: e.Path, Size: int(e.Length), Kind: e.Kind}
		}
		return PackageInfo{Magic: pkg.Magic, EntryCount: len(pkg.Entries), Entries: entries}
	}

	if tex, err := ParseTexture(data); err == nil {
		format := tex.Header.Format.String()
		if tex.IsEmbeddedImage {
			format = string(tex.EmbeddedFormat)
		} else if tex.IsVideo {
			format = "mp4"
		}
		return TextureInfo{
			Width:         tex.Header.ImageWidth,
			Height:        tex.Header.ImageHeight,
			TextureWidth:  tex.Header.TextureWidth,
			TextureHeight: tex.Header.TextureHeight,
			Format:        format,
			IsAnimated:    tex.IsAnimated(),
			IsVideo:       tex.IsVideo,
			MipmapCount:   len(tex.Mipmaps),
		}
	}

	return UnknownInfo{}
}

// Convert decodes a TEX buffer and re-encodes it as target, one of an
// explicit format name (png, jpg, gif, webp, bmp, tiff, tga) or "auto".
// opts controls JPEG quality; its zero value applies the default.
func Convert(data []byte, target string, opts EncodeOptions) (out []byte, mimeType string, err error) {
	tex, err := ParseTexture(data)
	if err != nil {
		return nil, "", err
	}

	if target == "auto" {
		return convertAuto(tex, opts)
	}

	if tex.IsAnimated() && target == "gif" {
		b, err := AssembleGIF(tex)
		if err != nil {
			return nil, "", err
		}
		return b, mimeTypeForFormat("gif"), nil
	}

	if tex.IsVideo {
		return nil, "", fmt.Errorf("%w: cannot encode a video texture as %q", ErrUnsupportedFormat, target)
	}

	if tex.IsEmbeddedImage && embeddedFormatMatchesTarget(tex.EmbeddedFormat, target) {
		raw, err := mipmapRawPayload(tex.Mipmaps[0], 0)
		if err != nil {
			return nil, "", err
		}
		return raw, mimeTypeForFormat(string(tex.EmbeddedFormat)), nil
	}

	img, err := DecodeToRGBA8(tex)
	if err != nil {
		return nil, "", err
	}
	b, err := Encode(img, target, opts)
	if err != nil {
		return nil, "", err
	}
	return b, mimeTypeForFormat(target), nil
}

// embeddedFormatMatchesTarget reports whether target names the same image
// format as embedded, treating "jpg"/"jpeg" as equivalent.
func embeddedFormatMatchesTarget(embedded embeddedImageFormat, target string) bool {
	if target == "jpg" {
		target = "jpeg"
	}
	return string(embedded) == target
}

func convertAuto(tex *Texture, opts EncodeOptions) ([]byte, string, error) {
	if tex.IsVideo {
		_, raw, err := VideoPassthrough(tex)
		if err != nil {
			return nil, "", err
		}
		return raw, mimeTypeForFormat("mp4"), nil
	}

	if tex.IsAnimated() {
		b, err := AssembleGIF(tex)
		if err != nil {
			return nil, "", err
		}
		return b, mimeTypeForFormat("gif"), nil
	}

	if tex.IsEmbeddedImage {
		raw, err := mipmapRawPayload(tex.Mipmaps[0], 0)
		if err != nil {
			return nil, "", err
		}
		img, err := DecodeToRGBA8(tex)
		if err != nil {
			return nil, "", err
		}
		png, err := Encode(img, "png", opts)
		if err != nil {
			return nil, "", err
		}
		if len(png) < len(raw) {
			return png, mimeTypeForFormat("png"), nil
		}
		return raw, mimeTypeForFormat(string(tex.EmbeddedFormat)), nil
	}

	img, err := DecodeToRGBA8(tex)
	if err != nil {
		return nil, "", err
	}
	b, err := Encode(img, "png", opts)
	if err != nil {
		return nil, "", err
	}
	return b, mimeTypeForFormat("png"), nil
}
