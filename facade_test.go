package wetex

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestDescribe_Package(t *testing.T) {
	raw := buildPackage(t, supportedPackageMagic, []pkgEntrySpec{
		{path: "a.json", data: []byte("{}")},
	})
	kind := Describe(raw)
	info, ok := kind.(PackageInfo)
	if !ok {
		t.Fatalf("Describe returned %T, want PackageInfo", kind)
	}
	if info.EntryCount != 1 {
		t.Fatalf("EntryCount = %d, want 1", info.EntryCount)
	}
}

func TestDescribe_Texture(t *testing.T) {
	raw := buildTexture(t, ContainerV2, FormatDXT1, 0, []mipmapSpec{
		{width: 8, height: 8, rawPayload: solidBC1Payload(4)},
	}, nil, 0, 0)
	kind := Describe(raw)
	info, ok := kind.(TextureInfo)
	if !ok {
		t.Fatalf("Describe returned %T, want TextureInfo", kind)
	}
	if info.Format != "DXT1" {
		t.Fatalf("Format = %q, want DXT1", info.Format)
	}
}

func TestDescribe_Unknown(t *testing.T) {
	kind := Describe([]byte("not a recognised container"))
	if _, ok := kind.(UnknownInfo); !ok {
		t.Fatalf("Describe returned %T, want UnknownInfo", kind)
	}
}

func TestConvert_Property7_SmallestOfEmbeddedOrPNG(t *testing.T) {
	var pngBuf bytes.Buffer
	img := makeSolidRGBA(8, 8)
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	raw := buildTexture(t, ContainerV2, FormatRGBA8888, 0, []mipmapSpec{
		{width: 8, height: 8, rawPayload: pngBuf.Bytes()},
	}, nil, 0, 0)

	out, mimeType, err := Convert(raw, "auto", EncodeOptions{})
	if err != nil {
		t.Fatalf("Convert auto: %v", err)
	}
	if mimeType != "image/png" {
		t.Fatalf("mime = %q, want image/png", mimeType)
	}
	if len(out) > len(pngBuf.Bytes()) {
		t.Fatalf("auto-convert output (%d bytes) larger than embedded source (%d bytes)", len(out), len(pngBuf.Bytes()))
	}
}

func TestConvert_A5_EmbeddedPNGExplicitTargetPassthrough(t *testing.T) {
	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 100)...)
	raw := buildTexture(t, ContainerV2, FormatRGBA8888, 0, []mipmapSpec{
		{width: 8, height: 8, rawPayload: png},
	}, nil, 0, 0)

	out, mimeType, err := Convert(raw, "png", EncodeOptions{})
	if err != nil {
		t.Fatalf("Convert png: %v", err)
	}
	if mimeType != "image/png" {
		t.Fatalf("mime = %q, want image/png", mimeType)
	}
	if !bytes.Equal(out, png) {
		t.Fatal("explicit-target convert must return the embedded payload unchanged")
	}
}

func TestConvert_VideoAuto(t *testing.T) {
	video := append([]byte{0, 0, 0, 24}, []byte("ftypisom")...)
	video = append(video, bytes.Repeat([]byte{0}, 32)...)
	raw := buildTexture(t, ContainerV2, FormatRGBA8888, 0, []mipmapSpec{
		{width: 4, height: 4, rawPayload: video},
	}, nil, 0, 0)

	out, mimeType, err := Convert(raw, "auto", EncodeOptions{})
	if err != nil {
		t.Fatalf("Convert auto: %v", err)
	}
	if mimeType != "video/mp4" {
		t.Fatalf("mime = %q, want video/mp4", mimeType)
	}
	if !bytes.Equal(out, video) {
		t.Fatal("auto video passthrough bytes mismatch")
	}
}

func makeSolidRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		p := i * 4
		img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = 10, 20, 30, 255
	}
	return img
}
