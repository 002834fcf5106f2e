package wetex

import (
	"bytes"
	"testing"
)

// benchBC1Payload builds a large solid-color BC1 payload of the requested
// block-grid dimensions for throughput benchmarking.
func benchBC1Payload(blocksWide, blocksHigh int) []byte {
	block := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}
	out := make([]byte, 0, blocksWide*blocksHigh*8)
	for i := 0; i < blocksWide*blocksHigh; i++ {
		out = append(out, block...)
	}
	return out
}

func BenchmarkDecodeToRGBA8_BC1(b *testing.B) {
	const w, h = 256, 256
	payload := benchBC1Payload(w/4, h/4)
	tex := &Texture{
		Header: TextureHeader{Format: FormatDXT1},
		Mipmaps: []Mipmap{
			{Width: w, Height: h, Payload: payload},
		},
	}

	b.ReportAllocs()
	b.SetBytes(int64(w * h * 4))
	b.ResetTimer()

	for b.Loop() {
		if _, err := DecodeToRGBA8(tex); err != nil {
			b.Fatalf("DecodeToRGBA8: %v", err)
		}
	}
}

func BenchmarkDecodeToRGBA8_RGBA8888(b *testing.B) {
	const w, h = 256, 256
	payload := bytes.Repeat([]byte{10, 20, 30, 255}, w*h)
	tex := &Texture{
		Header: TextureHeader{Format: FormatRGBA8888},
		Mipmaps: []Mipmap{
			{Width: w, Height: h, Payload: payload},
		},
	}

	b.ReportAllocs()
	b.SetBytes(int64(len(payload)))
	b.ResetTimer()

	for b.Loop() {
		if _, err := DecodeToRGBA8(tex); err != nil {
			b.Fatalf("DecodeToRGBA8: %v", err)
		}
	}
}

func BenchmarkLZ4RoundTrip(b *testing.B) {
	src := bytes.Repeat([]byte("wallpaper-texture-payload"), 4096)

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for b.Loop() {
		compressed, err := compressLZ4Block(src)
		if err != nil {
			b.Fatalf("compressLZ4Block: %v", err)
		}
		if _, err := decompressLZ4Block(compressed, len(src)); err != nil {
			b.Fatalf("decompressLZ4Block: %v", err)
		}
	}
}
