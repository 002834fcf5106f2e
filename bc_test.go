package wetex

import (
	"encoding/binary"
	"testing"

	"github.com/woozymasta/bcn"
)

func rgb565Pack(r5, g6, b5 uint16) uint16 {
	return (r5 << 11) | (g6 << 5) | b5
}

func TestDecodeBC1Block_EqualEndpointsOpaque(t *testing.T) {
	block := make([]byte, 8)
	c := rgb565Pack(0x1F, 0x3F, 0x1F)
	binary.LittleEndian.PutUint16(block[0:2], c)
	binary.LittleEndian.PutUint16(block[2:4], c)
	// all indices 0
	texels := decodeBC1Block(block)
	for i, px := range texels {
		if px[3] != 255 {
			t.Fatalf("texel %d alpha = %d, want 255", i, px[3])
		}
		if px[0] != 255 || px[1] != 255 || px[2] != 255 {
			t.Fatalf("texel %d color = %v, want white", i, px)
		}
	}
}

func TestDecodeBC1Block_TransparentBranch(t *testing.T) {
	block := make([]byte, 8)
	c0 := rgb565Pack(0, 0, 0)
	c1 := rgb565Pack(0x1F, 0x1F, 0x1F)
	binary.LittleEndian.PutUint16(block[0:2], c0)
	binary.LittleEndian.PutUint16(block[2:4], c1)
	// every index = 3 (transparent slot when c0 <= c1)
	binary.LittleEndian.PutUint32(block[4:8], 0xFFFFFFFF)

	texels := decodeBC1Block(block)
	for i, px := range texels {
		if px[3] != 0 {
			t.Fatalf("texel %d alpha = %d, want 0 (c0<=c1 transparent branch)", i, px[3])
		}
	}
}

func TestDecodeBC1Block_OpaqueBranchIgnoresIndex3Alpha(t *testing.T) {
	block := make([]byte, 8)
	c0 := rgb565Pack(0x1F, 0, 0)
	c1 := rgb565Pack(0, 0, 0x1F)
	binary.LittleEndian.PutUint16(block[0:2], c0) // stored so c0 (as read) > c1
	binary.LittleEndian.PutUint16(block[2:4], c1)
	binary.LittleEndian.PutUint32(block[4:8], 0xFFFFFFFF)

	texels := decodeBC1Block(block)
	for i, px := range texels {
		if px[3] != 255 {
			t.Fatalf("texel %d alpha = %d, want 255 (c0>c1 opaque branch)", i, px[3])
		}
	}
}

func TestDecodeBC3Block_AlphaExtremes(t *testing.T) {
	block := make([]byte, 16)
	block[0] = 0
	block[1] = 0
	// alpha indices all 0 -> ramp[0] = a0 = 0
	c0 := rgb565Pack(0x1F, 0x3F, 0x1F)
	binary.LittleEndian.PutUint16(block[8:10], c0)
	binary.LittleEndian.PutUint16(block[10:12], c0)

	texels := decodeBC3Block(block)
	for i, px := range texels {
		if px[3] != 0 {
			t.Fatalf("texel %d alpha = %d, want 0", i, px[3])
		}
	}

	block[0] = 255
	block[1] = 255
	texels = decodeBC3Block(block)
	for i, px := range texels {
		if px[3] != 255 {
			t.Fatalf("texel %d alpha = %d, want 255", i, px[3])
		}
	}
}

func TestDecodeBlockCompressed_NonAlignedDimensions(t *testing.T) {
	// 5x5 image needs 2x2 blocks of BC1; verify no panic and correct size.
	block := make([]byte, 8)
	c := rgb565Pack(0x10, 0x20, 0x10)
	binary.LittleEndian.PutUint16(block[0:2], c)
	binary.LittleEndian.PutUint16(block[2:4], c)
	payload := make([]byte, 0, 4*8)
	for i := 0; i < 4; i++ {
		payload = append(payload, block...)
	}

	out, err := decodeBlockCompressed(payload, 5, 5, bcn.FormatDXT1)
	if err != nil {
		t.Fatalf("decodeBlockCompressed: %v", err)
	}
	if len(out) != 5*5*4 {
		t.Fatalf("output len = %d, want %d", len(out), 5*5*4)
	}
}

func TestDecodeBlockCompressed_TooShort(t *testing.T) {
	_, err := decodeBlockCompressed(make([]byte, 4), 8, 8, bcn.FormatDXT1)
	if err == nil {
		t.Fatal("expected error for undersized payload")
	}
}
