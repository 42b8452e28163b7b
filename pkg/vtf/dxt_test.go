package vtf

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// fillBlock builds a 64-byte RGBA8 block where every pixel has the given
// color.
func fillBlock(r, g, b, a uint8) []byte {
	block := make([]byte, 64)
	for i := 0; i < 16; i++ {
		block[i*4+0] = r
		block[i*4+1] = g
		block[i*4+2] = b
		block[i*4+3] = a
	}
	return block
}

func TestDecodeColor565(t *testing.T) {
	tests := []struct {
		c       uint16
		r, g, b uint8
	}{
		{0x0000, 0, 0, 0},
		{0xFFFF, 255, 255, 255},
		{0xF800, 255, 0, 0},
		{0x07E0, 0, 255, 0},
		{0x001F, 0, 0, 255},
	}
	for _, tt := range tests {
		r, g, b := decodeColor565(tt.c)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("decodeColor565(0x%04x): got (%d,%d,%d), want (%d,%d,%d)",
				tt.c, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestDecompressDXT1Block(t *testing.T) {
	t.Run("SolidRed", func(t *testing.T) {
		var src [8]byte
		binary.LittleEndian.PutUint16(src[0:2], 0xF800)
		binary.LittleEndian.PutUint16(src[2:4], 0xF800)
		// All indices zero.

		dst := make([]byte, 64)
		decompressDXT1Block(src[:], dst, 16, false)

		for i := 0; i < 16; i++ {
			p := dst[i*4:]
			if p[0] != 255 || p[1] != 0 || p[2] != 0 || p[3] != 255 {
				t.Fatalf("pixel %d: got (%d,%d,%d,%d), want (255,0,0,255)", i, p[0], p[1], p[2], p[3])
			}
		}
	})

	t.Run("IndexPacking", func(t *testing.T) {
		// color0 = white, color1 = black, four-color mode. Index pixel
		// (x,y) at bit offset (y*4+x)*2: set pixel (1,2) to index 1.
		var src [8]byte
		binary.LittleEndian.PutUint16(src[0:2], 0xFFFF)
		binary.LittleEndian.PutUint16(src[2:4], 0x0000)
		indices := uint32(1) << ((2*4 + 1) * 2)
		binary.LittleEndian.PutUint32(src[4:8], indices)

		dst := make([]byte, 64)
		decompressDXT1Block(src[:], dst, 16, false)

		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				p := dst[y*16+x*4:]
				want := uint8(255)
				if x == 1 && y == 2 {
					want = 0
				}
				if p[0] != want || p[1] != want || p[2] != want {
					t.Errorf("pixel (%d,%d): got (%d,%d,%d), want all %d", x, y, p[0], p[1], p[2], want)
				}
			}
		}
	})

	t.Run("ThreeColorTransparent", func(t *testing.T) {
		// color0 <= color1 with the one-bit-alpha flag: index 3 decodes
		// to transparent black.
		var src [8]byte
		binary.LittleEndian.PutUint16(src[0:2], 0x0000)
		binary.LittleEndian.PutUint16(src[2:4], 0xFFFF)
		binary.LittleEndian.PutUint32(src[4:8], 0xFFFFFFFF) // all index 3

		dst := make([]byte, 64)
		decompressDXT1Block(src[:], dst, 16, true)

		for i := 0; i < 16; i++ {
			p := dst[i*4:]
			if p[0] != 0 || p[1] != 0 || p[2] != 0 || p[3] != 0 {
				t.Fatalf("pixel %d: got (%d,%d,%d,%d), want transparent black", i, p[0], p[1], p[2], p[3])
			}
		}

		// Without the flag the same block decodes opaque.
		decompressDXT1Block(src[:], dst, 16, false)
		if dst[3] != 255 {
			t.Errorf("opaque decode: alpha %d, want 255", dst[3])
		}
	})
}

func TestCompressDXT1Block(t *testing.T) {
	t.Run("BlackWhiteExact", func(t *testing.T) {
		// Endpoint colors survive 565 quantization exactly, so a block of
		// pure black and white round-trips bit for bit.
		block := make([]byte, 64)
		for i := 0; i < 16; i++ {
			v := uint8(0)
			if i%3 == 0 {
				v = 255
			}
			block[i*4+0] = v
			block[i*4+1] = v
			block[i*4+2] = v
			block[i*4+3] = 255
		}

		var compressed [8]byte
		compressDXT1Block(block, compressed[:])

		dst := make([]byte, 64)
		decompressDXT1Block(compressed[:], dst, 16, false)

		if !bytes.Equal(dst, block) {
			t.Errorf("round trip mismatch:\ngot  %v\nwant %v", dst, block)
		}
	})

	t.Run("FourColorModeSelected", func(t *testing.T) {
		block := fillBlock(10, 20, 30, 255)
		var compressed [8]byte
		compressDXT1Block(block, compressed[:])

		c0 := binary.LittleEndian.Uint16(compressed[0:2])
		c1 := binary.LittleEndian.Uint16(compressed[2:4])
		if c0 < c1 {
			t.Errorf("color0 (0x%04x) < color1 (0x%04x): three-color mode would be selected", c0, c1)
		}
	})

	t.Run("QuantizationErrorBound", func(t *testing.T) {
		// Grayscale gradient spanning the full range: per-channel error
		// stays within the (max-min)/3 bound of 4-level quantization.
		block := make([]byte, 64)
		for i := 0; i < 16; i++ {
			v := uint8(i * 17)
			block[i*4+0] = v
			block[i*4+1] = v
			block[i*4+2] = v
			block[i*4+3] = 255
		}

		var compressed [8]byte
		compressDXT1Block(block, compressed[:])
		dst := make([]byte, 64)
		decompressDXT1Block(compressed[:], dst, 16, false)

		bound := 255 / 3
		for i := 0; i < 16; i++ {
			for c := 0; c < 3; c++ {
				diff := int(dst[i*4+c]) - int(block[i*4+c])
				if diff < 0 {
					diff = -diff
				}
				if diff > bound {
					t.Errorf("pixel %d channel %d: error %d exceeds bound %d", i, c, diff, bound)
				}
			}
		}
	})
}

func TestDecompressDXT3Block(t *testing.T) {
	// Explicit 4-bit alpha, low nibble first: pixel i gets nibble i,
	// expanded by replicating into both halves.
	var src [16]byte
	for j := 0; j < 8; j++ {
		lo := uint8(2 * j)
		hi := uint8(2*j + 1)
		src[j] = hi<<4 | lo
	}
	// Solid white color part.
	binary.LittleEndian.PutUint16(src[8:10], 0xFFFF)
	binary.LittleEndian.PutUint16(src[10:12], 0xFFFF)

	dst := make([]byte, 64)
	decompressDXT3Block(src[:], dst, 16)

	for i := 0; i < 16; i++ {
		n := uint8(i)
		want := n | n<<4
		if got := dst[i*4+3]; got != want {
			t.Errorf("pixel %d alpha: got %d, want %d", i, got, want)
		}
		if dst[i*4] != 255 {
			t.Errorf("pixel %d red: got %d, want 255", i, dst[i*4])
		}
	}
}

func TestDecompressDXT5Block(t *testing.T) {
	t.Run("EightStepPalette", func(t *testing.T) {
		// a0 > a1: palette[i+2] = ((6-i)*a0 + (i+1)*a1) / 7.
		var src [16]byte
		src[0] = 224
		src[1] = 0
		// Pixel i uses alpha index i%8.
		var alphaIndices uint64
		for i := 0; i < 16; i++ {
			alphaIndices |= uint64(i%8) << (i * 3)
		}
		for i := 0; i < 6; i++ {
			src[2+i] = uint8(alphaIndices >> (i * 8))
		}
		binary.LittleEndian.PutUint16(src[8:10], 0xFFFF)
		binary.LittleEndian.PutUint16(src[10:12], 0xFFFF)

		want := [8]uint8{224, 0, 192, 160, 128, 96, 64, 32}

		dst := make([]byte, 64)
		decompressDXT5Block(src[:], dst, 16)

		for i := 0; i < 16; i++ {
			if got := dst[i*4+3]; got != want[i%8] {
				t.Errorf("pixel %d alpha: got %d, want %d", i, got, want[i%8])
			}
		}
	})

	t.Run("SixStepPalette", func(t *testing.T) {
		// a0 <= a1: six interpolated steps plus fixed 0 and 255.
		var src [16]byte
		src[0] = 100
		src[1] = 200
		var alphaIndices uint64
		for i := 0; i < 16; i++ {
			alphaIndices |= uint64(i%8) << (i * 3)
		}
		for i := 0; i < 6; i++ {
			src[2+i] = uint8(alphaIndices >> (i * 8))
		}
		binary.LittleEndian.PutUint16(src[8:10], 0xFFFF)
		binary.LittleEndian.PutUint16(src[10:12], 0xFFFF)

		want := [8]uint8{100, 200, 120, 140, 160, 180, 0, 255}

		dst := make([]byte, 64)
		decompressDXT5Block(src[:], dst, 16)

		for i := 0; i < 16; i++ {
			if got := dst[i*4+3]; got != want[i%8] {
				t.Errorf("pixel %d alpha: got %d, want %d", i, got, want[i%8])
			}
		}
	})
}

func TestCompressDXT5Block(t *testing.T) {
	t.Run("BinaryAlphaExact", func(t *testing.T) {
		// With only 0/255 alpha the endpoints are exact and every pixel
		// snaps to one of them.
		block := make([]byte, 64)
		for i := 0; i < 16; i++ {
			block[i*4+0] = 255
			block[i*4+1] = 255
			block[i*4+2] = 255
			if i%2 == 0 {
				block[i*4+3] = 255
			}
		}

		var compressed [16]byte
		compressDXT5Block(block, compressed[:])
		dst := make([]byte, 64)
		decompressDXT5Block(compressed[:], dst, 16)

		for i := 0; i < 16; i++ {
			if dst[i*4+3] != block[i*4+3] {
				t.Errorf("pixel %d alpha: got %d, want %d", i, dst[i*4+3], block[i*4+3])
			}
		}
	})

	t.Run("AlphaGradientBound", func(t *testing.T) {
		block := make([]byte, 64)
		for i := 0; i < 16; i++ {
			block[i*4+0] = 128
			block[i*4+1] = 128
			block[i*4+2] = 128
			block[i*4+3] = uint8(i * 17)
		}

		var compressed [16]byte
		compressDXT5Block(block, compressed[:])

		if compressed[0] != 255 || compressed[1] != 0 {
			t.Errorf("alpha endpoints: got (%d,%d), want (255,0)", compressed[0], compressed[1])
		}

		dst := make([]byte, 64)
		decompressDXT5Block(compressed[:], dst, 16)

		// 8-level interpolation over the full range: half a step plus
		// rounding slack.
		bound := 255 / 7
		for i := 0; i < 16; i++ {
			diff := int(dst[i*4+3]) - int(block[i*4+3])
			if diff < 0 {
				diff = -diff
			}
			if diff > bound {
				t.Errorf("pixel %d alpha: error %d exceeds bound %d", i, diff, bound)
			}
		}
	})
}

func TestDecompressDXTPartialBlocks(t *testing.T) {
	// A 2x2 DXT1 image occupies one padded block; only the visible pixels
	// may be written.
	var src [8]byte
	binary.LittleEndian.PutUint16(src[0:2], 0xF800)
	binary.LittleEndian.PutUint16(src[2:4], 0xF800)

	dst := make([]byte, 2*2*4)
	decompressDXT(src[:], dst, 2, 2, FormatDXT1)

	for i := 0; i < 4; i++ {
		p := dst[i*4:]
		if p[0] != 255 || p[1] != 0 || p[2] != 0 || p[3] != 255 {
			t.Errorf("pixel %d: got (%d,%d,%d,%d), want (255,0,0,255)", i, p[0], p[1], p[2], p[3])
		}
	}
}
