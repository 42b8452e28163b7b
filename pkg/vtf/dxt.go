package vtf

import "encoding/binary"

// DXT block codec. All routines operate on 4x4 pixel blocks of RGBA8 data.
// They are total functions over fixed-size buffers: garbage input produces
// deterministic pixels, never an error.

// decodeColor565 expands a little-endian RGB565 color to 8-bit channels,
// replicating the high bits into the vacated low bits.
func decodeColor565(c uint16) (r, g, b uint8) {
	r = uint8(c>>11) << 3
	g = uint8((c>>5)&0x3F) << 2
	b = uint8(c&0x1F) << 3
	r |= r >> 5
	g |= g >> 6
	b |= b >> 5
	return r, g, b
}

// decompressDXT1Block decodes an 8-byte DXT1 block into dst at the given
// pitch. hasAlpha selects the 3-color + transparent mode when the endpoint
// ordering calls for it; plain DXT1 always decodes opaque.
func decompressDXT1Block(src []byte, dst []byte, dstPitch int, hasAlpha bool) {
	color0 := binary.LittleEndian.Uint16(src[0:2])
	color1 := binary.LittleEndian.Uint16(src[2:4])
	indices := binary.LittleEndian.Uint32(src[4:8])

	var palette [4][4]uint8

	palette[0][0], palette[0][1], palette[0][2] = decodeColor565(color0)
	palette[0][3] = 255
	palette[1][0], palette[1][1], palette[1][2] = decodeColor565(color1)
	palette[1][3] = 255

	if color0 > color1 || !hasAlpha {
		// 4-color mode (standard, or forced for opaque blocks).
		for c := 0; c < 3; c++ {
			palette[2][c] = uint8((2*int(palette[0][c]) + int(palette[1][c])) / 3)
			palette[3][c] = uint8((int(palette[0][c]) + 2*int(palette[1][c])) / 3)
		}
		palette[2][3] = 255
		palette[3][3] = 255
	} else {
		// 3-color + transparent mode.
		for c := 0; c < 3; c++ {
			palette[2][c] = uint8((int(palette[0][c]) + int(palette[1][c])) / 2)
			palette[3][c] = 0
		}
		palette[2][3] = 255
		palette[3][3] = 0
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			idx := (indices >> ((y*4 + x) * 2)) & 0x3
			p := dst[y*dstPitch+x*4:]
			p[0] = palette[idx][0]
			p[1] = palette[idx][1]
			p[2] = palette[idx][2]
			p[3] = palette[idx][3]
		}
	}
}

// decompressDXT3Block decodes a 16-byte DXT3 block: 8 bytes of explicit
// 4-bit alpha followed by a DXT1 color block.
func decompressDXT3Block(src []byte, dst []byte, dstPitch int) {
	decompressDXT1Block(src[8:], dst, dstPitch, false)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := y*4 + x
			var a uint8
			if i&1 != 0 {
				a = (src[i/2] >> 4) & 0xF
			} else {
				a = src[i/2] & 0xF
			}
			// Expand the nibble into both halves.
			dst[y*dstPitch+x*4+3] = a | a<<4
		}
	}
}

// decompressDXT5Block decodes a 16-byte DXT5 block: interpolated alpha
// followed by a DXT1 color block.
func decompressDXT5Block(src []byte, dst []byte, dstPitch int) {
	alpha0 := src[0]
	alpha1 := src[1]

	var alphaPalette [8]uint8
	alphaPalette[0] = alpha0
	alphaPalette[1] = alpha1
	if alpha0 > alpha1 {
		// 8-alpha mode.
		for i := 0; i < 6; i++ {
			alphaPalette[i+2] = uint8(((6-i)*int(alpha0) + (i+1)*int(alpha1)) / 7)
		}
	} else {
		// 6-alpha + 0 + 255 mode.
		for i := 0; i < 4; i++ {
			alphaPalette[i+2] = uint8(((4-i)*int(alpha0) + (i+1)*int(alpha1)) / 5)
		}
		alphaPalette[6] = 0
		alphaPalette[7] = 255
	}

	var alphaIndices uint64
	for i := 0; i < 6; i++ {
		alphaIndices |= uint64(src[2+i]) << (i * 8)
	}

	decompressDXT1Block(src[8:], dst, dstPitch, false)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			idx := (alphaIndices >> ((y*4 + x) * 3)) & 0x7
			dst[y*dstPitch+x*4+3] = alphaPalette[idx]
		}
	}
}

// decompressDXT decodes a full DXT image into an RGBA8 buffer of
// width*height*4 bytes. Partial edge blocks are decoded through a scratch
// block and copied row by row so the block routines never write out of
// bounds.
func decompressDXT(src []byte, dst []byte, width, height int, format ImageFormat) {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	dstPitch := width * 4

	var tempBlock [4 * 4 * 4]byte
	offset := 0

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			blockX := bx * 4
			blockY := by * 4
			partial := blockX+4 > width || blockY+4 > height

			var dstBlock []byte
			dstBlockPitch := dstPitch
			if partial {
				dstBlock = tempBlock[:]
				dstBlockPitch = 16
			} else {
				dstBlock = dst[blockY*dstPitch+blockX*4:]
			}

			switch format {
			case FormatDXT1, FormatDXT1OneBitAlpha:
				decompressDXT1Block(src[offset:], dstBlock, dstBlockPitch, format == FormatDXT1OneBitAlpha)
				offset += 8
			case FormatDXT3:
				decompressDXT3Block(src[offset:], dstBlock, dstBlockPitch)
				offset += 16
			case FormatDXT5:
				decompressDXT5Block(src[offset:], dstBlock, dstBlockPitch)
				offset += 16
			}

			if partial {
				copyWidth := 4
				if blockX+4 > width {
					copyWidth = width - blockX
				}
				copyHeight := 4
				if blockY+4 > height {
					copyHeight = height - blockY
				}
				for y := 0; y < copyHeight; y++ {
					copy(dst[(blockY+y)*dstPitch+blockX*4:], tempBlock[y*16:y*16+copyWidth*4])
				}
			}
		}
	}
}

// compressDXT1Block compresses a 4x4 RGBA8 block (64 bytes) into an 8-byte
// DXT1 block using min/max color endpoints, no dithering.
func compressDXT1Block(rgba []byte, out []byte) {
	minColor := [3]uint8{255, 255, 255}
	maxColor := [3]uint8{0, 0, 0}

	for i := 0; i < 16; i++ {
		for c := 0; c < 3; c++ {
			v := rgba[i*4+c]
			if v < minColor[c] {
				minColor[c] = v
			}
			if v > maxColor[c] {
				maxColor[c] = v
			}
		}
	}

	color0 := uint16(maxColor[0]>>3)<<11 | uint16(maxColor[1]>>2)<<5 | uint16(maxColor[2]>>3)
	color1 := uint16(minColor[0]>>3)<<11 | uint16(minColor[1]>>2)<<5 | uint16(minColor[2]>>3)

	// color0 > color1 selects 4-color mode on decode.
	if color0 < color1 {
		color0, color1 = color1, color0
		minColor, maxColor = maxColor, minColor
	}

	binary.LittleEndian.PutUint16(out[0:2], color0)
	binary.LittleEndian.PutUint16(out[2:4], color1)

	var palette [4][3]uint8
	for c := 0; c < 3; c++ {
		palette[0][c] = maxColor[c]
		palette[1][c] = minColor[c]
		palette[2][c] = uint8((2*int(maxColor[c]) + int(minColor[c])) / 3)
		palette[3][c] = uint8((int(maxColor[c]) + 2*int(minColor[c])) / 3)
	}

	var indices uint32
	for i := 0; i < 16; i++ {
		bestIdx := 0
		bestDist := int(^uint(0) >> 1)
		for j := 0; j < 4; j++ {
			dist := 0
			for c := 0; c < 3; c++ {
				diff := int(rgba[i*4+c]) - int(palette[j][c])
				dist += diff * diff
			}
			if dist < bestDist {
				bestDist = dist
				bestIdx = j
			}
		}
		indices |= uint32(bestIdx) << (i * 2)
	}

	binary.LittleEndian.PutUint32(out[4:8], indices)
}

// compressDXT5Block compresses a 4x4 RGBA8 block (64 bytes) into a 16-byte
// DXT5 block: min/max alpha endpoints plus a DXT1 color block.
func compressDXT5Block(rgba []byte, out []byte) {
	minAlpha, maxAlpha := uint8(255), uint8(0)
	for i := 0; i < 16; i++ {
		a := rgba[i*4+3]
		if a < minAlpha {
			minAlpha = a
		}
		if a > maxAlpha {
			maxAlpha = a
		}
	}

	// maxAlpha first so decode takes the 8-step branch.
	out[0] = maxAlpha
	out[1] = minAlpha

	var alphaPalette [8]uint8
	alphaPalette[0] = maxAlpha
	alphaPalette[1] = minAlpha
	if maxAlpha > minAlpha {
		for i := 0; i < 6; i++ {
			alphaPalette[i+2] = uint8(((6-i)*int(maxAlpha) + (i+1)*int(minAlpha)) / 7)
		}
	} else {
		for i := 0; i < 4; i++ {
			alphaPalette[i+2] = uint8(((4-i)*int(maxAlpha) + (i+1)*int(minAlpha)) / 5)
		}
		alphaPalette[6] = 0
		alphaPalette[7] = 255
	}

	var alphaIndices uint64
	for i := 0; i < 16; i++ {
		bestIdx := 0
		bestDist := int(^uint(0) >> 1)
		for j := 0; j < 8; j++ {
			dist := int(rgba[i*4+3]) - int(alphaPalette[j])
			if dist < 0 {
				dist = -dist
			}
			if dist < bestDist {
				bestDist = dist
				bestIdx = j
			}
		}
		alphaIndices |= uint64(bestIdx) << (i * 3)
	}

	for i := 0; i < 6; i++ {
		out[2+i] = uint8(alphaIndices >> (i * 8))
	}

	compressDXT1Block(rgba, out[8:])
}

// extractBlock copies the 4x4 block at (bx,by) from an RGBA8 image into a
// 64-byte scratch buffer, zero-filling pixels outside the image.
func extractBlock(rgba []byte, width, height, bx, by int, block []byte) {
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			srcX := bx*4 + x
			srcY := by*4 + y
			dst := block[(y*4+x)*4:]
			if srcX < width && srcY < height {
				src := rgba[(srcY*width+srcX)*4:]
				dst[0] = src[0]
				dst[1] = src[1]
				dst[2] = src[2]
				dst[3] = src[3]
			} else {
				dst[0] = 0
				dst[1] = 0
				dst[2] = 0
				dst[3] = 0
			}
		}
	}
}

// compressDXT1Image compresses a full RGBA8 image to DXT1 block data.
func compressDXT1Image(rgba []byte, width, height int) []byte {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	out := make([]byte, blocksX*blocksY*8)

	var block [64]byte
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			extractBlock(rgba, width, height, bx, by, block[:])
			compressDXT1Block(block[:], out[(by*blocksX+bx)*8:])
		}
	}
	return out
}

// compressDXT5Image compresses a full RGBA8 image to DXT5 block data.
func compressDXT5Image(rgba []byte, width, height int) []byte {
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	out := make([]byte, blocksX*blocksY*16)

	var block [64]byte
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			extractBlock(rgba, width, height, bx, by, block[:])
			compressDXT5Block(block[:], out[(by*blocksX+bx)*16:])
		}
	}
	return out
}
