package vtf

// MipCount returns the number of mip levels for a full chain from
// width x height down to 1x1, including the top level.
func MipCount(width, height int) int {
	count := 1
	for width > 1 || height > 1 {
		if width > 1 {
			width /= 2
		}
		if height > 1 {
			height /= 2
		}
		count++
	}
	return count
}

// mipDimensions returns the dimensions of mip level `level` for a texture of
// the given top-level size. Each level halves both axes, clamped to 1.
func mipDimensions(width, height, level int) (int, int) {
	w := width >> level
	h := height >> level
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// buildMipChain generates the full mip pyramid for an RGBA8 image. Level 0
// is the input slice itself, not a copy. Each destination pixel is the
// truncating integer average of its 2x2 source footprint; odd source
// dimensions shrink the footprint at the edge rather than reading out of
// bounds.
func buildMipChain(rgba []byte, width, height int) [][]byte {
	mips := [][]byte{rgba}

	mipWidth := width
	mipHeight := height
	for mipWidth > 1 || mipHeight > 1 {
		newWidth := mipWidth
		if newWidth > 1 {
			newWidth /= 2
		}
		newHeight := mipHeight
		if newHeight > 1 {
			newHeight /= 2
		}

		src := mips[len(mips)-1]
		dst := make([]byte, newWidth*newHeight*4)

		for y := 0; y < newHeight; y++ {
			for x := 0; x < newWidth; x++ {
				srcX := x * 2
				srcY := y * 2

				for c := 0; c < 4; c++ {
					sum := 0
					count := 0
					for dy := 0; dy < 2 && srcY+dy < mipHeight; dy++ {
						for dx := 0; dx < 2 && srcX+dx < mipWidth; dx++ {
							sum += int(src[((srcY+dy)*mipWidth+(srcX+dx))*4+c])
							count++
						}
					}
					dst[(y*newWidth+x)*4+c] = uint8(sum / count)
				}
			}
		}

		mips = append(mips, dst)
		mipWidth = newWidth
		mipHeight = newHeight
	}

	return mips
}
