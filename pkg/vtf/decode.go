package vtf

import "fmt"

// Image is a decoded texture: RGBA8, straight (non-premultiplied) alpha,
// row-major, width*height*4 bytes.
type Image struct {
	Width    int
	Height   int
	Format   ImageFormat // on-disk format the pixels were decoded from
	HasAlpha bool
	Pix      []byte
}

// DecodeHeader parses and validates the VTF header without touching the
// image body.
func DecodeHeader(data []byte) (*Header, error) {
	h := &Header{}
	if err := h.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return h, nil
}

// Decode parses a complete VTF file and returns the first frame of the
// largest mip level as RGBA8.
//
// If the file's pixel format has no conversion path, Decode returns both a
// magenta-filled image and an error wrapping ErrUnsupportedFormat; callers
// that want the best-effort pixels can keep the image. All other errors
// return a nil image.
func Decode(data []byte) (*Image, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	width := int(h.Width)
	height := int(h.Height)
	format := h.HighResFormat

	frames := int(h.Frames)
	if frames < 1 {
		frames = 1
	}
	mipmapCount := int(h.MipmapCount)
	if mipmapCount < 1 {
		mipmapCount = 1
	}

	// The header length is trusted as the body start offset.
	dataOffset := int(h.HeaderLength)

	// An optional low-res thumbnail precedes the high-res mip data.
	if h.LowResFormat != FormatNone && h.LowResWidth > 0 && h.LowResHeight > 0 {
		dataOffset += ImageSize(int(h.LowResWidth), int(h.LowResHeight), h.LowResFormat)
	}

	// Total high-res data: every mip level times the frame count.
	imageDataSize := 0
	mipWidth := width
	mipHeight := height
	for mip := mipmapCount - 1; mip >= 0; mip-- {
		imageDataSize += ImageSize(mipWidth, mipHeight, format) * frames
		mipWidth = halve(mipWidth)
		mipHeight = halve(mipHeight)
	}

	if dataOffset+imageDataSize > len(data) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d",
			ErrTruncated, dataOffset+imageDataSize, len(data))
	}

	// Mip levels are stored smallest to largest: skip every level below
	// mip 0 (times the frame count) to find the full-resolution image.
	offset := dataOffset
	mipWidth = width
	mipHeight = height
	for mip := mipmapCount - 1; mip > 0; mip-- {
		mipWidth = halve(mipWidth)
		mipHeight = halve(mipHeight)
		offset += ImageSize(mipWidth, mipHeight, format) * frames
	}

	img := &Image{
		Width:    width,
		Height:   height,
		Format:   format,
		HasAlpha: format.HasAlpha(),
		Pix:      make([]byte, width*height*4),
	}

	if err := convertToRGBA(data[offset:], img.Pix, width, height, format); err != nil {
		// Soft failure: the image is magenta-filled but complete.
		return img, err
	}
	return img, nil
}

func halve(v int) int {
	if v > 1 {
		return v / 2
	}
	return 1
}
