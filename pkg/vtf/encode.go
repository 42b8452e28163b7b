package vtf

import "fmt"

// encodeConfig holds the encoder settings for a single Encode call. Sticky
// defaults across invocations are the caller's business; the codec holds no
// process-wide state.
type encodeConfig struct {
	format    ImageFormat
	formatSet bool
	flags     uint32
	hasAlpha  bool
	mipmaps   bool
}

// EncodeOption configures a single Encode call.
type EncodeOption func(*encodeConfig)

// WithFormat sets the target image format. Without it the encoder emits
// DXT5, downgraded to DXT1 when the source reports no alpha.
func WithFormat(format ImageFormat) EncodeOption {
	return func(c *encodeConfig) {
		c.format = format
		c.formatSet = true
	}
}

// WithFlags sets the header texture flags.
func WithFlags(flags uint32) EncodeOption {
	return func(c *encodeConfig) {
		c.flags = flags
	}
}

// WithAlpha declares whether the source pixels carry meaningful alpha.
func WithAlpha(hasAlpha bool) EncodeOption {
	return func(c *encodeConfig) {
		c.hasAlpha = hasAlpha
	}
}

// WithoutMipmaps disables mipmap generation; the file carries only the
// full-resolution level.
func WithoutMipmaps() EncodeOption {
	return func(c *encodeConfig) {
		c.mipmaps = false
	}
}

// Encode builds a complete VTF 7.2 byte stream from an RGBA8 buffer:
// 80-byte header followed by every mip level's image data, smallest level
// first. Readers locate mip 0 by skipping the smaller levels, so the
// ordering is a hard format requirement.
func Encode(rgba []byte, width, height int, opts ...EncodeOption) ([]byte, error) {
	cfg := encodeConfig{
		format:   FormatDXT5,
		flags:    TexFlagNormal,
		hasAlpha: true,
		mipmaps:  true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if width < 1 || height < 1 {
		return nil, fmt.Errorf("vtf: invalid dimensions %dx%d", width, height)
	}
	if len(rgba) < width*height*4 {
		return nil, fmt.Errorf("vtf: source buffer too small: need %d bytes, got %d",
			width*height*4, len(rgba))
	}
	if !cfg.formatSet && !cfg.hasAlpha {
		cfg.format = FormatDXT1
	}

	var mips [][]byte
	if cfg.mipmaps {
		mips = buildMipChain(rgba, width, height)
	} else {
		mips = [][]byte{rgba}
	}

	header := Header{
		Signature:     Signature,
		MajorVersion:  7,
		MinorVersion:  2,
		HeaderLength:  HeaderSize,
		Width:         uint16(width),
		Height:        uint16(height),
		Flags:         cfg.flags,
		Frames:        1,
		FirstFrame:    0,
		Reflectivity:  [3]float32{0.5, 0.5, 0.5},
		BumpmapScale:  1.0,
		HighResFormat: cfg.format,
		MipmapCount:   uint8(len(mips)),
		LowResFormat:  FormatNone,
		LowResWidth:   0,
		LowResHeight:  0,
		Depth:         1,
	}

	out := make([]byte, HeaderSize, EncodedSize(width, height, cfg.format, cfg.mipmaps))
	header.EncodeTo(out)

	// Smallest mip first.
	for mip := len(mips) - 1; mip >= 0; mip-- {
		mipWidth, mipHeight := mipDimensions(width, height, mip)

		data, err := compressImage(mips[mip], mipWidth, mipHeight, cfg.format)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
	}

	return out, nil
}

// compressImage converts one RGBA8 mip level to its on-disk representation.
func compressImage(rgba []byte, width, height int, format ImageFormat) ([]byte, error) {
	switch format {
	case FormatDXT1, FormatDXT1OneBitAlpha:
		return compressDXT1Image(rgba, width, height), nil
	case FormatDXT5:
		return compressDXT5Image(rgba, width, height), nil
	case FormatDXT3:
		// Decoded but never produced; the writer emits DXT1/DXT5 only.
		return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, format)
	default:
		out := make([]byte, ImageSize(width, height, format))
		if err := convertFromRGBA(rgba, out, width, height, format); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// EncodedSize returns the byte size of the VTF file Encode produces for the
// given top-level dimensions, format and mipmap setting.
func EncodedSize(width, height int, format ImageFormat, mipmaps bool) int {
	size := HeaderSize
	levels := 1
	if mipmaps {
		levels = MipCount(width, height)
	}
	for mip := 0; mip < levels; mip++ {
		w, h := mipDimensions(width, height, mip)
		size += ImageSize(w, h, format)
	}
	return size
}
