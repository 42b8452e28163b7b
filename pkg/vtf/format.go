// Package vtf implements the Valve Texture Format binary codec.
//
// The codec is buffer-in/buffer-out: Decode parses a VTF byte stream into an
// RGBA8 image, Encode produces a complete VTF byte stream from RGBA8 pixels,
// including mipmap generation and DXT block compression. File I/O is the
// caller's responsibility.
//
// Supported container versions are 7.0 through 7.5 on decode; the encoder
// always emits version 7.2 with the padded 80-byte header.
package vtf

import "fmt"

// ImageFormat identifies a VTF pixel or block format. The numeric values are
// part of the on-disk format.
type ImageFormat int32

const (
	FormatNone ImageFormat = -1

	FormatRGBA8888 ImageFormat = iota - 1
	FormatABGR8888
	FormatRGB888
	FormatBGR888
	FormatRGB565
	FormatI8
	FormatIA88
	FormatP8
	FormatA8
	FormatRGB888Bluescreen
	FormatBGR888Bluescreen
	FormatARGB8888
	FormatBGRA8888
	FormatDXT1
	FormatDXT3
	FormatDXT5
	FormatBGRX8888
	FormatBGR565
	FormatBGRX5551
	FormatBGRA4444
	FormatDXT1OneBitAlpha
	FormatBGRA5551
	FormatUV88
	FormatUVWQ8888
	FormatRGBA16161616F
	FormatRGBA16161616
	FormatUVLX8888

	formatCount
)

// Texture flags stored in the header flags bitset.
const (
	TexFlagPointSample       = 0x00000001
	TexFlagTrilinear         = 0x00000002
	TexFlagClampS            = 0x00000004
	TexFlagClampT            = 0x00000008
	TexFlagAnisotropic       = 0x00000010
	TexFlagHintDXT5          = 0x00000020
	TexFlagPWLCorrected      = 0x00000040
	TexFlagNormal            = 0x00000080
	TexFlagNoMip             = 0x00000100
	TexFlagNoLOD             = 0x00000200
	TexFlagAllMips           = 0x00000400
	TexFlagProcedural        = 0x00000800
	TexFlagOneBitAlpha       = 0x00001000
	TexFlagEightBitAlpha     = 0x00002000
	TexFlagEnvMap            = 0x00004000
	TexFlagRenderTarget      = 0x00008000
	TexFlagDepthRenderTarget = 0x00010000
	TexFlagNoDebugOverride   = 0x00020000
	TexFlagSingleCopy        = 0x00040000
	TexFlagPreSRGB           = 0x00080000
	TexFlagClampU            = 0x02000000
	TexFlagVertexTexture     = 0x04000000
	TexFlagSSBump            = 0x08000000
	TexFlagBorder            = 0x20000000
)

// BytesPerPixel returns the storage size of one pixel for uncompressed
// formats. Block-compressed formats return 0; their size is per 4x4 block
// (see ImageSize).
func (f ImageFormat) BytesPerPixel() int {
	switch f {
	case FormatRGBA8888, FormatABGR8888, FormatARGB8888, FormatBGRA8888,
		FormatBGRX8888, FormatUVWQ8888, FormatUVLX8888:
		return 4
	case FormatRGB888, FormatBGR888, FormatRGB888Bluescreen, FormatBGR888Bluescreen:
		return 3
	case FormatRGB565, FormatBGR565, FormatBGRX5551, FormatBGRA5551,
		FormatBGRA4444, FormatIA88, FormatUV88:
		return 2
	case FormatI8, FormatP8, FormatA8:
		return 1
	case FormatRGBA16161616F, FormatRGBA16161616:
		return 8
	default:
		return 0
	}
}

// HasAlpha reports whether the format carries an alpha channel.
func (f ImageFormat) HasAlpha() bool {
	switch f {
	case FormatRGBA8888, FormatABGR8888, FormatARGB8888, FormatBGRA8888,
		FormatBGRA5551, FormatBGRA4444, FormatDXT1OneBitAlpha, FormatDXT3,
		FormatDXT5, FormatA8, FormatIA88, FormatRGBA16161616F, FormatRGBA16161616:
		return true
	default:
		return false
	}
}

// Compressed reports whether the format is DXT block compressed.
func (f ImageFormat) Compressed() bool {
	switch f {
	case FormatDXT1, FormatDXT1OneBitAlpha, FormatDXT3, FormatDXT5:
		return true
	default:
		return false
	}
}

// ImageSize returns the byte size of a single image of the given dimensions
// in format f. Dimensions are clamped to at least 1. Block formats are padded
// up to whole 4x4 blocks: 8 bytes per DXT1 block, 16 per DXT3/DXT5 block.
func ImageSize(width, height int, f ImageFormat) int {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	switch f {
	case FormatDXT1, FormatDXT1OneBitAlpha:
		return ((width + 3) / 4) * ((height + 3) / 4) * 8
	case FormatDXT3, FormatDXT5:
		return ((width + 3) / 4) * ((height + 3) / 4) * 16
	default:
		return width * height * f.BytesPerPixel()
	}
}

// String returns the canonical format name.
func (f ImageFormat) String() string {
	switch f {
	case FormatNone:
		return "NONE"
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatABGR8888:
		return "ABGR8888"
	case FormatRGB888:
		return "RGB888"
	case FormatBGR888:
		return "BGR888"
	case FormatRGB565:
		return "RGB565"
	case FormatI8:
		return "I8"
	case FormatIA88:
		return "IA88"
	case FormatP8:
		return "P8"
	case FormatA8:
		return "A8"
	case FormatRGB888Bluescreen:
		return "RGB888_BLUESCREEN"
	case FormatBGR888Bluescreen:
		return "BGR888_BLUESCREEN"
	case FormatARGB8888:
		return "ARGB8888"
	case FormatBGRA8888:
		return "BGRA8888"
	case FormatDXT1:
		return "DXT1"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT5:
		return "DXT5"
	case FormatBGRX8888:
		return "BGRX8888"
	case FormatBGR565:
		return "BGR565"
	case FormatBGRX5551:
		return "BGRX5551"
	case FormatBGRA4444:
		return "BGRA4444"
	case FormatDXT1OneBitAlpha:
		return "DXT1_ONEBITALPHA"
	case FormatBGRA5551:
		return "BGRA5551"
	case FormatUV88:
		return "UV88"
	case FormatUVWQ8888:
		return "UVWQ8888"
	case FormatRGBA16161616F:
		return "RGBA16161616F"
	case FormatRGBA16161616:
		return "RGBA16161616"
	case FormatUVLX8888:
		return "UVLX8888"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int32(f))
	}
}
