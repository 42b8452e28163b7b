package vtf

import "fmt"

// convertToRGBA decodes width*height pixels of src in the given format into
// dst as RGBA8. Unrecognized formats fill dst with opaque magenta and return
// ErrUnsupportedFormat; dst is always fully written.
func convertToRGBA(src []byte, dst []byte, width, height int, format ImageFormat) error {
	pixelCount := width * height

	switch format {
	case FormatRGBA8888:
		copy(dst, src[:pixelCount*4])

	case FormatABGR8888:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i*4+3]
			dst[i*4+1] = src[i*4+2]
			dst[i*4+2] = src[i*4+1]
			dst[i*4+3] = src[i*4+0]
		}

	case FormatRGB888:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i*3+0]
			dst[i*4+1] = src[i*3+1]
			dst[i*4+2] = src[i*3+2]
			dst[i*4+3] = 255
		}

	case FormatBGR888:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i*3+2]
			dst[i*4+1] = src[i*3+1]
			dst[i*4+2] = src[i*3+0]
			dst[i*4+3] = 255
		}

	case FormatARGB8888:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i*4+1]
			dst[i*4+1] = src[i*4+2]
			dst[i*4+2] = src[i*4+3]
			dst[i*4+3] = src[i*4+0]
		}

	case FormatBGRA8888:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i*4+2]
			dst[i*4+1] = src[i*4+1]
			dst[i*4+2] = src[i*4+0]
			dst[i*4+3] = src[i*4+3]
		}

	case FormatBGRX8888:
		// X channel ignored, alpha forced opaque.
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i*4+2]
			dst[i*4+1] = src[i*4+1]
			dst[i*4+2] = src[i*4+0]
			dst[i*4+3] = 255
		}

	case FormatDXT1, FormatDXT1OneBitAlpha, FormatDXT3, FormatDXT5:
		decompressDXT(src, dst, width, height, format)

	case FormatI8:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i]
			dst[i*4+1] = src[i]
			dst[i*4+2] = src[i]
			dst[i*4+3] = 255
		}

	case FormatIA88:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = src[i*2+0]
			dst[i*4+1] = src[i*2+0]
			dst[i*4+2] = src[i*2+0]
			dst[i*4+3] = src[i*2+1]
		}

	case FormatA8:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = 255
			dst[i*4+1] = 255
			dst[i*4+2] = 255
			dst[i*4+3] = src[i]
		}

	default:
		// Best-effort fallback so the caller still has something to show.
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = 255
			dst[i*4+1] = 0
			dst[i*4+2] = 255
			dst[i*4+3] = 255
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return nil
}

// convertFromRGBA encodes width*height RGBA8 pixels into dst in the given
// uncompressed format. The supported set is closed: RGBA8888, BGRA8888,
// RGB888 and BGR888; everything else is rejected rather than silently
// emitting wrong bytes. Block formats go through the DXT compressor instead.
func convertFromRGBA(rgba []byte, dst []byte, width, height int, format ImageFormat) error {
	pixelCount := width * height

	switch format {
	case FormatRGBA8888:
		copy(dst, rgba[:pixelCount*4])

	case FormatBGRA8888:
		for i := 0; i < pixelCount; i++ {
			dst[i*4+0] = rgba[i*4+2]
			dst[i*4+1] = rgba[i*4+1]
			dst[i*4+2] = rgba[i*4+0]
			dst[i*4+3] = rgba[i*4+3]
		}

	case FormatRGB888:
		for i := 0; i < pixelCount; i++ {
			dst[i*3+0] = rgba[i*4+0]
			dst[i*3+1] = rgba[i*4+1]
			dst[i*3+2] = rgba[i*4+2]
		}

	case FormatBGR888:
		for i := 0; i < pixelCount; i++ {
			dst[i*3+0] = rgba[i*4+2]
			dst[i*3+1] = rgba[i*4+1]
			dst[i*3+2] = rgba[i*4+0]
		}

	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, format)
	}

	return nil
}
