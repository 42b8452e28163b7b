package vtf

import "errors"

// Error kinds reported by the codec. Decode and Encode wrap these with
// context; match with errors.Is.
var (
	// ErrTooSmall means the buffer is shorter than the fixed VTF header.
	ErrTooSmall = errors.New("vtf: buffer too small for header")

	// ErrBadSignature means the first four bytes are not "VTF\x00".
	ErrBadSignature = errors.New("vtf: invalid signature")

	// ErrUnsupportedVersion means the file version is outside 7.0-7.5.
	ErrUnsupportedVersion = errors.New("vtf: unsupported version")

	// ErrTruncated means the header-declared body extends past the buffer.
	ErrTruncated = errors.New("vtf: truncated image data")

	// ErrUnsupportedFormat means the pixel format has no conversion path.
	// On decode this is soft: Decode still returns a magenta-filled image
	// alongside the error so callers can display something.
	ErrUnsupportedFormat = errors.New("vtf: unsupported pixel format")
)
