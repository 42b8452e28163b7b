package vtf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Signature is the four-byte magic at the start of every VTF file.
var Signature = [4]byte{'V', 'T', 'F', 0}

// HeaderSize is the fixed binary size of the header this codec reads and
// writes: the padded version 7.2 layout. Later versions extend the header,
// but every field this codec consumes lives inside the first 80 bytes and
// HeaderLength locates the body regardless of version.
const HeaderSize = 80

// Header is the VTF file header. All integers are little-endian on disk.
//
// Byte layout (offsets within the 80-byte record):
//
//	0x00  signature          [4]byte  "VTF\x00"
//	0x04  version major      uint32
//	0x08  version minor      uint32
//	0x0C  header length      uint32   byte offset where body data begins
//	0x10  width              uint16
//	0x12  height             uint16
//	0x14  flags              uint32
//	0x18  frames             uint16
//	0x1A  first frame        uint16
//	0x1C  padding            [4]byte
//	0x20  reflectivity       [3]float32
//	0x2C  padding            [4]byte
//	0x30  bumpmap scale      float32
//	0x34  high-res format    int32
//	0x38  mipmap count       uint8
//	0x39  low-res format     int32    (unaligned, packed layout)
//	0x3D  low-res width      uint8
//	0x3E  low-res height     uint8
//	0x3F  depth              uint16   (7.2+, always 1 for 2D)
//	0x41  padding            [3]byte
//	0x44  resource count     uint32   (7.3+, unused by this codec)
//	0x48  padding            [8]byte
type Header struct {
	Signature     [4]byte
	MajorVersion  uint32
	MinorVersion  uint32
	HeaderLength  uint32
	Width         uint16
	Height        uint16
	Flags         uint32
	Frames        uint16
	FirstFrame    uint16
	Reflectivity  [3]float32
	BumpmapScale  float32
	HighResFormat ImageFormat
	MipmapCount   uint8
	LowResFormat  ImageFormat
	LowResWidth   uint8
	LowResHeight  uint8
	Depth         uint16
	NumResources  uint32
}

// Size returns the binary size of the header.
func (h *Header) Size() int {
	return HeaderSize
}

// Validate checks the signature and version gate.
func (h *Header) Validate() error {
	if h.Signature != Signature {
		return fmt.Errorf("%w: got %q", ErrBadSignature, h.Signature[:])
	}
	if h.MajorVersion != 7 || h.MinorVersion > 5 {
		return fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, h.MajorVersion, h.MinorVersion)
	}
	return nil
}

// MarshalBinary encodes the header to its 80-byte binary form.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to buf, which must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Signature[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.MajorVersion)
	binary.LittleEndian.PutUint32(buf[8:12], h.MinorVersion)
	binary.LittleEndian.PutUint32(buf[12:16], h.HeaderLength)
	binary.LittleEndian.PutUint16(buf[16:18], h.Width)
	binary.LittleEndian.PutUint16(buf[18:20], h.Height)
	binary.LittleEndian.PutUint32(buf[20:24], h.Flags)
	binary.LittleEndian.PutUint16(buf[24:26], h.Frames)
	binary.LittleEndian.PutUint16(buf[26:28], h.FirstFrame)
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(h.Reflectivity[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(h.Reflectivity[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(h.Reflectivity[2]))
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(h.BumpmapScale))
	binary.LittleEndian.PutUint32(buf[52:56], uint32(h.HighResFormat))
	buf[56] = h.MipmapCount
	binary.LittleEndian.PutUint32(buf[57:61], uint32(h.LowResFormat))
	buf[61] = h.LowResWidth
	buf[62] = h.LowResHeight
	binary.LittleEndian.PutUint16(buf[63:65], h.Depth)
	binary.LittleEndian.PutUint32(buf[68:72], h.NumResources)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrTooSmall, HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from data without validating.
// data must be at least HeaderSize bytes.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Signature[:], data[0:4])
	h.MajorVersion = binary.LittleEndian.Uint32(data[4:8])
	h.MinorVersion = binary.LittleEndian.Uint32(data[8:12])
	h.HeaderLength = binary.LittleEndian.Uint32(data[12:16])
	h.Width = binary.LittleEndian.Uint16(data[16:18])
	h.Height = binary.LittleEndian.Uint16(data[18:20])
	h.Flags = binary.LittleEndian.Uint32(data[20:24])
	h.Frames = binary.LittleEndian.Uint16(data[24:26])
	h.FirstFrame = binary.LittleEndian.Uint16(data[26:28])
	h.Reflectivity[0] = math.Float32frombits(binary.LittleEndian.Uint32(data[32:36]))
	h.Reflectivity[1] = math.Float32frombits(binary.LittleEndian.Uint32(data[36:40]))
	h.Reflectivity[2] = math.Float32frombits(binary.LittleEndian.Uint32(data[40:44]))
	h.BumpmapScale = math.Float32frombits(binary.LittleEndian.Uint32(data[48:52]))
	h.HighResFormat = ImageFormat(binary.LittleEndian.Uint32(data[52:56]))
	h.MipmapCount = data[56]
	h.LowResFormat = ImageFormat(binary.LittleEndian.Uint32(data[57:61]))
	h.LowResWidth = data[61]
	h.LowResHeight = data[62]
	h.Depth = binary.LittleEndian.Uint16(data[63:65])
	h.NumResources = binary.LittleEndian.Uint32(data[68:72])
}

// String returns a human-readable header summary.
func (h *Header) String() string {
	return fmt.Sprintf("VTF %d.%d %dx%d %s, %d mips, %d frames, flags 0x%08x",
		h.MajorVersion, h.MinorVersion, h.Width, h.Height,
		h.HighResFormat, h.MipmapCount, h.Frames, h.Flags)
}
