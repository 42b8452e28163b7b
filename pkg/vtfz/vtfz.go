// Package vtfz implements a zstd-compressed container for VTF texture
// payloads, used for workflow storage of .vtfz files.
//
// Layout: a fixed 24-byte little-endian header (magic "VTFZ", header payload
// length, raw size, compressed size) followed by a zstd stream holding a
// complete VTF file.
package vtfz

import (
	"encoding/binary"
	"fmt"
)

// Magic bytes identifying a compressed VTF container.
var Magic = [4]byte{'V', 'T', 'F', 'Z'}

// HeaderSize is the fixed binary size of a container header.
const HeaderSize = 24 // 4 + 4 + 8 + 8 bytes

// Header describes the compressed VTF payload that follows it.
type Header struct {
	Magic          [4]byte
	HeaderLength   uint32 // payload bytes after the magic and this field (16)
	RawSize        uint64 // size of the contained VTF file
	CompressedSize uint64 // size of the zstd stream
}

// Size returns the binary size of the header.
func (h *Header) Size() int {
	return HeaderSize
}

// Validate checks the header for validity.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("vtfz: invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.HeaderLength != 16 {
		return fmt.Errorf("vtfz: invalid header length: expected 16, got %d", h.HeaderLength)
	}
	if h.RawSize == 0 {
		return fmt.Errorf("vtfz: raw size is zero")
	}
	if h.CompressedSize == 0 {
		return fmt.Errorf("vtfz: compressed size is zero")
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// EncodeTo writes the header to buf, which must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.HeaderLength)
	binary.LittleEndian.PutUint64(buf[8:16], h.RawSize)
	binary.LittleEndian.PutUint64(buf[16:24], h.CompressedSize)
}

// UnmarshalBinary decodes and validates the header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("vtfz: header too short: need %d bytes, got %d", HeaderSize, len(data))
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// DecodeFrom reads the header from data without validating.
func (h *Header) DecodeFrom(data []byte) {
	copy(h.Magic[:], data[0:4])
	h.HeaderLength = binary.LittleEndian.Uint32(data[4:8])
	h.RawSize = binary.LittleEndian.Uint64(data[8:16])
	h.CompressedSize = binary.LittleEndian.Uint64(data[16:24])
}

// NewHeader creates a container header for a VTF payload of rawSize bytes.
// The compressed size is filled in when the writer is closed.
func NewHeader(rawSize uint64) *Header {
	return &Header{
		Magic:        Magic,
		HeaderLength: 16,
		RawSize:      rawSize,
	}
}
