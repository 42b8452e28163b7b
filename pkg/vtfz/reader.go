package vtfz

import (
	"bytes"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// vtfSignature is the magic of the contained payload, checked after
// decompression.
var vtfSignature = []byte{'V', 'T', 'F', 0}

// Reader decompresses a VTF payload from a .vtfz container.
type Reader struct {
	header  *Header
	zReader io.ReadCloser
}

// NewReader reads and validates the container header from r and returns a
// reader for the decompressed VTF bytes.
func NewReader(r io.Reader) (*Reader, error) {
	var headerBuf [HeaderSize]byte
	if _, err := io.ReadFull(r, headerBuf[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := &Header{}
	if err := header.UnmarshalBinary(headerBuf[:]); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	return &Reader{
		header:  header,
		zReader: zstd.NewReader(r),
	}, nil
}

// Header returns the container header.
func (r *Reader) Header() *Header {
	return r.header
}

// Read reads decompressed VTF bytes into p.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.zReader.Read(p)
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.zReader.Close()
}

// RawSize returns the size of the contained VTF file.
func (r *Reader) RawSize() int {
	return int(r.header.RawSize)
}

// ReadAll reads a complete container from r and returns the contained VTF
// bytes, verifying the payload actually starts with the VTF signature.
func ReadAll(r io.Reader) ([]byte, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data := make([]byte, reader.RawSize())
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	if len(data) < len(vtfSignature) || !bytes.Equal(data[:4], vtfSignature) {
		return nil, fmt.Errorf("vtfz: payload is not a VTF file")
	}

	return data, nil
}
