package vtfz

import (
	"bytes"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// DefaultCompressionLevel is the default zstd level for writing containers.
// Textures are written once and read many times, so favor ratio.
const DefaultCompressionLevel = zstd.DefaultCompression

// Writer compresses a VTF payload into a .vtfz container.
type Writer struct {
	dst     io.WriteSeeker
	zWriter *zstd.Writer
	header  *Header
	level   int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompressionLevel sets the zstd compression level.
func WithCompressionLevel(level int) WriterOption {
	return func(w *Writer) {
		w.level = level
	}
}

// NewWriter creates a container writer for a VTF payload of rawSize bytes.
// The header is rewritten with the compressed size on Close, so dst must be
// seekable.
func NewWriter(dst io.WriteSeeker, rawSize uint64, opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		dst:    dst,
		level:  DefaultCompressionLevel,
		header: NewHeader(rawSize),
	}
	for _, opt := range opts {
		opt(w)
	}

	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal header: %w", err)
	}
	if _, err := dst.Write(headerBytes); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	w.zWriter = zstd.NewWriterLevel(dst, w.level)
	return w, nil
}

// Write compresses p into the container.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.zWriter.Write(p)
}

// Close flushes the zstd stream and rewrites the header with the final
// compressed size.
func (w *Writer) Close() error {
	if err := w.zWriter.Close(); err != nil {
		return fmt.Errorf("close compressor: %w", err)
	}

	pos, err := w.dst.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("get position: %w", err)
	}
	w.header.CompressedSize = uint64(pos) - uint64(w.header.Size())

	if _, err := w.dst.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek to start: %w", err)
	}
	headerBytes, err := w.header.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if _, err := w.dst.Write(headerBytes); err != nil {
		return fmt.Errorf("rewrite header: %w", err)
	}
	if _, err := w.dst.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	return nil
}

// Encode compresses a complete VTF file into a container written to dst.
// The payload must start with the VTF signature.
func Encode(dst io.WriteSeeker, vtfData []byte, opts ...WriterOption) error {
	if len(vtfData) < len(vtfSignature) || !bytes.Equal(vtfData[:4], vtfSignature) {
		return fmt.Errorf("vtfz: payload is not a VTF file")
	}

	w, err := NewWriter(dst, uint64(len(vtfData)), opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(vtfData); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return w.Close()
}
