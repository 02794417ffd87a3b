// Package capture loads capture files from disk, undoing any whole-file
// compression applied when the capture was archived.
package capture

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"sqtt/internal/common"
	"sqtt/internal/sqtt"
)

// Compression identifies a whole-file compression format.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
	CompressionSnappy
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

var (
	lz4Magic    = []byte{0x04, 0x22, 0x4D, 0x18}
	zstdMagic   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// zstd.Decoder is safe for concurrent DecodeAll calls.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("capture: zstd decoder initialization failed: " + err.Error())
	}
}

// Detect identifies the compression of data from its leading magic bytes.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, snappyMagic):
		return CompressionSnappy
	default:
		return CompressionNone
	}
}

func badCompression(c Compression, err error) error {
	return common.NewErrorMsg(sqtt.ErrSevError, sqtt.ErrBadCompression, fmt.Sprintf("%v: %v", c, err))
}

// Decompress returns the uncompressed contents of data. Uncompressed input
// is returned as is.
func Decompress(data []byte) ([]byte, Compression, error) {
	c := Detect(data)
	var (
		out []byte
		err error
	)
	switch c {
	case CompressionNone:
		return data, c, nil
	case CompressionLZ4:
		out, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case CompressionZstd:
		out, err = zstdDecoder.DecodeAll(data, nil)
	case CompressionSnappy:
		out, err = io.ReadAll(snappy.NewReader(bytes.NewReader(data)))
	}
	if err != nil {
		return nil, c, badCompression(c, err)
	}
	return out, c, nil
}

// Compress encodes data in the framed format of c.
func Compress(data []byte, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		w = lz4.NewWriter(&buf)
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		w = zw
	case CompressionSnappy:
		w = snappy.NewBufferedWriter(&buf)
	default:
		return nil, fmt.Errorf("unsupported compression: %v", c)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%v compress: %w", c, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%v compress: %w", c, err)
	}
	return buf.Bytes(), nil
}

// File is a loaded capture.
type File struct {
	Path        string
	Compression Compression
	Data        []byte
}

// Load reads the capture at path and decompresses it.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.NewErrorMsg(sqtt.ErrSevError, sqtt.ErrFileError, err.Error())
	}
	data, c, err := Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Path: path, Compression: c, Data: data}, nil
}
