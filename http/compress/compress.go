// Package compress wraps a response body writer in the transport encoding negotiated with the client.
package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// An Encoding is a transport-level compression algorithm.
type Encoding string

const (
	Identity Encoding = "identity"
	Deflate  Encoding = "deflate"
	Gzip     Encoding = "gzip"
)

func (e Encoding) String() string { return string(e) }

// NewWriter wraps w in a writer compressing with enc.
//
// Closing the returned writer ends the compressed stream but never closes w.
// Any Encoding other than Deflate or Gzip passes bytes through unchanged.
//
// Deflate produces zlib-framed data, which is what HTTP calls "deflate".
func NewWriter(enc Encoding, w io.Writer) (io.WriteCloser, error) {
	switch enc {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Deflate:
		zw, err := zlib.NewWriterLevel(w, zlib.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("cannot create deflate writer: %w", err)
		}
		return zw, nil
	default:
		return passthrough{w}, nil
	}
}

// passthrough writes through to the underlying writer,
// flushing it on Close when it supports that.
type passthrough struct {
	w io.Writer
}

func (p passthrough) Write(b []byte) (int, error) { return p.w.Write(b) }

func (p passthrough) Close() error {
	if f, ok := p.w.(interface{ Flush() }); ok {
		f.Flush()
	}
	return nil
}
