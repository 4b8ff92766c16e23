package transport

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Writer encodes an HTTP body with a Content-Encoding. Close must be
// called to flush the compressor; it does not close the destination.
type Writer struct {
	enc io.WriteCloser
	// Encoding is the normalized Content-Encoding header value to send,
	// empty for identity.
	Encoding string
}

// NewWriter returns a new Writer compressing into dst according to
// contentEncoding.
func NewWriter(dst io.Writer, contentEncoding string) (*Writer, error) {
	w := &Writer{}
	switch enc := normalizeEncoding(contentEncoding); enc {
	case "", "identity":
		w.enc = nopWriteCloser{dst}
	case "gzip", "x-gzip":
		w.enc, w.Encoding = gzip.NewWriter(dst), enc
	case "deflate":
		w.enc, w.Encoding = zlib.NewWriter(dst), enc
	default:
		return nil, errors.Wrapf(ErrUnsupportedEncoding, "%q", contentEncoding)
	}
	return w, nil
}

func (w *Writer) Write(b []byte) (int, error) { return w.enc.Write(b) }

// Close flushes and closes the compressor
func (w *Writer) Close() error { return w.enc.Close() }

// Compress returns body encoded with contentEncoding
func Compress(body []byte, contentEncoding string) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, contentEncoding)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(body); err == nil {
		err = w.Close()
	}
	if err != nil {
		return nil, errors.Wrap(err, "compress body")
	}
	return buf.Bytes(), nil
}
