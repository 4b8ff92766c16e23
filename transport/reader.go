package transport

import (
	"bufio"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// ErrUnsupportedEncoding is returned for a Content-Encoding other than
// identity, gzip or deflate
var ErrUnsupportedEncoding = errors.New("unsupported content encoding")

// ErrBodyTooLarge is returned by ReadAll when the decoded body exceeds
// the limit
var ErrBodyTooLarge = errors.New("body too large")

// Reader decodes an HTTP body according to its Content-Encoding,
// offering an io.ReadCloser interface. Close releases the decompressor
// but does not close the source.
type Reader struct {
	src io.Reader
	dec io.ReadCloser
}

// NewReader returns a new Reader for the source io.Reader, whose data
// was encoded with contentEncoding.
//
// "deflate" bodies are expected in the zlib format, though raw deflate
// streams sent by some CPEs are also accepted.
func NewReader(source io.Reader, contentEncoding string) (*Reader, error) {
	r := &Reader{src: source}
	var err error
	switch normalizeEncoding(contentEncoding) {
	case "", "identity":
		r.dec = io.NopCloser(source)
	case "gzip", "x-gzip":
		r.dec, err = gzip.NewReader(source)
	case "deflate":
		r.dec, err = newDeflateReader(source)
	default:
		return nil, errors.Wrapf(ErrUnsupportedEncoding, "%q", contentEncoding)
	}
	if err != nil {
		return nil, errors.Wrap(err, "content encoding "+contentEncoding)
	}
	return r, nil
}

func (r *Reader) Read(b []byte) (int, error) { return r.dec.Read(b) }

// Close closes the decompressor
func (r *Reader) Close() error { return r.dec.Close() }

// ReadAll reads at most limit decoded bytes from r. It is an error for
// the decoded body to exceed limit.
func (r *Reader) ReadAll(limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if int64(len(b)) > limit {
		return nil, errors.Wrapf(ErrBodyTooLarge, "exceeds %d bytes", limit)
	}
	return b, nil
}

func newDeflateReader(source io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(source)
	hdr, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if isZlibHeader(hdr) {
		return zlib.NewReader(br)
	}
	return flate.NewReader(br), nil
}

// isZlibHeader reports whether b starts with an RFC1950 header using
// the deflate compression method
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := uint16(b[0]), uint16(b[1])
	return cmf&0x0f == 8 && (cmf<<8|flg)%31 == 0
}

func normalizeEncoding(contentEncoding string) string {
	return strings.ToLower(strings.TrimSpace(contentEncoding))
}
