package transport

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/andaru/acs/xmlutil"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnsupportedCharset is returned when a body's character set is unknown
var ErrUnsupportedCharset = errors.New("unsupported charset")

var reCharset = regexp.MustCompile(`(?i)charset=['"]?([^'"\s;]+)`)

// Charset returns the character set named by the Content-Type header
// value, or else by the XML declaration of body. It returns "utf-8" if
// neither names one.
func Charset(contentType string, body []byte) string {
	if m := reCharset.FindStringSubmatch(contentType); m != nil {
		return strings.ToLower(m[1])
	}
	if enc := xmlutil.DeclaredEncoding(body); enc != "" {
		return strings.ToLower(enc)
	}
	return "utf-8"
}

// DecodeCharset converts body to a UTF-8 string using the character set
// resolved by Charset.
func DecodeCharset(body []byte, contentType string) (string, error) {
	name := Charset(contentType, body)
	switch name {
	case "utf-8", "utf8":
		return string(bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", errors.Wrapf(ErrUnsupportedCharset, "%q", name)
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", errors.Wrapf(err, "decode %s body", name)
	}
	return string(out), nil
}
