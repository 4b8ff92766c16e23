package xmlutil

import (
	"bytes"
	"strings"
)

// DeclaredEncoding returns the encoding named by the XML declaration at
// the start of doc, or the empty string if there is none.
func DeclaredEncoding(doc []byte) string {
	doc = bytes.TrimLeft(doc, "\ufeff \t\r\n")
	if !bytes.HasPrefix(doc, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(doc, []byte("?>"))
	if end < 0 {
		return ""
	}
	attrs, err := ParseAttrs(string(doc[len("<?xml"):end]))
	if err != nil {
		return ""
	}
	for _, a := range attrs {
		if a.Name == "encoding" {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}
