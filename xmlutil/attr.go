package xmlutil

import (
	"strings"

	"github.com/andaru/acs/cwmperr"
)

// Attribute is an XML attribute parsed from an element's attribute list
type Attribute struct {
	Name      string
	Namespace string
	LocalName string
	Value     string
}

// ParseAttrs parses a raw attribute list such as
//
//	xmlns:cwmp="urn:dslforum-org:cwmp-1-0" xsi:type='xsd:string'
//
// returning the attributes in document order with entity decoded values.
// Offsets in returned errors are relative to the start of s.
func ParseAttrs(s string) ([]Attribute, error) {
	var attrs []Attribute
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i == len(s) {
			return attrs, nil
		}

		nameAt, colonAt := i, -1
		for i < len(s) && s[i] != '=' && !isSpace(s[i]) {
			if s[i] == ':' && colonAt < 0 {
				colonAt = i
			}
			i++
		}
		name := s[nameAt:i]
		if name == "" {
			return nil, cwmperr.Parse(i, "missing attribute name")
		}
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i == len(s) || s[i] != '=' {
			return nil, cwmperr.Parse(i, "missing value for attribute "+name)
		}
		i++
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i == len(s) || (s[i] != '"' && s[i] != '\'') {
			return nil, cwmperr.Parse(i, "missing quote for attribute "+name)
		}
		quote := s[i]
		valueAt := i + 1
		end := strings.IndexByte(s[valueAt:], quote)
		if end < 0 {
			return nil, cwmperr.Parse(i, "unterminated value for attribute "+name)
		}
		i = valueAt + end + 1

		a := Attribute{Name: name, LocalName: name, Value: DecodeEntities(s[valueAt : valueAt+end])}
		if colonAt >= 0 {
			a.Namespace = s[nameAt:colonAt]
			a.LocalName = s[colonAt+1 : nameAt+len(name)]
		}
		attrs = append(attrs, a)
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
