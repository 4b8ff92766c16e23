package xmlutil

import (
	"strconv"
	"strings"
)

var namedEntities = map[string]string{
	"quot": `"`,
	"amp":  "&",
	"apos": "'",
	"lt":   "<",
	"gt":   ">",
}

var entityEncoder = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
)

// EncodeEntities escapes the five predefined XML entities in s
func EncodeEntities(s string) string { return entityEncoder.Replace(s) }

// DecodeEntities replaces predefined entities and decimal or hexadecimal
// character references in s. Unrecognised sequences are left verbatim.
func DecodeEntities(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		amp := strings.IndexByte(s, '&')
		if amp < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:amp])
		s = s[amp:]
		semi := strings.IndexByte(s, ';')
		if semi < 0 {
			b.WriteString(s)
			return b.String()
		}
		if r, ok := decodeEntity(s[1:semi]); ok {
			b.WriteString(r)
			s = s[semi+1:]
			continue
		}
		b.WriteByte('&')
		s = s[1:]
	}
}

func decodeEntity(ref string) (string, bool) {
	if v, ok := namedEntities[ref]; ok {
		return v, true
	}
	if len(ref) < 2 || ref[0] != '#' {
		return "", false
	}
	var (
		n   uint64
		err error
	)
	if ref[1] == 'x' || ref[1] == 'X' {
		n, err = strconv.ParseUint(ref[2:], 16, 32)
	} else {
		n, err = strconv.ParseUint(ref[1:], 10, 32)
	}
	if err != nil || n > 0x10FFFF {
		return "", false
	}
	return string(rune(n)), true
}
