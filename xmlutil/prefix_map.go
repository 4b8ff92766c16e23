package xmlutil

import (
	"sort"
	"strings"
)

// PrefixMap is a prefix to namespace URI map.
// The default namespace is held under the empty prefix.
type PrefixMap map[string]string

// NewPrefixMap returns a PrefixMap containing the namespace declarations
// found in the passed XML attributes
func NewPrefixMap(attrs ...Attribute) PrefixMap {
	pmap := PrefixMap{}
	for _, attr := range attrs {
		switch {
		case attr.Namespace == "xmlns":
			pmap[attr.LocalName] = attr.Value
		case attr.Name == "xmlns":
			pmap[""] = attr.Value
		}
	}
	return pmap
}

// Attr returns the prefix map contents as a series of xmlns:<prefix>=<nsuri> attributes,
// sorted lexically by prefix.
func (m PrefixMap) Attr() (a []Attribute) {
	for k, v := range m {
		attr := Attribute{Name: "xmlns", LocalName: "xmlns", Value: v}
		if k != "" {
			attr = Attribute{Name: "xmlns:" + k, Namespace: "xmlns", LocalName: k, Value: v}
		}
		a = append(a, attr)
	}
	if len(a) > 0 {
		// sort lexically by prefix
		sort.Slice(a, func(i int, j int) bool { return a[i].Name < a[j].Name })
	}
	return a
}

// String renders the declarations as an attribute list suitable for an
// opening tag, each preceded by a single space.
func (m PrefixMap) String() string {
	var b strings.Builder
	for _, attr := range m.Attr() {
		b.WriteString(" " + attr.Name + `="` + EncodeEntities(attr.Value) + `"`)
	}
	return b.String()
}

// Namespace returns the namespace URI for the given prefix
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

// Lookup returns the namespace URI for prefix and whether it was declared
func (m PrefixMap) Lookup(prefix string) (string, bool) {
	v, ok := m[prefix]
	return v, ok
}

// Prefix returns any prefixes found for the namespace URI
func (m PrefixMap) Prefix(nsURI string) (pfxes []string) {
	for k, v := range m {
		if nsURI == v {
			pfxes = append(pfxes, k)
		}
	}
	sort.Strings(pfxes)
	return pfxes
}
