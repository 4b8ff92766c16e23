package soap

import (
	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/xmlutil"
)

// Namespace URIs used in CWMP envelopes
const (
	NamespaceSOAPEncoding = "http://schemas.xmlsoap.org/soap/encoding/"
	NamespaceSOAPEnvelope = "http://schemas.xmlsoap.org/soap/envelope/"
	NamespaceXSD          = "http://www.w3.org/2001/XMLSchema"
	NamespaceXSI          = "http://www.w3.org/2001/XMLSchema-instance"

	NamespaceCWMP10 = "urn:dslforum-org:cwmp-1-0"
	NamespaceCWMP11 = "urn:dslforum-org:cwmp-1-1"
	NamespaceCWMP12 = "urn:dslforum-org:cwmp-1-2"
	NamespaceCWMP13 = "urn:dslforum-org:cwmp-1-3"
)

// cwmpNamespaces maps a negotiated version to the cwmp namespace URI used
// on the wire. Versions 1.2 and 1.3 share a namespace.
var cwmpNamespaces = map[string]string{
	"1.0": NamespaceCWMP10,
	"1.1": NamespaceCWMP11,
	"1.2": NamespaceCWMP12,
	"1.3": NamespaceCWMP12,
	"1.4": NamespaceCWMP13,
}

// Namespaces returns the envelope namespace declarations for version
func Namespaces(version string) (xmlutil.PrefixMap, error) {
	cwmp, ok := cwmpNamespaces[version]
	if !ok {
		return nil, cwmperr.Protocol("unknown CWMP version " + version)
	}
	return xmlutil.PrefixMap{
		"soap-enc": NamespaceSOAPEncoding,
		"soap-env": NamespaceSOAPEnvelope,
		"xsd":      NamespaceXSD,
		"xsi":      NamespaceXSI,
		"cwmp":     cwmp,
	}, nil
}

// versionOf maps a cwmp namespace URI to a protocol version. The 1.2
// namespace is read as version 1.3 when the envelope header carried a
// sessionTimeout.
func versionOf(uri string, sessionTimeout int) (string, error) {
	switch uri {
	case NamespaceCWMP10:
		return "1.0", nil
	case NamespaceCWMP11:
		return "1.1", nil
	case NamespaceCWMP12:
		if sessionTimeout > 0 {
			return "1.3", nil
		}
		return "1.2", nil
	case NamespaceCWMP13:
		return "1.4", nil
	}
	return "", cwmperr.UnrecognizedVersion(uri)
}

// negotiate resolves the namespace of the method element and returns
// the protocol version for it. scope holds the method, body and envelope
// elements; declarations are looked up innermost first. If the method's
// prefix is undeclared, the body's and then the envelope's prefix are
// tried in turn.
func negotiate(sessionTimeout int, scope ...*xmlutil.Element) (string, error) {
	maps := make([]xmlutil.PrefixMap, len(scope))
	for i, e := range scope {
		attrs, err := e.Attributes()
		if err != nil {
			return "", err
		}
		maps[i] = xmlutil.NewPrefixMap(attrs...)
	}
	for _, owner := range scope {
		for _, pmap := range maps {
			if uri, ok := pmap.Lookup(owner.Namespace); ok {
				return versionOf(uri, sessionTimeout)
			}
		}
	}
	return versionOf("", sessionTimeout)
}
