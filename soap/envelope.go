package soap

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/message"
	"github.com/andaru/acs/xmlutil"
)

// Message is a decoded CWMP envelope received from a CPE.
//
// At most one of CpeRequest, CpeResponse and CpeFault is set. None are
// set for an empty message, which a CPE sends to indicate it has no
// more requests.
type Message struct {
	ID             string
	CwmpVersion    string
	SessionTimeout int

	CpeRequest  message.CpeRequest
	CpeResponse message.CpeResponse
	CpeFault    *message.CpeFault
}

// Empty reports whether the message carried no method
func (m *Message) Empty() bool {
	return m.CpeRequest == nil && m.CpeResponse == nil && m.CpeFault == nil
}

// Method returns the decoded method, or nil for an empty message
func (m *Message) Method() message.Method {
	switch {
	case m.CpeRequest != nil:
		return m.CpeRequest
	case m.CpeResponse != nil:
		return m.CpeResponse
	case m.CpeFault != nil:
		return *m.CpeFault
	}
	return nil
}

// Decode decodes a SOAP envelope sent by a CPE.
//
// cwmpVersion is the version already negotiated for the session, or the
// empty string; in the latter case the version is determined from the
// namespace of the method element, except for a Fault.
//
// Recoverable parameter coercion warnings are returned separately from
// the error, which is always fatal to the exchange.
func Decode(body string, cwmpVersion string) (*Message, []*cwmperr.Error, error) {
	msg := &Message{CwmpVersion: cwmpVersion}
	if strings.TrimSpace(body) == "" {
		return msg, nil, nil
	}
	root, err := xmlutil.Parse(body)
	if err != nil {
		return nil, nil, err
	}
	if len(root.Children) == 0 {
		return msg, nil, nil
	}

	envelope := root.Children[0]
	var header, soapBody *xmlutil.Element
	for _, c := range envelope.Children {
		switch c.LocalName {
		case "Header":
			header = c
		case "Body":
			soapBody = c
		}
	}
	if soapBody == nil {
		return nil, nil, cwmperr.Protocol("missing SOAP Body")
	}
	if header != nil {
		for _, c := range header.Children {
			switch c.LocalName {
			case "ID":
				msg.ID = xmlutil.DecodeEntities(c.Text)
			case "sessionTimeout":
				msg.SessionTimeout, _ = strconv.Atoi(strings.TrimSpace(c.Text))
			}
		}
	}
	// an empty Body is treated like an empty HTTP body
	if len(soapBody.Children) == 0 {
		return msg, nil, nil
	}

	methodElement := soapBody.Children[0]
	if msg.CwmpVersion == "" && methodElement.LocalName != "Fault" {
		if msg.CwmpVersion, err = negotiate(msg.SessionTimeout, methodElement, soapBody, envelope); err != nil {
			return nil, nil, err
		}
	}

	m, warnings, err := message.DecodeCPE(methodElement)
	if err != nil {
		return nil, warnings, err
	}
	switch m := m.(type) {
	case message.CpeRequest:
		msg.CpeRequest = m
	case message.CpeResponse:
		msg.CpeResponse = m
	case message.CpeFault:
		msg.CpeFault = &m
	}
	return msg, warnings, nil
}

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Encode wraps the method m in an envelope using the namespaces of
// cwmpVersion, with id in the cwmp:ID header. A nil m is the null RPC
// and encodes to a nil body.
func Encode(id, cwmpVersion string, m message.Method) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	ns, err := Namespaces(cwmpVersion)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteString(xmlDeclaration)
	b.WriteString("<soap-env:Envelope" + ns.String() + ">")
	b.WriteString(`<soap-env:Header><cwmp:ID soap-env:mustUnderstand="1">`)
	b.WriteString(xmlutil.EncodeEntities(id))
	b.WriteString("</cwmp:ID></soap-env:Header>")
	b.WriteString("<soap-env:Body>")
	b.WriteString(message.Encode(m))
	b.WriteString("</soap-env:Body></soap-env:Envelope>")
	return b.Bytes(), nil
}
