package message

import (
	"strconv"
	"strings"
	"time"

	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/xmlutil"
)

// decoder carries state shared by the method decoders: recoverable
// coercion warnings and the first fatal error seen.
type decoder struct {
	warnings []*cwmperr.Error
	err      error
}

func (d *decoder) warn(parameter, msg string) {
	d.warnings = append(d.warnings, cwmperr.InvalidValue(parameter, msg))
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func text(e *element) string { return xmlutil.DecodeEntities(e.Text) }

func (d *decoder) int64(e *element) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(text(e)), 10, 64)
	if err != nil {
		d.warn(e.LocalName, warnInvalidValue)
	}
	return n
}

func (d *decoder) int(e *element) int { return int(d.int64(e)) }

func (d *decoder) bool(e *element) bool {
	b, ok := ParseBool(strings.TrimSpace(text(e)))
	if !ok {
		d.warn(e.LocalName, warnInvalidValue)
	}
	return b
}

func (d *decoder) time(e *element) time.Time {
	t, ok := ParseTime(text(e))
	if !ok {
		d.warn(e.LocalName, warnInvalidValue)
	}
	return t
}

// strings returns the text of each <string> child of e
func (d *decoder) strings(e *element) (out []string) {
	for _, c := range e.Children {
		if c.LocalName == "string" {
			out = append(out, text(c))
		}
	}
	return out
}

// valueType returns the xsi:type (or unprefixed type) attribute of e
func (d *decoder) valueType(e *element) string {
	attrs, err := e.Attributes()
	if err != nil {
		d.fail(err)
		return ""
	}
	for _, a := range attrs {
		if a.LocalName == "type" {
			return a.Value
		}
	}
	return ""
}

func (d *decoder) parameterValues(list *element) (out []ParameterValue) {
	for _, s := range list.Children {
		if s.LocalName != "ParameterValueStruct" {
			continue
		}
		p := ParameterValue{Name: s.ChildText("Name")}
		if v := s.Child("Value"); v != nil {
			var ok bool
			p.Type = d.valueType(v)
			if p.Value, ok = CoerceValue(text(v), p.Type); !ok {
				d.warn(p.Name, warnInvalidValue)
			}
		}
		out = append(out, p)
	}
	return out
}

func (d *decoder) parameterInfos(list *element) (out []ParameterInfo) {
	for _, s := range list.Children {
		if s.LocalName != "ParameterInfoStruct" {
			continue
		}
		p := ParameterInfo{Name: s.ChildText("Name")}
		var ok bool
		if p.Writable, ok = ParseBool(strings.TrimSpace(s.ChildText("Writable"))); !ok {
			d.warn(p.Name, warnInvalidWritable)
		}
		out = append(out, p)
	}
	return out
}

func (d *decoder) parameterAttributes(list *element) (out []ParameterAttribute) {
	for _, s := range list.Children {
		if s.LocalName != "ParameterAttributeStruct" {
			continue
		}
		p := ParameterAttribute{Name: s.ChildText("Name")}
		if n := s.Child("Notification"); n != nil {
			p.Notification = d.int(n)
		}
		if al := s.Child("AccessList"); al != nil {
			p.AccessList = d.strings(al)
		}
		out = append(out, p)
	}
	return out
}

func (d *decoder) setParameterAttributes(list *element) (out []SetParameterAttributesStruct) {
	for _, s := range list.Children {
		if s.LocalName != "SetParameterAttributesStruct" {
			continue
		}
		p := SetParameterAttributesStruct{}
		for _, c := range s.Children {
			switch c.LocalName {
			case "Name":
				p.Name = text(c)
			case "NotificationChange":
				p.NotificationChange = d.bool(c)
			case "Notification":
				p.Notification = d.int(c)
			case "AccessListChange":
				p.AccessListChange = d.bool(c)
			case "AccessList":
				p.AccessList = d.strings(c)
			}
		}
		out = append(out, p)
	}
	return out
}

func (d *decoder) faultStruct(e *element) *FaultStruct {
	f := &FaultStruct{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "FaultCode":
			f.FaultCode = d.int(c)
		case "FaultString":
			f.FaultString = text(c)
		case "SetParameterValuesFault":
			spv := SetParameterValuesFault{}
			for _, cc := range c.Children {
				switch cc.LocalName {
				case "ParameterName":
					spv.ParameterName = text(cc)
				case "FaultCode":
					spv.FaultCode = d.int(cc)
				case "FaultString":
					spv.FaultString = text(cc)
				}
			}
			f.SetParameterValuesFault = append(f.SetParameterValuesFault, spv)
		}
	}
	return f
}
