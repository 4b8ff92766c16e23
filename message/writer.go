package message

import (
	"strconv"
	"strings"
	"time"

	"github.com/andaru/acs/xmlutil"
)

// writer renders method bodies. All text written via text, and the
// helpers built on it, is entity encoded.
type writer struct{ strings.Builder }

func (w *writer) open(name string) { w.WriteString("<" + name + ">") }

func (w *writer) close(name string) { w.WriteString("</" + name + ">") }

// empty writes an element with no content as an open and close tag pair
func (w *writer) empty(name string) {
	w.open(name)
	w.close(name)
}

func (w *writer) text(name, value string) {
	w.open(name)
	w.WriteString(xmlutil.EncodeEntities(value))
	w.close(name)
}

func (w *writer) int(name string, v int64) { w.text(name, strconv.FormatInt(v, 10)) }

func (w *writer) bool(name string, v bool) { w.text(name, formatBool(v)) }

func (w *writer) time(name string, t time.Time) { w.text(name, formatTime(t)) }

// array opens a SOAP encoded array element of n items of itemType
func (w *writer) array(name, itemType string, n int) {
	w.WriteString("<" + name + ` soap-enc:arrayType="` + itemType + "[" + strconv.Itoa(n) + `]">`)
}

func (w *writer) strings(name string, values []string) {
	w.array(name, "xsd:string", len(values))
	for _, v := range values {
		w.text("string", v)
	}
	w.close(name)
}

func (w *writer) faultStruct(name string, f *FaultStruct) {
	w.open(name)
	w.int("FaultCode", int64(f.FaultCode))
	w.text("FaultString", f.FaultString)
	for _, spv := range f.SetParameterValuesFault {
		w.open("SetParameterValuesFault")
		w.text("ParameterName", spv.ParameterName)
		w.int("FaultCode", int64(spv.FaultCode))
		w.text("FaultString", spv.FaultString)
		w.close("SetParameterValuesFault")
	}
	w.close(name)
}

func (w *writer) parameterValues(list []ParameterValue) {
	w.array("ParameterList", "cwmp:ParameterValueStruct", len(list))
	for _, p := range list {
		w.open("ParameterValueStruct")
		w.text("Name", p.Name)
		if p.Type != "" {
			w.WriteString(`<Value xsi:type="` + xmlutil.EncodeEntities(p.Type) + `">`)
		} else {
			w.open("Value")
		}
		w.WriteString(xmlutil.EncodeEntities(FormatValue(p.Value)))
		w.close("Value")
		w.close("ParameterValueStruct")
	}
	w.close("ParameterList")
}
