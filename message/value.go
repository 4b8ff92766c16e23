package message

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// XML schema types given special treatment when parameter values are
// decoded and encoded
const (
	TypeBoolean     = "xsd:boolean"
	TypeInt         = "xsd:int"
	TypeUnsignedInt = "xsd:unsignedInt"
	TypeDateTime    = "xsd:dateTime"
	TypeString      = "xsd:string"
)

const (
	warnInvalidValue    = "Invalid value attribute"
	warnInvalidWritable = "Invalid writable attribute"
)

// timeLayout renders date-times in UTC with trailing zero fractional
// seconds removed
const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

var parseTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}

// ParseBool parses the boolean spellings CWMP devices are known to send
func ParseBool(s string) (v bool, ok bool) {
	switch s {
	case "true", "TRUE", "True", "1":
		return true, true
	case "false", "FALSE", "False", "0":
		return false, true
	}
	return false, false
}

// ParseTime parses an ISO-8601 date-time. Values without a zone are
// taken to be UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range parseTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CoerceValue converts raw according to the schema type typ. ok is false
// if typ calls for coercion and raw could not be converted, in which
// case raw is returned unchanged.
func CoerceValue(raw, typ string) (v interface{}, ok bool) {
	switch typ {
	case TypeBoolean:
		if b, ok := ParseBool(raw); ok {
			return b, true
		}
	case TypeInt, TypeUnsignedInt:
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			return n, true
		}
	case TypeDateTime:
		if t, ok := ParseTime(raw); ok {
			return t, true
		}
	default:
		return raw, true
	}
	return raw, false
}

// FormatValue renders a parameter value for the wire
func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return formatBool(v)
	case time.Time:
		return formatTime(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// clampNotification bounds a notification setting to the range [0,6]
func clampNotification(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 6:
		return 6
	}
	return n
}
