package message

import (
	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/xmlutil"
)

type decodeFunc func(d *decoder, e *element) Method

// cpeMethods are the methods an ACS accepts from a CPE
var cpeMethods = map[string]decodeFunc{
	"Inform":                         decodeInform,
	"GetRPCMethods":                  decodeGetRPCMethods,
	"TransferComplete":               decodeTransferComplete,
	"AutonomousTransferComplete":     decodeAutonomousTransferComplete,
	"RequestDownload":                decodeRequestDownload,
	"GetParameterNamesResponse":      decodeGetParameterNamesResponse,
	"GetParameterValuesResponse":     decodeGetParameterValuesResponse,
	"SetParameterValuesResponse":     decodeSetParameterValuesResponse,
	"SetParameterAttributesResponse": decodeSetParameterAttributesResponse,
	"GetParameterAttributesResponse": decodeGetParameterAttributesResponse,
	"AddObjectResponse":              decodeAddObjectResponse,
	"DeleteObjectResponse":           decodeDeleteObjectResponse,
	"RebootResponse":                 decodeRebootResponse,
	"FactoryResetResponse":           decodeFactoryResetResponse,
	"DownloadResponse":               decodeDownloadResponse,
	"Fault":                          decodeFault,
}

// acsMethods are the methods a CPE accepts from an ACS
var acsMethods = map[string]decodeFunc{
	"GetParameterNames":                  decodeGetParameterNames,
	"GetParameterValues":                 decodeGetParameterValues,
	"SetParameterValues":                 decodeSetParameterValues,
	"SetParameterAttributes":             decodeSetParameterAttributes,
	"GetParameterAttributes":             decodeGetParameterAttributes,
	"AddObject":                          decodeAddObject,
	"DeleteObject":                       decodeDeleteObject,
	"Reboot":                             decodeReboot,
	"FactoryReset":                       decodeFactoryReset,
	"Download":                           decodeDownload,
	"InformResponse":                     decodeInformResponse,
	"GetRPCMethodsResponse":              decodeGetRPCMethodsResponse,
	"TransferCompleteResponse":           decodeTransferCompleteResponse,
	"AutonomousTransferCompleteResponse": decodeAutonomousTransferCompleteResponse,
	"RequestDownloadResponse":            decodeRequestDownloadResponse,
	"Fault":                              decodeFault,
}

// DecodeCPE decodes a method element received from a CPE.
//
// Recoverable coercion problems are returned as warnings alongside the
// decoded method. An unknown method name is a protocol error with fault
// code 8000.
func DecodeCPE(e *xmlutil.Element) (Method, []*cwmperr.Error, error) {
	return decode(cpeMethods, e)
}

// DecodeACS decodes a method element sent by an ACS
func DecodeACS(e *xmlutil.Element) (Method, []*cwmperr.Error, error) {
	return decode(acsMethods, e)
}

func decode(table map[string]decodeFunc, e *xmlutil.Element) (Method, []*cwmperr.Error, error) {
	fn, ok := table[e.LocalName]
	if !ok {
		return nil, nil, cwmperr.MethodNotSupported(e.LocalName)
	}
	d := &decoder{}
	m := fn(d, e)
	if d.err != nil {
		return nil, d.warnings, d.err
	}
	return m, d.warnings, nil
}
