package message

import (
	"time"

	"github.com/andaru/acs/xmlutil"
)

// Method is a CWMP RPC method body.
//
// The set of Method implementations is closed: every variant is
// declared in this package and belongs to exactly one of CpeRequest,
// CpeResponse, AcsRequest or AcsResponse (CpeFault stands alone).
type Method interface {
	// MethodName returns the local name of the method element, e.g. "Inform"
	MethodName() string
	encode(w *writer)
}

// CpeRequest is a method the CPE sends to begin an exchange
type CpeRequest interface {
	Method
	cpeRequest()
}

// CpeResponse is the CPE's reply to an AcsRequest
type CpeResponse interface {
	Method
	cpeResponse()
}

// AcsRequest is an operator issued command sent to the CPE
type AcsRequest interface {
	Method
	acsRequest()
}

// AcsResponse is the ACS's reply to a CpeRequest
type AcsResponse interface {
	Method
	acsResponse()
}

// Encode renders m as a SOAP Body fragment
func Encode(m Method) string {
	w := &writer{}
	m.encode(w)
	return w.String()
}

// DeviceID identifies the CPE in an Inform
type DeviceID struct {
	Manufacturer string
	OUI          string
	ProductClass string
	SerialNumber string
}

// String returns the conventional OUI-ProductClass-SerialNumber device key
func (d DeviceID) String() string {
	if d.ProductClass == "" {
		return d.OUI + "-" + d.SerialNumber
	}
	return d.OUI + "-" + d.ProductClass + "-" + d.SerialNumber
}

// IsZero reports whether d is empty
func (d DeviceID) IsZero() bool { return d == DeviceID{} }

// EventStruct is a single Inform event
type EventStruct struct {
	EventCode  string
	CommandKey string
}

// ParameterValue is a ParameterValueStruct.
//
// Value holds a bool, int64 or time.Time when Type is xsd:boolean,
// xsd:int or xsd:unsignedInt, or xsd:dateTime and the wire value could
// be coerced; otherwise it holds the raw string.
type ParameterValue struct {
	Name  string
	Value interface{}
	Type  string
}

// ParameterInfo is a ParameterInfoStruct
type ParameterInfo struct {
	Name     string
	Writable bool
}

// ParameterAttribute is a ParameterAttributeStruct
type ParameterAttribute struct {
	Name         string
	Notification int
	AccessList   []string
}

// SetParameterAttributesStruct describes one attribute change
type SetParameterAttributesStruct struct {
	Name               string
	NotificationChange bool
	Notification       int
	AccessListChange   bool
	AccessList         []string
}

// FaultStruct is a CWMP fault detail
type FaultStruct struct {
	FaultCode               int
	FaultString             string
	SetParameterValuesFault []SetParameterValuesFault
}

// SetParameterValuesFault is a per-parameter fault within a FaultStruct
type SetParameterValuesFault struct {
	ParameterName string
	FaultCode     int
	FaultString   string
}

// CPE requests

type Inform struct {
	DeviceID      DeviceID
	Events        []EventStruct
	MaxEnvelopes  int
	CurrentTime   time.Time
	RetryCount    int
	ParameterList []ParameterValue
}

type GetRPCMethods struct{}

type TransferComplete struct {
	CommandKey   string
	FaultStruct  *FaultStruct
	StartTime    time.Time
	CompleteTime time.Time
}

type AutonomousTransferComplete struct {
	AnnounceURL    string
	TransferURL    string
	IsDownload     bool
	FileType       string
	FileSize       int64
	TargetFileName string
	FaultStruct    *FaultStruct
	StartTime      time.Time
	CompleteTime   time.Time
}

type RequestDownload struct {
	FileType string
}

// CPE responses

type GetParameterNamesResponse struct {
	ParameterList []ParameterInfo
}

type GetParameterValuesResponse struct {
	ParameterList []ParameterValue
}

type SetParameterValuesResponse struct {
	Status int
}

type SetParameterAttributesResponse struct{}

type GetParameterAttributesResponse struct {
	ParameterList []ParameterAttribute
}

type AddObjectResponse struct {
	InstanceNumber int
	Status         int
}

type DeleteObjectResponse struct {
	Status int
}

type RebootResponse struct{}

type FactoryResetResponse struct{}

type DownloadResponse struct {
	Status       int
	StartTime    time.Time
	CompleteTime time.Time
}

// CpeFault is a SOAP Fault returned by the CPE in place of a response
type CpeFault struct {
	FaultCode   string
	FaultString string
	Detail      *FaultStruct
}

// ACS requests

type GetParameterNames struct {
	ParameterPath string
	NextLevel     bool
}

type GetParameterValues struct {
	ParameterNames []string
}

type SetParameterValues struct {
	ParameterList []ParameterValue
	ParameterKey  string
}

type SetParameterAttributes struct {
	ParameterList []SetParameterAttributesStruct
}

type GetParameterAttributes struct {
	ParameterNames []string
}

type AddObject struct {
	ObjectName   string
	ParameterKey string
}

type DeleteObject struct {
	ObjectName   string
	ParameterKey string
}

type Reboot struct {
	CommandKey string
}

type FactoryReset struct{}

type Download struct {
	CommandKey     string
	FileType       string
	URL            string
	Username       string
	Password       string
	FileSize       int64
	TargetFileName string
	DelaySeconds   int
	SuccessURL     string
	FailureURL     string
}

// ACS responses

type InformResponse struct {
	MaxEnvelopes int
}

type GetRPCMethodsResponse struct {
	MethodList []string
}

type TransferCompleteResponse struct{}

type AutonomousTransferCompleteResponse struct{}

type RequestDownloadResponse struct{}

func (Inform) MethodName() string                     { return "Inform" }
func (GetRPCMethods) MethodName() string              { return "GetRPCMethods" }
func (TransferComplete) MethodName() string           { return "TransferComplete" }
func (AutonomousTransferComplete) MethodName() string { return "AutonomousTransferComplete" }
func (RequestDownload) MethodName() string            { return "RequestDownload" }

func (GetParameterNamesResponse) MethodName() string      { return "GetParameterNamesResponse" }
func (GetParameterValuesResponse) MethodName() string     { return "GetParameterValuesResponse" }
func (SetParameterValuesResponse) MethodName() string     { return "SetParameterValuesResponse" }
func (SetParameterAttributesResponse) MethodName() string { return "SetParameterAttributesResponse" }
func (GetParameterAttributesResponse) MethodName() string { return "GetParameterAttributesResponse" }
func (AddObjectResponse) MethodName() string              { return "AddObjectResponse" }
func (DeleteObjectResponse) MethodName() string           { return "DeleteObjectResponse" }
func (RebootResponse) MethodName() string                 { return "RebootResponse" }
func (FactoryResetResponse) MethodName() string           { return "FactoryResetResponse" }
func (DownloadResponse) MethodName() string               { return "DownloadResponse" }
func (CpeFault) MethodName() string                       { return "Fault" }

func (GetParameterNames) MethodName() string      { return "GetParameterNames" }
func (GetParameterValues) MethodName() string     { return "GetParameterValues" }
func (SetParameterValues) MethodName() string     { return "SetParameterValues" }
func (SetParameterAttributes) MethodName() string { return "SetParameterAttributes" }
func (GetParameterAttributes) MethodName() string { return "GetParameterAttributes" }
func (AddObject) MethodName() string              { return "AddObject" }
func (DeleteObject) MethodName() string           { return "DeleteObject" }
func (Reboot) MethodName() string                 { return "Reboot" }
func (FactoryReset) MethodName() string           { return "FactoryReset" }
func (Download) MethodName() string               { return "Download" }

func (InformResponse) MethodName() string                     { return "InformResponse" }
func (GetRPCMethodsResponse) MethodName() string              { return "GetRPCMethodsResponse" }
func (TransferCompleteResponse) MethodName() string           { return "TransferCompleteResponse" }
func (AutonomousTransferCompleteResponse) MethodName() string { return "AutonomousTransferCompleteResponse" }
func (RequestDownloadResponse) MethodName() string            { return "RequestDownloadResponse" }

func (Inform) cpeRequest()                     {}
func (GetRPCMethods) cpeRequest()              {}
func (TransferComplete) cpeRequest()           {}
func (AutonomousTransferComplete) cpeRequest() {}
func (RequestDownload) cpeRequest()            {}

func (GetParameterNamesResponse) cpeResponse()      {}
func (GetParameterValuesResponse) cpeResponse()     {}
func (SetParameterValuesResponse) cpeResponse()     {}
func (SetParameterAttributesResponse) cpeResponse() {}
func (GetParameterAttributesResponse) cpeResponse() {}
func (AddObjectResponse) cpeResponse()              {}
func (DeleteObjectResponse) cpeResponse()           {}
func (RebootResponse) cpeResponse()                 {}
func (FactoryResetResponse) cpeResponse()           {}
func (DownloadResponse) cpeResponse()               {}

func (GetParameterNames) acsRequest()      {}
func (GetParameterValues) acsRequest()     {}
func (SetParameterValues) acsRequest()     {}
func (SetParameterAttributes) acsRequest() {}
func (GetParameterAttributes) acsRequest() {}
func (AddObject) acsRequest()              {}
func (DeleteObject) acsRequest()           {}
func (Reboot) acsRequest()                 {}
func (FactoryReset) acsRequest()           {}
func (Download) acsRequest()               {}

func (InformResponse) acsResponse()                     {}
func (GetRPCMethodsResponse) acsResponse()              {}
func (TransferCompleteResponse) acsResponse()           {}
func (AutonomousTransferCompleteResponse) acsResponse() {}
func (RequestDownloadResponse) acsResponse()            {}

// element is shorthand used by decoders
type element = xmlutil.Element
