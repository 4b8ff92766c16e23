package message

import (
	"strings"
	"testing"
	"time"

	"github.com/andaru/acs/cwmperr"
	"github.com/andaru/acs/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTableFunc func(*xmlutil.Element) (Method, []*cwmperr.Error, error)

var (
	t0 = time.Date(2024, 3, 1, 12, 30, 15, 0, time.UTC)
	t1 = time.Date(2024, 3, 1, 12, 31, 2, 500000000, time.UTC)

	testFault = &FaultStruct{
		FaultCode:   9003,
		FaultString: "Invalid arguments",
		SetParameterValuesFault: []SetParameterValuesFault{
			{ParameterName: "Device.WiFi.SSID.1.SSID", FaultCode: 9007, FaultString: "Invalid parameter value"},
			{ParameterName: "Device.WiFi.SSID.1.Enable", FaultCode: 9008, FaultString: "Attempt to set a non-writable parameter"},
		},
	}

	testValues = []ParameterValue{
		{Name: "Device.DeviceInfo.SoftwareVersion", Value: "1.2 <beta> & co", Type: TypeString},
		{Name: "Device.ManagementServer.PeriodicInformInterval", Value: int64(300), Type: TypeUnsignedInt},
		{Name: "Device.ManagementServer.PeriodicInformEnable", Value: true, Type: TypeBoolean},
		{Name: "Device.Time.CurrentLocalTime", Value: t1, Type: TypeDateTime},
		{Name: "Device.Custom", Value: "untyped"},
	}
)

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		decode decodeTableFunc
		m      Method
	}{
		// CPE requests
		{decode: DecodeCPE, m: Inform{
			DeviceID:      DeviceID{Manufacturer: "Acme & Sons", OUI: "00D09E", ProductClass: "IGD", SerialNumber: "SN001"},
			Events:        []EventStruct{{EventCode: "0 BOOTSTRAP"}, {EventCode: "M Reboot", CommandKey: "ck-1"}},
			MaxEnvelopes:  1,
			CurrentTime:   t0,
			RetryCount:    2,
			ParameterList: testValues,
		}},
		{decode: DecodeCPE, m: GetRPCMethods{}},
		{decode: DecodeCPE, m: TransferComplete{CommandKey: "fw", FaultStruct: &FaultStruct{FaultString: ""}, StartTime: t0, CompleteTime: t1}},
		{decode: DecodeCPE, m: TransferComplete{CommandKey: "fw"}},
		{decode: DecodeCPE, m: AutonomousTransferComplete{
			AnnounceURL: "http://a", TransferURL: "http://b/fw.bin?x=1&y=2", IsDownload: true, FileType: "1 Firmware Upgrade Image",
			FileSize: 1 << 20, TargetFileName: "fw.bin", FaultStruct: testFault, StartTime: t0, CompleteTime: t1,
		}},
		{decode: DecodeCPE, m: RequestDownload{FileType: "2 Web Content"}},

		// CPE responses
		{decode: DecodeCPE, m: GetParameterNamesResponse{ParameterList: []ParameterInfo{
			{Name: "InternetGatewayDevice.ManagementServer.URL", Writable: true},
			{Name: "InternetGatewayDevice.ManagementServer.Username", Writable: false},
		}}},
		{decode: DecodeCPE, m: GetParameterNamesResponse{}},
		{decode: DecodeCPE, m: GetParameterValuesResponse{ParameterList: testValues}},
		{decode: DecodeCPE, m: SetParameterValuesResponse{Status: 1}},
		{decode: DecodeCPE, m: SetParameterAttributesResponse{}},
		{decode: DecodeCPE, m: GetParameterAttributesResponse{ParameterList: []ParameterAttribute{
			{Name: "Device.A", Notification: 2, AccessList: []string{"Subscriber"}},
			{Name: "Device.B", Notification: 0},
		}}},
		{decode: DecodeCPE, m: AddObjectResponse{InstanceNumber: 3, Status: 0}},
		{decode: DecodeCPE, m: DeleteObjectResponse{Status: 1}},
		{decode: DecodeCPE, m: RebootResponse{}},
		{decode: DecodeCPE, m: FactoryResetResponse{}},
		{decode: DecodeCPE, m: DownloadResponse{Status: 1, StartTime: t0, CompleteTime: t1}},
		{decode: DecodeCPE, m: CpeFault{FaultCode: "Client", FaultString: "CWMP fault", Detail: testFault}},
		{decode: DecodeCPE, m: CpeFault{FaultCode: "Server", FaultString: "no detail"}},

		// ACS requests
		{decode: DecodeACS, m: GetParameterNames{ParameterPath: "InternetGatewayDevice.ManagementServer.", NextLevel: true}},
		{decode: DecodeACS, m: GetParameterValues{ParameterNames: []string{"Device.A", "Device.B."}}},
		{decode: DecodeACS, m: SetParameterValues{ParameterList: testValues[:4], ParameterKey: "key & value"}},
		{decode: DecodeACS, m: SetParameterAttributes{ParameterList: []SetParameterAttributesStruct{
			{Name: "Device.A", NotificationChange: true, Notification: 2, AccessListChange: true, AccessList: []string{"Subscriber"}},
			{Name: "Device.B", Notification: 6},
		}}},
		{decode: DecodeACS, m: GetParameterAttributes{ParameterNames: []string{"Device."}}},
		{decode: DecodeACS, m: AddObject{ObjectName: "Device.NAT.PortMapping.", ParameterKey: "pk"}},
		{decode: DecodeACS, m: DeleteObject{ObjectName: "Device.NAT.PortMapping.3."}},
		{decode: DecodeACS, m: Reboot{CommandKey: "reboot-1"}},
		{decode: DecodeACS, m: FactoryReset{}},
		{decode: DecodeACS, m: Download{
			CommandKey: "dl", FileType: "1 Firmware Upgrade Image", URL: "http://fw.example/img?a=1&b=2",
			Username: "user<1>", Password: `pa"ss'&`, FileSize: 4096, TargetFileName: "img.bin",
			DelaySeconds: 30, SuccessURL: "http://ok", FailureURL: "http://fail",
		}},

		// ACS responses
		{decode: DecodeACS, m: InformResponse{MaxEnvelopes: 1}},
		{decode: DecodeACS, m: GetRPCMethodsResponse{MethodList: []string{"Inform", "GetRPCMethods"}}},
		{decode: DecodeACS, m: TransferCompleteResponse{}},
		{decode: DecodeACS, m: AutonomousTransferCompleteResponse{}},
		{decode: DecodeACS, m: RequestDownloadResponse{}},
	} {
		t.Run(tc.m.MethodName(), func(t *testing.T) {
			body := Encode(tc.m)
			root, err := xmlutil.Parse(body)
			require.NoError(t, err, body)
			require.Len(t, root.Children, 1)
			assert.Equal(t, tc.m.MethodName(), root.Children[0].LocalName)

			got, warnings, err := tc.decode(root.Children[0])
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, tc.m, got)
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	root, err := xmlutil.Parse(`<cwmp:Upload><CommandKey/></cwmp:Upload>`)
	require.NoError(t, err)
	for name, decode := range map[string]decodeTableFunc{"cpe": DecodeCPE, "acs": DecodeACS} {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)
			m, _, err := decode(root.Children[0])
			a.Nil(m)
			var cerr *cwmperr.Error
			if a.ErrorAs(err, &cerr) {
				a.Equal(cwmperr.KindProtocol, cerr.Kind)
				a.Equal(cwmperr.CodeMethodNotSupported, cerr.Code)
			}
		})
	}
	// a CPE never receives an Inform and the ACS never receives GetParameterNames
	gpn, _ := xmlutil.Parse(Encode(GetParameterNames{}))
	_, _, err = DecodeCPE(gpn.Children[0])
	assert.Error(t, err)
}

func TestCoercionWarnings(t *testing.T) {
	for _, tc := range []struct {
		name     string
		body     string
		want     Method
		warnings []*cwmperr.Error
	}{
		{
			name: "bad boolean",
			body: `<cwmp:GetParameterValuesResponse><ParameterList><ParameterValueStruct><Name>Device.X</Name><Value xsi:type="xsd:boolean">notabool</Value></ParameterValueStruct></ParameterList></cwmp:GetParameterValuesResponse>`,
			want: GetParameterValuesResponse{ParameterList: []ParameterValue{
				{Name: "Device.X", Value: "notabool", Type: TypeBoolean},
			}},
			warnings: []*cwmperr.Error{cwmperr.InvalidValue("Device.X", "Invalid value attribute")},
		},
		{
			name: "boolean spellings and bad int and date",
			body: `<GetParameterValuesResponse><ParameterList>` +
				`<ParameterValueStruct><Name>a</Name><Value type="xsd:boolean">TRUE</Value></ParameterValueStruct>` +
				`<ParameterValueStruct><Name>b</Name><Value xsi:type="xsd:boolean">False</Value></ParameterValueStruct>` +
				`<ParameterValueStruct><Name>c</Name><Value xsi:type="xsd:int">12x</Value></ParameterValueStruct>` +
				`<ParameterValueStruct><Name>d</Name><Value xsi:type="xsd:dateTime">yesterday</Value></ParameterValueStruct>` +
				`<ParameterValueStruct><Name>e</Name><Value xsi:type="xsd:dateTime">2024-03-01T12:30:15</Value></ParameterValueStruct>` +
				`<ParameterValueStruct><Name>f</Name><Value xsi:type="xsd:string">&lt;x&gt;</Value></ParameterValueStruct>` +
				`</ParameterList></GetParameterValuesResponse>`,
			want: GetParameterValuesResponse{ParameterList: []ParameterValue{
				{Name: "a", Value: true, Type: TypeBoolean},
				{Name: "b", Value: false, Type: TypeBoolean},
				{Name: "c", Value: "12x", Type: TypeInt},
				{Name: "d", Value: "yesterday", Type: TypeDateTime},
				{Name: "e", Value: t0, Type: TypeDateTime},
				{Name: "f", Value: "<x>", Type: TypeString},
			}},
			warnings: []*cwmperr.Error{
				cwmperr.InvalidValue("c", "Invalid value attribute"),
				cwmperr.InvalidValue("d", "Invalid value attribute"),
			},
		},
		{
			name: "bad writable",
			body: `<GetParameterNamesResponse><ParameterList><ParameterInfoStruct><Name>Device.</Name><Writable>maybe</Writable></ParameterInfoStruct></ParameterList></GetParameterNamesResponse>`,
			want: GetParameterNamesResponse{ParameterList: []ParameterInfo{{Name: "Device."}}},
			warnings: []*cwmperr.Error{
				cwmperr.InvalidValue("Device.", "Invalid writable attribute"),
			},
		},
		{
			name:     "bad status",
			body:     `<SetParameterValuesResponse><Status>ok</Status></SetParameterValuesResponse>`,
			want:     SetParameterValuesResponse{},
			warnings: []*cwmperr.Error{cwmperr.InvalidValue("Status", "Invalid value attribute")},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			root, err := xmlutil.Parse(tc.body)
			require.NoError(t, err)
			got, warnings, err := DecodeCPE(root.Children[0])
			a.NoError(err)
			a.Equal(tc.want, got)
			a.Equal(tc.warnings, warnings)
		})
	}
}

func TestDecodeBadAttributes(t *testing.T) {
	root, err := xmlutil.Parse(`<GetParameterValuesResponse><ParameterList><ParameterValueStruct><Name>a</Name><Value xsi:type=>1</Value></ParameterValueStruct></ParameterList></GetParameterValuesResponse>`)
	require.NoError(t, err)
	m, _, err := DecodeCPE(root.Children[0])
	assert.Nil(t, m)
	kind, ok := cwmperr.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, cwmperr.KindParse, kind)
}

// evaluate renders m inside a root element declaring the envelope
// prefixes and evaluates the XPath expression expr against it.
func evaluate(t *testing.T, m Method, expr string) interface{} {
	doc, err := xmlquery.Parse(strings.NewReader(`<root` +
		` xmlns:cwmp="urn:dslforum-org:cwmp-1-0"` +
		` xmlns:soap-enc="http://schemas.xmlsoap.org/soap/encoding/"` +
		` xmlns:soap-env="http://schemas.xmlsoap.org/soap/envelope/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` + Encode(m) + `</root>`))
	require.NoError(t, err)
	return xpath.MustCompile(expr).Evaluate(xmlquery.CreateXPathNavigator(doc))
}

func TestEncode(t *testing.T) {
	spv := SetParameterValues{ParameterList: testValues[1:4], ParameterKey: "k"}
	spa := SetParameterAttributes{ParameterList: []SetParameterAttributesStruct{
		{Name: "a", Notification: -3},
		{Name: "b", Notification: 42},
		{Name: "c", Notification: 4, AccessList: []string{"x&y"}},
	}}
	for _, tc := range []struct {
		name string
		m    Method
		expr string
		want interface{}
	}{
		{name: "spv count", m: spv, expr: "count(//ParameterValueStruct)", want: float64(3)},
		{name: "spv array type", m: spv, expr: "string(//ParameterList/@*[local-name()='arrayType'])", want: "cwmp:ParameterValueStruct[3]"},
		{name: "spv boolean", m: spv, expr: "string(//ParameterValueStruct[2]/Value)", want: "1"},
		{name: "spv boolean type", m: spv, expr: "string(//ParameterValueStruct[2]/Value/@*[local-name()='type'])", want: "xsd:boolean"},
		{name: "spv date time", m: spv, expr: "string(//ParameterValueStruct[3]/Value)", want: "2024-03-01T12:31:02.5Z"},
		{name: "spv key", m: spv, expr: "string(//ParameterKey)", want: "k"},
		{name: "spa clamp low", m: spa, expr: "string(//SetParameterAttributesStruct[1]/Notification)", want: "0"},
		{name: "spa clamp high", m: spa, expr: "string(//SetParameterAttributesStruct[2]/Notification)", want: "6"},
		{name: "spa in range", m: spa, expr: "string(//SetParameterAttributesStruct[3]/Notification)", want: "4"},
		{name: "spa access list", m: spa, expr: "string(//SetParameterAttributesStruct[3]/AccessList/string)", want: "x&y"},
		{name: "gpn next level", m: GetParameterNames{ParameterPath: "Device."}, expr: "string(//NextLevel)", want: "0"},
		{name: "inform response", m: InformResponse{MaxEnvelopes: 1}, expr: "string(/root/*[local-name()='InformResponse']/MaxEnvelopes)", want: "1"},
		{name: "rpc methods", m: GetRPCMethodsResponse{MethodList: []string{"Inform", "GetRPCMethods"}}, expr: "string(//MethodList/@*[local-name()='arrayType'])", want: "xsd:string[2]"},
		{name: "fault", m: CpeFault{FaultCode: "Client", Detail: testFault}, expr: "string(//detail/*[local-name()='Fault']/SetParameterValuesFault[2]/FaultCode)", want: "9008"},
		{name: "download zero time", m: DownloadResponse{}, expr: "string(//StartTime)", want: "0001-01-01T00:00:00Z"},
	} {
		t.Run(tc.name, func(t *testing.T) { assert.Equal(t, tc.want, evaluate(t, tc.m, tc.expr)) })
	}

	assert.Equal(t, "<cwmp:FactoryReset></cwmp:FactoryReset>", Encode(FactoryReset{}))
	assert.Equal(t, "<cwmp:InformResponse><MaxEnvelopes>1</MaxEnvelopes></cwmp:InformResponse>", Encode(InformResponse{MaxEnvelopes: 1}))
}

func TestDeviceID(t *testing.T) {
	assert.Equal(t, "00D09E-IGD-SN1", DeviceID{OUI: "00D09E", ProductClass: "IGD", SerialNumber: "SN1"}.String())
	assert.Equal(t, "00D09E-SN1", DeviceID{OUI: "00D09E", SerialNumber: "SN1"}.String())
}

func TestSumTypes(t *testing.T) {
	var (
		_ CpeRequest  = Inform{}
		_ CpeRequest  = RequestDownload{}
		_ CpeResponse = DownloadResponse{}
		_ AcsRequest  = Download{}
		_ AcsRequest  = FactoryReset{}
		_ AcsResponse = GetRPCMethodsResponse{}
		_ Method      = CpeFault{}
	)
	for name := range cpeMethods {
		if !strings.HasSuffix(name, "Response") {
			assert.Contains(t, []string{"Fault", "Inform", "GetRPCMethods", "TransferComplete", "AutonomousTransferComplete", "RequestDownload"}, name)
		}
	}
}
