package message

// Methods sent by the CPE: requests opening an exchange, responses to
// ACS commands, and SOAP faults.

func decodeInform(d *decoder, e *element) Method {
	m := Inform{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "DeviceId":
			m.DeviceID = DeviceID{
				Manufacturer: c.ChildText("Manufacturer"),
				OUI:          c.ChildText("OUI"),
				ProductClass: c.ChildText("ProductClass"),
				SerialNumber: c.ChildText("SerialNumber"),
			}
		case "Event":
			for _, ev := range c.Children {
				if ev.LocalName == "EventStruct" {
					m.Events = append(m.Events, EventStruct{
						EventCode:  ev.ChildText("EventCode"),
						CommandKey: ev.ChildText("CommandKey"),
					})
				}
			}
		case "MaxEnvelopes":
			m.MaxEnvelopes = d.int(c)
		case "CurrentTime":
			m.CurrentTime = d.time(c)
		case "RetryCount":
			m.RetryCount = d.int(c)
		case "ParameterList":
			m.ParameterList = d.parameterValues(c)
		}
	}
	return m
}

func (m Inform) encode(w *writer) {
	w.open("cwmp:Inform")
	w.open("DeviceId")
	w.text("Manufacturer", m.DeviceID.Manufacturer)
	w.text("OUI", m.DeviceID.OUI)
	w.text("ProductClass", m.DeviceID.ProductClass)
	w.text("SerialNumber", m.DeviceID.SerialNumber)
	w.close("DeviceId")
	w.array("Event", "cwmp:EventStruct", len(m.Events))
	for _, ev := range m.Events {
		w.open("EventStruct")
		w.text("EventCode", ev.EventCode)
		w.text("CommandKey", ev.CommandKey)
		w.close("EventStruct")
	}
	w.close("Event")
	w.int("MaxEnvelopes", int64(m.MaxEnvelopes))
	w.time("CurrentTime", m.CurrentTime)
	w.int("RetryCount", int64(m.RetryCount))
	w.parameterValues(m.ParameterList)
	w.close("cwmp:Inform")
}

func decodeGetRPCMethods(*decoder, *element) Method { return GetRPCMethods{} }

func (GetRPCMethods) encode(w *writer) { w.empty("cwmp:GetRPCMethods") }

func decodeTransferComplete(d *decoder, e *element) Method {
	m := TransferComplete{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "CommandKey":
			m.CommandKey = text(c)
		case "FaultStruct":
			m.FaultStruct = d.faultStruct(c)
		case "StartTime":
			m.StartTime = d.time(c)
		case "CompleteTime":
			m.CompleteTime = d.time(c)
		}
	}
	return m
}

func (m TransferComplete) encode(w *writer) {
	w.open("cwmp:TransferComplete")
	w.text("CommandKey", m.CommandKey)
	if m.FaultStruct != nil {
		w.faultStruct("FaultStruct", m.FaultStruct)
	}
	w.time("StartTime", m.StartTime)
	w.time("CompleteTime", m.CompleteTime)
	w.close("cwmp:TransferComplete")
}

func decodeAutonomousTransferComplete(d *decoder, e *element) Method {
	m := AutonomousTransferComplete{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "AnnounceURL":
			m.AnnounceURL = text(c)
		case "TransferURL":
			m.TransferURL = text(c)
		case "IsDownload":
			m.IsDownload = d.bool(c)
		case "FileType":
			m.FileType = text(c)
		case "FileSize":
			m.FileSize = d.int64(c)
		case "TargetFileName":
			m.TargetFileName = text(c)
		case "FaultStruct":
			m.FaultStruct = d.faultStruct(c)
		case "StartTime":
			m.StartTime = d.time(c)
		case "CompleteTime":
			m.CompleteTime = d.time(c)
		}
	}
	return m
}

func (m AutonomousTransferComplete) encode(w *writer) {
	w.open("cwmp:AutonomousTransferComplete")
	w.text("AnnounceURL", m.AnnounceURL)
	w.text("TransferURL", m.TransferURL)
	w.bool("IsDownload", m.IsDownload)
	w.text("FileType", m.FileType)
	w.int("FileSize", m.FileSize)
	w.text("TargetFileName", m.TargetFileName)
	if m.FaultStruct != nil {
		w.faultStruct("FaultStruct", m.FaultStruct)
	}
	w.time("StartTime", m.StartTime)
	w.time("CompleteTime", m.CompleteTime)
	w.close("cwmp:AutonomousTransferComplete")
}

func decodeRequestDownload(_ *decoder, e *element) Method {
	return RequestDownload{FileType: e.ChildText("FileType")}
}

func (m RequestDownload) encode(w *writer) {
	w.open("cwmp:RequestDownload")
	w.text("FileType", m.FileType)
	w.close("cwmp:RequestDownload")
}

func decodeGetParameterNamesResponse(d *decoder, e *element) Method {
	m := GetParameterNamesResponse{}
	if list := e.Child("ParameterList"); list != nil {
		m.ParameterList = d.parameterInfos(list)
	}
	return m
}

func (m GetParameterNamesResponse) encode(w *writer) {
	w.open("cwmp:GetParameterNamesResponse")
	w.array("ParameterList", "cwmp:ParameterInfoStruct", len(m.ParameterList))
	for _, p := range m.ParameterList {
		w.open("ParameterInfoStruct")
		w.text("Name", p.Name)
		w.bool("Writable", p.Writable)
		w.close("ParameterInfoStruct")
	}
	w.close("ParameterList")
	w.close("cwmp:GetParameterNamesResponse")
}

func decodeGetParameterValuesResponse(d *decoder, e *element) Method {
	m := GetParameterValuesResponse{}
	if list := e.Child("ParameterList"); list != nil {
		m.ParameterList = d.parameterValues(list)
	}
	return m
}

func (m GetParameterValuesResponse) encode(w *writer) {
	w.open("cwmp:GetParameterValuesResponse")
	w.parameterValues(m.ParameterList)
	w.close("cwmp:GetParameterValuesResponse")
}

func decodeSetParameterValuesResponse(d *decoder, e *element) Method {
	m := SetParameterValuesResponse{}
	if s := e.Child("Status"); s != nil {
		m.Status = d.int(s)
	}
	return m
}

func (m SetParameterValuesResponse) encode(w *writer) {
	w.open("cwmp:SetParameterValuesResponse")
	w.int("Status", int64(m.Status))
	w.close("cwmp:SetParameterValuesResponse")
}

func decodeSetParameterAttributesResponse(*decoder, *element) Method {
	return SetParameterAttributesResponse{}
}

func (SetParameterAttributesResponse) encode(w *writer) {
	w.empty("cwmp:SetParameterAttributesResponse")
}

func decodeGetParameterAttributesResponse(d *decoder, e *element) Method {
	m := GetParameterAttributesResponse{}
	if list := e.Child("ParameterList"); list != nil {
		m.ParameterList = d.parameterAttributes(list)
	}
	return m
}

func (m GetParameterAttributesResponse) encode(w *writer) {
	w.open("cwmp:GetParameterAttributesResponse")
	w.array("ParameterList", "cwmp:ParameterAttributeStruct", len(m.ParameterList))
	for _, p := range m.ParameterList {
		w.open("ParameterAttributeStruct")
		w.text("Name", p.Name)
		w.int("Notification", int64(p.Notification))
		w.strings("AccessList", p.AccessList)
		w.close("ParameterAttributeStruct")
	}
	w.close("ParameterList")
	w.close("cwmp:GetParameterAttributesResponse")
}

func decodeAddObjectResponse(d *decoder, e *element) Method {
	m := AddObjectResponse{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "InstanceNumber":
			m.InstanceNumber = d.int(c)
		case "Status":
			m.Status = d.int(c)
		}
	}
	return m
}

func (m AddObjectResponse) encode(w *writer) {
	w.open("cwmp:AddObjectResponse")
	w.int("InstanceNumber", int64(m.InstanceNumber))
	w.int("Status", int64(m.Status))
	w.close("cwmp:AddObjectResponse")
}

func decodeDeleteObjectResponse(d *decoder, e *element) Method {
	m := DeleteObjectResponse{}
	if s := e.Child("Status"); s != nil {
		m.Status = d.int(s)
	}
	return m
}

func (m DeleteObjectResponse) encode(w *writer) {
	w.open("cwmp:DeleteObjectResponse")
	w.int("Status", int64(m.Status))
	w.close("cwmp:DeleteObjectResponse")
}

func decodeRebootResponse(*decoder, *element) Method { return RebootResponse{} }

func (RebootResponse) encode(w *writer) { w.empty("cwmp:RebootResponse") }

func decodeFactoryResetResponse(*decoder, *element) Method { return FactoryResetResponse{} }

func (FactoryResetResponse) encode(w *writer) { w.empty("cwmp:FactoryResetResponse") }

func decodeDownloadResponse(d *decoder, e *element) Method {
	m := DownloadResponse{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "Status":
			m.Status = d.int(c)
		case "StartTime":
			m.StartTime = d.time(c)
		case "CompleteTime":
			m.CompleteTime = d.time(c)
		}
	}
	return m
}

func (m DownloadResponse) encode(w *writer) {
	w.open("cwmp:DownloadResponse")
	w.int("Status", int64(m.Status))
	w.time("StartTime", m.StartTime)
	w.time("CompleteTime", m.CompleteTime)
	w.close("cwmp:DownloadResponse")
}

func decodeFault(d *decoder, e *element) Method {
	m := CpeFault{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "faultcode":
			m.FaultCode = text(c)
		case "faultstring":
			m.FaultString = text(c)
		case "detail":
			if f := c.Child("Fault"); f != nil {
				m.Detail = d.faultStruct(f)
			}
		}
	}
	return m
}

func (m CpeFault) encode(w *writer) {
	w.open("soap-env:Fault")
	w.text("faultcode", m.FaultCode)
	w.text("faultstring", m.FaultString)
	if m.Detail != nil {
		w.open("detail")
		w.faultStruct("cwmp:Fault", m.Detail)
		w.close("detail")
	}
	w.close("soap-env:Fault")
}
