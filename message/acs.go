package message

// Methods sent by the ACS: queued commands and replies to CPE requests.

func decodeGetParameterNames(d *decoder, e *element) Method {
	m := GetParameterNames{ParameterPath: e.ChildText("ParameterPath")}
	if nl := e.Child("NextLevel"); nl != nil {
		m.NextLevel = d.bool(nl)
	}
	return m
}

func (m GetParameterNames) encode(w *writer) {
	w.open("cwmp:GetParameterNames")
	w.text("ParameterPath", m.ParameterPath)
	w.bool("NextLevel", m.NextLevel)
	w.close("cwmp:GetParameterNames")
}

func decodeGetParameterValues(d *decoder, e *element) Method {
	m := GetParameterValues{}
	if names := e.Child("ParameterNames"); names != nil {
		m.ParameterNames = d.strings(names)
	}
	return m
}

func (m GetParameterValues) encode(w *writer) {
	w.open("cwmp:GetParameterValues")
	w.strings("ParameterNames", m.ParameterNames)
	w.close("cwmp:GetParameterValues")
}

func decodeSetParameterValues(d *decoder, e *element) Method {
	m := SetParameterValues{ParameterKey: e.ChildText("ParameterKey")}
	if list := e.Child("ParameterList"); list != nil {
		m.ParameterList = d.parameterValues(list)
	}
	return m
}

func (m SetParameterValues) encode(w *writer) {
	w.open("cwmp:SetParameterValues")
	w.parameterValues(m.ParameterList)
	w.text("ParameterKey", m.ParameterKey)
	w.close("cwmp:SetParameterValues")
}

func decodeSetParameterAttributes(d *decoder, e *element) Method {
	m := SetParameterAttributes{}
	if list := e.Child("ParameterList"); list != nil {
		m.ParameterList = d.setParameterAttributes(list)
	}
	return m
}

func (m SetParameterAttributes) encode(w *writer) {
	w.open("cwmp:SetParameterAttributes")
	w.array("ParameterList", "cwmp:SetParameterAttributesStruct", len(m.ParameterList))
	for _, p := range m.ParameterList {
		w.open("SetParameterAttributesStruct")
		w.text("Name", p.Name)
		w.bool("NotificationChange", p.NotificationChange)
		w.int("Notification", int64(clampNotification(p.Notification)))
		w.bool("AccessListChange", p.AccessListChange)
		w.strings("AccessList", p.AccessList)
		w.close("SetParameterAttributesStruct")
	}
	w.close("ParameterList")
	w.close("cwmp:SetParameterAttributes")
}

func decodeGetParameterAttributes(d *decoder, e *element) Method {
	m := GetParameterAttributes{}
	if names := e.Child("ParameterNames"); names != nil {
		m.ParameterNames = d.strings(names)
	}
	return m
}

func (m GetParameterAttributes) encode(w *writer) {
	w.open("cwmp:GetParameterAttributes")
	w.strings("ParameterNames", m.ParameterNames)
	w.close("cwmp:GetParameterAttributes")
}

func decodeAddObject(_ *decoder, e *element) Method {
	return AddObject{ObjectName: e.ChildText("ObjectName"), ParameterKey: e.ChildText("ParameterKey")}
}

func (m AddObject) encode(w *writer) {
	w.open("cwmp:AddObject")
	w.text("ObjectName", m.ObjectName)
	w.text("ParameterKey", m.ParameterKey)
	w.close("cwmp:AddObject")
}

func decodeDeleteObject(_ *decoder, e *element) Method {
	return DeleteObject{ObjectName: e.ChildText("ObjectName"), ParameterKey: e.ChildText("ParameterKey")}
}

func (m DeleteObject) encode(w *writer) {
	w.open("cwmp:DeleteObject")
	w.text("ObjectName", m.ObjectName)
	w.text("ParameterKey", m.ParameterKey)
	w.close("cwmp:DeleteObject")
}

func decodeReboot(_ *decoder, e *element) Method {
	return Reboot{CommandKey: e.ChildText("CommandKey")}
}

func (m Reboot) encode(w *writer) {
	w.open("cwmp:Reboot")
	w.text("CommandKey", m.CommandKey)
	w.close("cwmp:Reboot")
}

func decodeFactoryReset(*decoder, *element) Method { return FactoryReset{} }

func (FactoryReset) encode(w *writer) { w.empty("cwmp:FactoryReset") }

func decodeDownload(d *decoder, e *element) Method {
	m := Download{}
	for _, c := range e.Children {
		switch c.LocalName {
		case "CommandKey":
			m.CommandKey = text(c)
		case "FileType":
			m.FileType = text(c)
		case "URL":
			m.URL = text(c)
		case "Username":
			m.Username = text(c)
		case "Password":
			m.Password = text(c)
		case "FileSize":
			m.FileSize = d.int64(c)
		case "TargetFileName":
			m.TargetFileName = text(c)
		case "DelaySeconds":
			m.DelaySeconds = d.int(c)
		case "SuccessURL":
			m.SuccessURL = text(c)
		case "FailureURL":
			m.FailureURL = text(c)
		}
	}
	return m
}

func (m Download) encode(w *writer) {
	w.open("cwmp:Download")
	w.text("CommandKey", m.CommandKey)
	w.text("FileType", m.FileType)
	w.text("URL", m.URL)
	w.text("Username", m.Username)
	w.text("Password", m.Password)
	w.int("FileSize", m.FileSize)
	w.text("TargetFileName", m.TargetFileName)
	w.int("DelaySeconds", int64(m.DelaySeconds))
	w.text("SuccessURL", m.SuccessURL)
	w.text("FailureURL", m.FailureURL)
	w.close("cwmp:Download")
}

func decodeInformResponse(d *decoder, e *element) Method {
	m := InformResponse{}
	if me := e.Child("MaxEnvelopes"); me != nil {
		m.MaxEnvelopes = d.int(me)
	}
	return m
}

func (m InformResponse) encode(w *writer) {
	w.open("cwmp:InformResponse")
	w.int("MaxEnvelopes", int64(m.MaxEnvelopes))
	w.close("cwmp:InformResponse")
}

func decodeGetRPCMethodsResponse(d *decoder, e *element) Method {
	m := GetRPCMethodsResponse{}
	if list := e.Child("MethodList"); list != nil {
		m.MethodList = d.strings(list)
	}
	return m
}

func (m GetRPCMethodsResponse) encode(w *writer) {
	w.open("cwmp:GetRPCMethodsResponse")
	w.strings("MethodList", m.MethodList)
	w.close("cwmp:GetRPCMethodsResponse")
}

func decodeTransferCompleteResponse(*decoder, *element) Method { return TransferCompleteResponse{} }

func (TransferCompleteResponse) encode(w *writer) { w.empty("cwmp:TransferCompleteResponse") }

func decodeAutonomousTransferCompleteResponse(*decoder, *element) Method {
	return AutonomousTransferCompleteResponse{}
}

func (AutonomousTransferCompleteResponse) encode(w *writer) {
	w.empty("cwmp:AutonomousTransferCompleteResponse")
}

func decodeRequestDownloadResponse(*decoder, *element) Method { return RequestDownloadResponse{} }

func (RequestDownloadResponse) encode(w *writer) { w.empty("cwmp:RequestDownloadResponse") }
