package config

import (
	"github.com/andaru/acs/message"
	"github.com/pkg/errors"
)

// Command is a queued command. Name selects the method; the other
// fields used depend on it.
type Command struct {
	Name string `yaml:"name"`

	ParameterPath  string      `yaml:"parameter_path,omitempty"`
	NextLevel      bool        `yaml:"next_level,omitempty"`
	ParameterNames []string    `yaml:"parameter_names,omitempty"`
	Parameters     []Parameter `yaml:"parameters,omitempty"`
	Attributes     []Attribute `yaml:"attributes,omitempty"`
	ParameterKey   string      `yaml:"parameter_key,omitempty"`
	ObjectName     string      `yaml:"object_name,omitempty"`
	CommandKey     string      `yaml:"command_key,omitempty"`
	Download       *Download   `yaml:"download,omitempty"`
}

// Parameter is a value for SetParameterValues. Type defaults to
// xsd:string; values of the boolean, integer and dateTime types are
// checked when the command is converted.
type Parameter struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Type  string `yaml:"type,omitempty"`
}

// Attribute is an attribute change for SetParameterAttributes. Only
// the settings present are changed.
type Attribute struct {
	Name         string   `yaml:"name"`
	Notification *int     `yaml:"notification,omitempty"`
	AccessList   []string `yaml:"access_list,omitempty"`
}

// Download holds the arguments of a Download command
type Download struct {
	FileType       string `yaml:"file_type"`
	URL            string `yaml:"url"`
	Username       string `yaml:"username,omitempty"`
	Password       string `yaml:"password,omitempty"`
	FileSize       int64  `yaml:"file_size,omitempty"`
	TargetFileName string `yaml:"target_file_name,omitempty"`
	DelaySeconds   int    `yaml:"delay_seconds,omitempty"`
	SuccessURL     string `yaml:"success_url,omitempty"`
	FailureURL     string `yaml:"failure_url,omitempty"`
}

// Request converts the command to the request sent to the CPE
func (c Command) Request() (message.AcsRequest, error) {
	switch c.Name {
	case "GetParameterNames":
		if c.ParameterPath == "" {
			return nil, errors.New("GetParameterNames: parameter_path is required")
		}
		return message.GetParameterNames{ParameterPath: c.ParameterPath, NextLevel: c.NextLevel}, nil
	case "GetParameterValues":
		if len(c.ParameterNames) == 0 {
			return nil, errors.New("GetParameterValues: parameter_names is required")
		}
		return message.GetParameterValues{ParameterNames: c.ParameterNames}, nil
	case "GetParameterAttributes":
		if len(c.ParameterNames) == 0 {
			return nil, errors.New("GetParameterAttributes: parameter_names is required")
		}
		return message.GetParameterAttributes{ParameterNames: c.ParameterNames}, nil
	case "SetParameterValues":
		return c.setParameterValues()
	case "SetParameterAttributes":
		return c.setParameterAttributes()
	case "AddObject":
		if c.ObjectName == "" {
			return nil, errors.New("AddObject: object_name is required")
		}
		return message.AddObject{ObjectName: c.ObjectName, ParameterKey: c.ParameterKey}, nil
	case "DeleteObject":
		if c.ObjectName == "" {
			return nil, errors.New("DeleteObject: object_name is required")
		}
		return message.DeleteObject{ObjectName: c.ObjectName, ParameterKey: c.ParameterKey}, nil
	case "Reboot":
		return message.Reboot{CommandKey: c.CommandKey}, nil
	case "FactoryReset":
		return message.FactoryReset{}, nil
	case "Download":
		if c.Download == nil || c.Download.FileType == "" || c.Download.URL == "" {
			return nil, errors.New("Download: download.file_type and download.url are required")
		}
		d := c.Download
		return message.Download{
			CommandKey:     c.CommandKey,
			FileType:       d.FileType,
			URL:            d.URL,
			Username:       d.Username,
			Password:       d.Password,
			FileSize:       d.FileSize,
			TargetFileName: d.TargetFileName,
			DelaySeconds:   d.DelaySeconds,
			SuccessURL:     d.SuccessURL,
			FailureURL:     d.FailureURL,
		}, nil
	case "":
		return nil, errors.New("command name is required")
	}
	return nil, errors.Errorf("unknown command %q", c.Name)
}

func (c Command) setParameterValues() (message.AcsRequest, error) {
	if len(c.Parameters) == 0 {
		return nil, errors.New("SetParameterValues: parameters is required")
	}
	req := message.SetParameterValues{ParameterKey: c.ParameterKey}
	for _, p := range c.Parameters {
		typ := p.Type
		if typ == "" {
			typ = message.TypeString
		}
		v, ok := message.CoerceValue(p.Value, typ)
		if !ok {
			return nil, errors.Errorf("SetParameterValues: %s: invalid %s value %q", p.Name, typ, p.Value)
		}
		req.ParameterList = append(req.ParameterList, message.ParameterValue{Name: p.Name, Value: v, Type: typ})
	}
	return req, nil
}

func (c Command) setParameterAttributes() (message.AcsRequest, error) {
	if len(c.Attributes) == 0 {
		return nil, errors.New("SetParameterAttributes: attributes is required")
	}
	req := message.SetParameterAttributes{}
	for _, a := range c.Attributes {
		s := message.SetParameterAttributesStruct{
			Name:             a.Name,
			AccessListChange: a.AccessList != nil,
			AccessList:       a.AccessList,
		}
		if a.Notification != nil {
			s.NotificationChange = true
			s.Notification = *a.Notification
		}
		req.ParameterList = append(req.ParameterList, s)
	}
	return req, nil
}
