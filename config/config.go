// Package config loads the ACS daemon configuration from YAML.
package config

import (
	"bytes"
	"os"
	"time"

	"github.com/andaru/acs/message"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultParameterPath is the parameter path of the default queue's
// GetParameterNames command
const DefaultParameterPath = "InternetGatewayDevice.ManagementServer."

// Config is the daemon configuration
type Config struct {
	Listen        string `yaml:"listen"`
	MetricsListen string `yaml:"metrics_listen,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`
	// Database is the SQLite database path. Responses are not stored
	// when empty.
	Database string `yaml:"database,omitempty"`
	// KeepAliveTimeout bounds how long an idle CPE connection is kept
	// open between requests. Zero uses the HTTP server's default.
	KeepAliveTimeout time.Duration `yaml:"keep_alive_timeout,omitempty"`
	// MaxBodySize limits the decompressed size of a request body
	MaxBodySize int64 `yaml:"max_body_size,omitempty"`
	// Commands is the queue sent to each CPE once it has no more requests
	Commands []Command `yaml:"commands"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Listen:        ":7547",
		MetricsListen: ":9547",
		LogLevel:      "info",
		MaxBodySize:   1 << 20,
		Commands: []Command{
			{Name: "GetParameterNames", ParameterPath: DefaultParameterPath},
		},
	}
}

// Load reads the configuration at path over the defaults. Unknown
// fields are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}

// Validate checks the configuration, including that every command
// converts to a request
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	if c.KeepAliveTimeout < 0 {
		return errors.New("keep_alive_timeout must not be negative")
	}
	if c.MaxBodySize <= 0 {
		return errors.New("max_body_size must be positive")
	}
	_, err := c.Queue()
	return err
}

// Queue returns the configured commands as requests, in order
func (c *Config) Queue() ([]message.AcsRequest, error) {
	queue := make([]message.AcsRequest, 0, len(c.Commands))
	for i, cmd := range c.Commands {
		req, err := cmd.Request()
		if err != nil {
			return nil, errors.Wrapf(err, "commands[%d]", i)
		}
		queue = append(queue, req)
	}
	return queue, nil
}
