package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andaru/acs/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, version.Product()+"\n", out.String())
}

func TestServeOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acsd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: ':8000'\nlog_level: warn\ndatabase: /tmp/a.db\n"), 0o600))

	for _, tc := range []struct {
		name     string
		args     []string
		listen   string
		metrics  string
		level    string
		database string
		wantErr  bool
	}{
		{name: "defaults", listen: ":7547", metrics: ":9547", level: "info"},
		{name: "file", args: []string{"--config", path}, listen: ":8000", metrics: ":9547", level: "warn", database: "/tmp/a.db"},
		{
			name:   "flags override file",
			args:   []string{"--config", path, "--listen", ":9000", "--metrics-listen", "", "--log-level", "debug", "--database", ""},
			listen: ":9000",
			level:  "debug",
		},
		{name: "missing file", args: []string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, wantErr: true},
		{name: "empty listen", args: []string{"--listen", ""}, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)
			o := &serveOptions{}
			cmd := o.command()
			require.NoError(t, cmd.ParseFlags(tc.args))
			cfg, err := o.load(cmd)
			if tc.wantErr {
				a.Error(err)
				return
			}
			require.NoError(t, err)
			a.Equal(tc.listen, cfg.Listen)
			a.Equal(tc.metrics, cfg.MetricsListen)
			a.Equal(tc.level, cfg.LogLevel)
			a.Equal(tc.database, cfg.Database)
		})
	}
}
