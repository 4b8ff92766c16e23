package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Setenv(LevelEnvVar, "")
	for _, tc := range []struct {
		level   string
		enabled zapcore.Level
		wantErr bool
	}{
		{level: "debug", enabled: zapcore.DebugLevel},
		{level: "info", enabled: zapcore.InfoLevel},
		{level: "warn", enabled: zapcore.WarnLevel},
		{level: "error", enabled: zapcore.ErrorLevel},
		{level: "verbose", wantErr: true},
	} {
		t.Run(tc.level, func(t *testing.T) {
			a := assert.New(t)
			l, err := New(tc.level)
			if tc.wantErr {
				a.Error(err)
				return
			}
			a.NoError(err)
			a.True(l.Core().Enabled(tc.enabled))
			a.False(l.Core().Enabled(tc.enabled - 1))
		})
	}
}

func TestNewSilent(t *testing.T) {
	a := assert.New(t)
	t.Setenv(LevelEnvVar, "")
	l, err := New("")
	a.NoError(err)
	a.False(l.Core().Enabled(zapcore.ErrorLevel))

	t.Setenv(LevelEnvVar, "warn")
	l, err = New("")
	a.NoError(err)
	a.True(l.Core().Enabled(zapcore.WarnLevel))
	a.False(l.Core().Enabled(zapcore.InfoLevel))
}
