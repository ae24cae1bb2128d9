package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l := New()
	require.NotNil(t, l)
	assert.Equal(t, LevelInfo, l.Level())
}

func TestLogFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New()
	l.SetOutput(buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "level=warning")
	assert.Contains(t, output, `msg="warn message"`)
	assert.Contains(t, output, "level=error")
}

func TestWithFieldSharesSettings(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New()
	l.SetOutput(buf)

	child := l.WithField("file", "main.yaj")
	l.SetLevel(LevelDebug)
	child.Debug("opened %d bytes", 12)

	output := buf.String()
	assert.Contains(t, output, `msg="opened 12 bytes"`)
	assert.Contains(t, output, "file=main.yaj")
}

func TestWithFieldsDoesNotLeakIntoParent(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New()
	l.SetOutput(buf)

	_ = l.WithFields(map[string]interface{}{"run": 1})
	l.Info("plain")

	assert.NotContains(t, buf.String(), "run=1")
}

func TestJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New()
	l.SetOutput(buf)
	l.SetJSON(true)

	l.WithField("steps", 3).Info("run finished")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "run finished", entry["msg"])
	assert.Equal(t, float64(3), entry["steps"])
}

func TestDisable(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New()
	l.SetOutput(buf)

	l.Disable()
	l.Error("hidden")
	assert.Empty(t, buf.String())

	l.Enable()
	l.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("nothing %s", "here") })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
