package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "warn"}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	require.NotContains(t, out.String(), "hidden")
	require.Contains(t, out.String(), "shown 2")
	require.Contains(t, out.String(), "logger_test.go", "source file should be recorded")
}

func TestTagFiltering(t *testing.T) {
	var out bytes.Buffer
	Init(Config{LogLevel: "debug", EnabledTags: []string{"History"}}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	DebugTagf("history", "undo applied")
	DebugTagf("render", "frame painted")
	Debugf("untagged")

	require.Contains(t, out.String(), "undo applied")
	require.NotContains(t, out.String(), "frame painted")
	require.NotContains(t, out.String(), "untagged")
}

func TestDisabledPackageWins(t *testing.T) {
	var out bytes.Buffer
	Init(Config{
		LogLevel:         "debug",
		EnabledPackages:  []string{"logger"},
		DisabledPackages: []string{"logger"},
	}, &out)
	t.Cleanup(func() { Init(NewConfig(), nil) })

	Debugf("never")
	require.Empty(t, out.String())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, "DEBUG", ParseLevel("Debug").String())
	require.Equal(t, "WARN", ParseLevel("warning").String())
	require.Equal(t, "ERROR", ParseLevel("err").String())
	require.Equal(t, "INFO", ParseLevel("bogus").String())
}

func TestOpenOutputStderr(t *testing.T) {
	w, closeFn, err := OpenOutput("-")
	require.NoError(t, err)
	require.NotNil(t, w)
	require.NoError(t, closeFn())
}
