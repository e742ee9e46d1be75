package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelError, LevelFailure} {
		assert.False(t, l.Enabled(context.Background(), level), level.String())
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Source("Texture.Load").Error("bad magic", "path", "a.pxim")

	assert.Contains(t, buf.String(), "source=Texture.Load")
	assert.Contains(t, buf.String(), "bad magic")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestNewLevelAndFailure(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(Options{Level: slog.LevelWarn, Output: &buf})
	require.NoError(t, err)
	defer closer.Close()

	l.Info("hidden")
	l.Warn("shown")
	l.Log(context.Background(), LevelFailure, "fatal")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "level=FAILURE")
}

func TestAllowedSources(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(Options{Output: &buf, AllowedSources: []string{"font"}})
	require.NoError(t, err)

	l.With(SourceKey, "texture").Info("from texture")
	l.With(SourceKey, "font").Info("from font")
	l.Info("inline texture", SourceKey, "texture")
	l.Info("inline font", SourceKey, "font")
	l.Info("no source")

	out := buf.String()
	assert.NotContains(t, out, "from texture")
	assert.NotContains(t, out, "inline texture")
	assert.Contains(t, out, "from font")
	assert.Contains(t, out, "inline font")
	assert.Contains(t, out, "no source")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	l, closer, err := New(Options{Quiet: true, File: path, Format: "json"})
	require.NoError(t, err)
	l.Info("to file", "n", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Contains(t, string(data), `"n":3`)
}

func TestNewRejectsFormat(t *testing.T) {
	_, _, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"Failure": LevelFailure,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
