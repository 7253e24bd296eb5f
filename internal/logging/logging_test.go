package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		appName string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "xobjlogs",
			appName: "xobjconv",
			want:    filepath.Join("xobjlogs", "xobjconv.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./xobjlogs",
			appName: "xobjconv",
			want:    filepath.Join(".", "xobjlogs", "xobjconv.20260212_213836.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "xobj"),
			appName: "xobjconv",
			want:    filepath.Join("/var", "log", "xobj", "xobjconv.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.appName, sessionStart)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	start := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	f, err := OpenLogFile(dir, "xobjconv", start)
	require.NoError(t, err)
	_, err = f.WriteString("first\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// Reopening appends to the same file.
	f, err = OpenLogFile(dir, "xobjconv", start)
	require.NoError(t, err)
	_, err = f.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(LogFilePath(dir, "xobjconv", start))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestOpenLogFile_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	_, err := OpenLogFile(file, "xobjconv", time.Now())
	assert.ErrorContains(t, err, "error creating logs dir")
}

func TestNewZerolog(t *testing.T) {
	tests := []struct {
		level    string
		contains []string
		missing  []string
	}{
		{"debug", []string{"debug msg", "info msg"}, nil},
		{"info", []string{"info msg"}, []string{"debug msg"}},
		{"error", nil, []string{"debug msg", "info msg"}},
		{"unknown", []string{"info msg"}, []string{"debug msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewZerolog(&buf, tt.level)
			logger.Debug().Msg("debug msg")
			logger.Info().Str("table", "datarefs").Msg("info msg")

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.missing {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
