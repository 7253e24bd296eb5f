package monitor

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progress struct {
	completed, failed atomic.Int64
}

func (p *progress) Completed() int { return int(p.completed.Load()) }
func (p *progress) Failed() int    { return int(p.failed.Load()) }

func TestGetStatus(t *testing.T) {
	p := &progress{}
	p.completed.Store(3)
	p.failed.Store(1)
	s := NewService(Dependencies{Progress: p, Total: 5})

	st := s.GetStatus()
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 3, st.Completed)
	assert.Equal(t, 1, st.Failed)
	assert.False(t, s.IsRunning())
}

func TestStartStop_WritesStatusFile(t *testing.T) {
	var buf bytes.Buffer
	p := &progress{}
	path := filepath.Join(t.TempDir(), "status.txt")
	s := NewService(Dependencies{
		Logger:     slog.New(slog.NewTextHandler(&buf, nil)),
		Progress:   p,
		Total:      2,
		StatusPath: path,
		Interval:   10 * time.Millisecond,
	})

	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second start is a no-op")
	assert.True(t, s.IsRunning())

	p.completed.Store(2)
	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var st Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 2, st.Completed)
	assert.Equal(t, 2, st.Total)
	assert.Contains(t, buf.String(), "Batch progress")
}

func TestStart_BadStatusPath(t *testing.T) {
	s := NewService(Dependencies{
		Progress:   &progress{},
		StatusPath: filepath.Join(t.TempDir(), "missing", "status.txt"),
	})
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
}
