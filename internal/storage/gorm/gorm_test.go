package gormstorage

import (
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplnobj/codec/internal/database"
	"github.com/xplnobj/codec/internal/model"
	"github.com/xplnobj/codec/internal/storage"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

func id(v uint64) *uint64 { return &v }

func newTestBackend(t *testing.T, flush time.Duration) *Backend {
	t.Helper()
	db, err := database.GetSqliteDB(database.MemoryPath, zerolog.New(io.Discard))
	require.NoError(t, err)

	b := New(Dependencies{DB: db, FlushInterval: flush})
	require.NoError(t, b.Init())
	return b
}

func TestInit_NoDB(t *testing.T) {
	b := New(Dependencies{})
	require.Error(t, b.Init())
}

func TestSaveAndFindDatarefs(t *testing.T) {
	b := newTestBackend(t, 0)
	defer b.Close()

	require.NoError(t, b.SaveDatarefs([]model.Dataref{
		{RefID: id(1), Key: "sim/cockpit/switches/gear", Type: "int", Writable: true},
		{Key: "sim/no/id"},
		{RefID: id(42), Key: "sim/door/ratio", Type: "float", Units: "ratio"},
	}))

	d, err := b.FindDataref(42)
	require.NoError(t, err)
	assert.Equal(t, "sim/door/ratio", d.Key)
	assert.Equal(t, "ratio", d.Units)

	_, err = b.FindDataref(2)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, err := b.Datarefs()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "sim/cockpit/switches/gear", all[0].Key)
	assert.Nil(t, all[1].RefID)
}

func TestSaveDatarefs_Replaces(t *testing.T) {
	b := newTestBackend(t, 0)
	defer b.Close()

	first := []model.Dataref{{RefID: id(1), Key: "sim/a"}}
	require.NoError(t, b.SaveDatarefs(first))
	require.NoError(t, b.SaveDatarefs(first))
	require.NoError(t, b.SaveDatarefs([]model.Dataref{{RefID: id(2), Key: "sim/b"}}))

	all, err := b.Datarefs()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "sim/b", all[0].Key)

	require.NoError(t, b.SaveDatarefs(nil))
	all, err = b.Datarefs()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSaveAndFindCommands(t *testing.T) {
	b := newTestBackend(t, 0)
	defer b.Close()

	require.NoError(t, b.SaveCommands([]model.Command{
		{RefID: id(7), Key: "sim/door/open", Description: "Open the door"},
	}))

	c, err := b.FindCommand(7)
	require.NoError(t, err)
	assert.Equal(t, "sim/door/open", c.Key)

	_, err = b.FindCommand(8)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, err := b.Commands()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecordConversion_QueuedUntilFlush(t *testing.T) {
	b := newTestBackend(t, 0)
	defer b.Close()

	require.NoError(t, b.RecordConversion(&model.Conversion{
		Time:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Source: "door.obj",
		Lines:  18,
	}))
	require.NoError(t, b.RecordConversion(&model.Conversion{
		Source: "broken.obj",
		Error:  sql.NullString{String: "unexpected end of file", Valid: true},
	}))
	assert.Equal(t, 2, b.QueuedConversions())

	all, err := b.Conversions()
	require.NoError(t, err)
	assert.Equal(t, 0, b.QueuedConversions())
	require.Len(t, all, 2)
	assert.Equal(t, "door.obj", all[0].Source)
	assert.Equal(t, 18, all[0].Lines)
	assert.False(t, all[0].Failed())
	assert.True(t, all[1].Failed())
}

func TestRecordConversion_BackgroundWriter(t *testing.T) {
	b := newTestBackend(t, 10*time.Millisecond)

	require.NoError(t, b.RecordConversion(&model.Conversion{Source: "a.obj"}))
	assert.Eventually(t, func() bool { return b.QueuedConversions() == 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, b.RecordConversion(&model.Conversion{Source: "b.obj"}))
	require.NoError(t, b.Close())
	assert.Equal(t, 0, b.QueuedConversions())

	var count int64
	require.NoError(t, b.DB().Model(&model.Conversion{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
