package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplnobj/codec/internal/config"
	"github.com/xplnobj/codec/internal/model"
	"github.com/xplnobj/codec/internal/storage"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

func id(v uint64) *uint64 { return &v }

func TestFindDataref(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())

	require.NoError(t, b.SaveDatarefs([]model.Dataref{
		{RefID: id(3), Key: "sim/a"},
		{Key: "sim/b"},
		{RefID: id(9), Key: "sim/c", Writable: true},
	}))

	d, err := b.FindDataref(9)
	require.NoError(t, err)
	assert.Equal(t, "sim/c", d.Key)
	assert.True(t, d.Writable)
	assert.Equal(t, uint(3), d.ID)

	_, err = b.FindDataref(4)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Saving again replaces the set and the index.
	require.NoError(t, b.SaveDatarefs([]model.Dataref{{RefID: id(4), Key: "sim/d"}}))
	_, err = b.FindDataref(9)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	d, err = b.FindDataref(4)
	require.NoError(t, err)
	assert.Equal(t, "sim/d", d.Key)
}

func TestFindCommand(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.SaveCommands([]model.Command{{RefID: id(12), Key: "sim/door/open"}}))

	c, err := b.FindCommand(12)
	require.NoError(t, err)
	assert.Equal(t, "sim/door/open", c.Key)

	_, err = b.FindCommand(1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListsAreCopies(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.SaveCommands([]model.Command{{Key: "sim/a"}}))

	all, err := b.Commands()
	require.NoError(t, err)
	all[0].Key = "changed"

	all, err = b.Commands()
	require.NoError(t, err)
	assert.Equal(t, "sim/a", all[0].Key)
}

func TestRecordConversion_AssignsIDs(t *testing.T) {
	b := New(config.MemoryConfig{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, b.RecordConversion(&model.Conversion{Source: "x.obj"}))
		}()
	}
	wg.Wait()

	all, err := b.Conversions()
	require.NoError(t, err)
	require.Len(t, all, 20)

	seen := make(map[uint]bool)
	for _, c := range all {
		seen[c.ID] = true
	}
	assert.Len(t, seen, 20)
}

func TestClose_NoOutputDir(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Close())
	assert.Empty(t, b.LastExportPath())
}

func TestExport_Plain(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})
	require.NoError(t, b.Init())
	require.NoError(t, b.SaveDatarefs([]model.Dataref{{RefID: id(1), Key: "sim/a"}}))
	require.NoError(t, b.Close())

	path := b.LastExportPath()
	assert.Equal(t, filepath.Join(dir, ExportName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var exp Export
	require.NoError(t, json.Unmarshal(data, &exp))
	require.Len(t, exp.Datarefs, 1)
	assert.Equal(t, "sim/a", exp.Datarefs[0].Key)
	assert.NotNil(t, exp.Commands)
	assert.NotNil(t, exp.Conversions)
}

func TestExport_Gzip(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.SaveCommands([]model.Command{{Key: "sim/b"}}))
	require.NoError(t, b.Close())

	f, err := os.Open(filepath.Join(dir, ExportName+".gz"))
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var exp Export
	require.NoError(t, json.NewDecoder(gz).Decode(&exp))
	require.Len(t, exp.Commands, 1)
	assert.Equal(t, "sim/b", exp.Commands[0].Key)
}

func TestInit_LoadsPreviousExport(t *testing.T) {
	for _, compress := range []bool{false, true} {
		dir := t.TempDir()
		cfg := config.MemoryConfig{OutputDir: dir, CompressOutput: compress}

		first := New(cfg)
		require.NoError(t, first.Init())
		require.NoError(t, first.SaveDatarefs([]model.Dataref{{RefID: id(5), Key: "sim/five"}}))
		require.NoError(t, first.RecordConversion(&model.Conversion{Source: "a.obj"}))
		require.NoError(t, first.Close())

		second := New(cfg)
		require.NoError(t, second.Init())

		d, err := second.FindDataref(5)
		require.NoError(t, err)
		assert.Equal(t, "sim/five", d.Key)

		require.NoError(t, second.RecordConversion(&model.Conversion{Source: "b.obj"}))
		all, err := second.Conversions()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, uint(2), all[1].ID)
	}
}

func TestInit_CorruptExport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ExportName), []byte("{"), 0644))

	b := New(config.MemoryConfig{OutputDir: dir})
	assert.Error(t, b.Init())
}
