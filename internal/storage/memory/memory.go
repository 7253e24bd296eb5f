// Package memory keeps reference definitions and conversion records in
// memory and persists them as a single JSON document on Close.
package memory

import (
	"fmt"
	"sync"

	"github.com/xplnobj/codec/internal/config"
	"github.com/xplnobj/codec/internal/model"
	"github.com/xplnobj/codec/internal/storage"
)

// Backend stores definitions in memory and exports to JSON
type Backend struct {
	cfg config.MemoryConfig

	datarefs    []model.Dataref
	commands    []model.Command
	conversions []model.Conversion

	datarefIDs map[uint64]int // RefID -> index in datarefs
	commandIDs map[uint64]int // RefID -> index in commands

	idCounter      uint
	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:        cfg,
		datarefIDs: make(map[uint64]int),
		commandIDs: make(map[uint64]int),
	}
}

// Init loads a previous export from the output directory, if there is one.
func (b *Backend) Init() error {
	if b.cfg.OutputDir == "" {
		return nil
	}
	exp, path, err := readExport(b.cfg.OutputDir)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.setDatarefs(exp.Datarefs)
	b.setCommands(exp.Commands)
	b.conversions = exp.Conversions
	for _, c := range b.conversions {
		if c.ID > b.idCounter {
			b.idCounter = c.ID
		}
	}
	return nil
}

// Close writes the export when an output directory is configured.
func (b *Backend) Close() error {
	if b.cfg.OutputDir == "" {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exportJSON()
}

// LastExportPath returns the file written by the last Close.
func (b *Backend) LastExportPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

func (b *Backend) setDatarefs(d []model.Dataref) {
	b.datarefs = make([]model.Dataref, len(d))
	b.datarefIDs = make(map[uint64]int, len(d))
	for i, v := range d {
		v.ID = uint(i + 1)
		b.datarefs[i] = v
		if v.RefID != nil {
			b.datarefIDs[*v.RefID] = i
		}
	}
}

func (b *Backend) setCommands(c []model.Command) {
	b.commands = make([]model.Command, len(c))
	b.commandIDs = make(map[uint64]int, len(c))
	for i, v := range c {
		v.ID = uint(i + 1)
		b.commands[i] = v
		if v.RefID != nil {
			b.commandIDs[*v.RefID] = i
		}
	}
}

// SaveDatarefs replaces the stored datarefs.
func (b *Backend) SaveDatarefs(d []model.Dataref) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setDatarefs(d)
	return nil
}

// SaveCommands replaces the stored commands.
func (b *Backend) SaveCommands(c []model.Command) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCommands(c)
	return nil
}

// FindDataref returns the dataref with the given id.
func (b *Backend) FindDataref(id uint64) (model.Dataref, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i, ok := b.datarefIDs[id]
	if !ok {
		return model.Dataref{}, fmt.Errorf("dataref %d: %w", id, storage.ErrNotFound)
	}
	return b.datarefs[i], nil
}

// FindCommand returns the command with the given id.
func (b *Backend) FindCommand(id uint64) (model.Command, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i, ok := b.commandIDs[id]
	if !ok {
		return model.Command{}, fmt.Errorf("command %d: %w", id, storage.ErrNotFound)
	}
	return b.commands[i], nil
}

// Datarefs returns a copy of all datarefs in insertion order.
func (b *Backend) Datarefs() ([]model.Dataref, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.Dataref(nil), b.datarefs...), nil
}

// Commands returns a copy of all commands in insertion order.
func (b *Backend) Commands() ([]model.Command, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.Command(nil), b.commands...), nil
}

// RecordConversion appends a conversion record and assigns its ID.
func (b *Backend) RecordConversion(c *model.Conversion) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	c.ID = b.idCounter
	b.conversions = append(b.conversions, *c)
	return nil
}

// Conversions returns a copy of all conversion records.
func (b *Backend) Conversions() ([]model.Conversion, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.Conversion(nil), b.conversions...), nil
}
