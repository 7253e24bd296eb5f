// Package storage defines where reference definitions and conversion records are kept.
package storage

import (
	"errors"

	"github.com/xplnobj/codec/internal/model"
)

// ErrNotFound is returned when no definition has the requested id.
var ErrNotFound = errors.New("not found")

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Reference definitions. Save replaces the stored set.
	SaveDatarefs(d []model.Dataref) error
	SaveCommands(c []model.Command) error
	FindDataref(id uint64) (model.Dataref, error)
	FindCommand(id uint64) (model.Command, error)
	Datarefs() ([]model.Dataref, error)
	Commands() ([]model.Command, error)

	// Conversion history
	RecordConversion(c *model.Conversion) error
	Conversions() ([]model.Conversion, error)
}

// Snapshotter is an optional interface for backends that can copy their
// contents to a standalone file.
type Snapshotter interface {
	Snapshot(path string) error
}
