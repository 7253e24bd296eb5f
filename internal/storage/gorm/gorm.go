// Package gormstorage implements the storage.Backend interface on a GORM
// database. Conversion records are queued and written in batches.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/xplnobj/codec/internal/model"
	"github.com/xplnobj/codec/internal/queue"
	"github.com/xplnobj/codec/internal/storage"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger

	// FlushInterval enables a background writer for queued conversions.
	// With zero, queued records are written on Flush and Close.
	FlushInterval time.Duration
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps        Dependencies
	conversions *queue.Queue[model.Conversion]

	writeMu  sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Backend{
		deps:        deps,
		conversions: queue.New[model.Conversion](),
	}
}

// DB returns the underlying database.
func (b *Backend) DB() *gorm.DB { return b.deps.DB }

// Init runs schema migration and starts the background writer if configured.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("no database configured")
	}
	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if b.deps.FlushInterval > 0 {
		b.stopChan = make(chan struct{})
		b.done = make(chan struct{})
		go b.writeLoop()
	}
	return nil
}

// Close stops the background writer and writes what is still queued.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		<-b.done
		b.stopChan = nil
	}
	return b.Flush()
}

func (b *Backend) writeLoop() {
	defer close(b.done)
	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Flush(); err != nil {
				b.deps.Logger.Error("Error writing conversions", "error", err)
			}
		}
	}
}

// writeQueue writes all items from a queue to the database in a transaction.
// Items are pushed back on failure.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string) error {
	if q.Empty() {
		return nil
	}

	items := q.GetAndEmpty()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
	if err != nil {
		q.Push(items...)
		return fmt.Errorf("error creating %s: %w", name, err)
	}
	return nil
}

// Flush writes the queued conversion records.
func (b *Backend) Flush() error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return writeQueue(b.deps.DB, b.conversions, "conversions")
}

// replace deletes every row of the table and inserts rows in one transaction.
func replace[T any](db *gorm.DB, rows []T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&zero).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// SaveDatarefs replaces the stored datarefs.
func (b *Backend) SaveDatarefs(d []model.Dataref) error {
	rows := make([]model.Dataref, len(d))
	for i, v := range d {
		v.Model = gorm.Model{}
		rows[i] = v
	}
	if err := replace(b.deps.DB, rows); err != nil {
		return fmt.Errorf("error saving datarefs: %w", err)
	}
	b.deps.Logger.Debug("Saved datarefs", "count", len(rows))
	return nil
}

// SaveCommands replaces the stored commands.
func (b *Backend) SaveCommands(c []model.Command) error {
	rows := make([]model.Command, len(c))
	for i, v := range c {
		v.Model = gorm.Model{}
		rows[i] = v
	}
	if err := replace(b.deps.DB, rows); err != nil {
		return fmt.Errorf("error saving commands: %w", err)
	}
	b.deps.Logger.Debug("Saved commands", "count", len(rows))
	return nil
}

func find[T any](db *gorm.DB, kind string, id uint64) (T, error) {
	var v T
	err := db.Where("ref_id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return v, fmt.Errorf("%s %d: %w", kind, id, storage.ErrNotFound)
	}
	if err != nil {
		return v, fmt.Errorf("error finding %s %d: %w", kind, id, err)
	}
	return v, nil
}

// FindDataref returns the dataref with the given id.
func (b *Backend) FindDataref(id uint64) (model.Dataref, error) {
	return find[model.Dataref](b.deps.DB, "dataref", id)
}

// FindCommand returns the command with the given id.
func (b *Backend) FindCommand(id uint64) (model.Command, error) {
	return find[model.Command](b.deps.DB, "command", id)
}

// Datarefs returns all datarefs in insertion order.
func (b *Backend) Datarefs() ([]model.Dataref, error) {
	var d []model.Dataref
	if err := b.deps.DB.Order("id").Find(&d).Error; err != nil {
		return nil, fmt.Errorf("error listing datarefs: %w", err)
	}
	return d, nil
}

// Commands returns all commands in insertion order.
func (b *Backend) Commands() ([]model.Command, error) {
	var c []model.Command
	if err := b.deps.DB.Order("id").Find(&c).Error; err != nil {
		return nil, fmt.Errorf("error listing commands: %w", err)
	}
	return c, nil
}

// RecordConversion queues a conversion record.
func (b *Backend) RecordConversion(c *model.Conversion) error {
	b.conversions.Push(*c)
	return nil
}

// QueuedConversions returns the number of records not yet written.
func (b *Backend) QueuedConversions() int {
	return b.conversions.Len()
}

// Conversions writes the queue and returns all conversion records in order.
func (b *Backend) Conversions() ([]model.Conversion, error) {
	if err := b.Flush(); err != nil {
		return nil, err
	}
	var c []model.Conversion
	if err := b.deps.DB.Order("id").Find(&c).Error; err != nil {
		return nil, fmt.Errorf("error listing conversions: %w", err)
	}
	return c, nil
}
