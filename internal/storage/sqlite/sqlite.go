// Package sqlitestorage implements the storage.Backend interface on a SQLite
// file. It wraps the GORM backend and adds snapshots via VACUUM INTO.
package sqlitestorage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/xplnobj/codec/internal/database"
	gormstorage "github.com/xplnobj/codec/internal/storage/gorm"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	Path string // database file, or database.MemoryPath

	// FlushInterval is passed to the GORM backend's background writer.
	FlushInterval time.Duration
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db  *gorm.DB
	cfg Config
	log zerolog.Logger
}

// New opens the SQLite database and creates the backend.
func New(cfg Config, logger *slog.Logger, zl zerolog.Logger) (*Backend, error) {
	db, err := database.GetSqliteDB(cfg.Path, zl)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	gormBackend := gormstorage.New(gormstorage.Dependencies{
		DB:            db,
		Logger:        logger,
		FlushInterval: cfg.FlushInterval,
	})

	return &Backend{
		Backend: gormBackend,
		db:      db,
		cfg:     cfg,
		log:     zl,
	}, nil
}

// Close writes queued records and closes the database.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return fmt.Errorf("error accessing sql interface: %w", err)
	}
	return sqlDB.Close()
}

// Snapshot writes queued records and copies the database to path.
func (b *Backend) Snapshot(path string) error {
	if err := b.Flush(); err != nil {
		return err
	}
	start := time.Now()
	if err := database.DumpSqliteToDisk(b.db, path, b.log); err != nil {
		return err
	}
	b.log.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("Snapshot written")
	return nil
}
