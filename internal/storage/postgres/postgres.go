// Package postgres implements the storage.Backend interface on a shared
// Postgres database configured through the db.* keys.
package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/zerolog"

	"github.com/xplnobj/codec/internal/database"
	gormstorage "github.com/xplnobj/codec/internal/storage/gorm"
)

// DefaultFlushInterval is how often queued conversion records are written.
const DefaultFlushInterval = 2 * time.Second

// Backend wraps the GORM backend with a Postgres connection.
type Backend struct {
	*gormstorage.Backend
}

// New connects to Postgres and creates the backend.
func New(logger *slog.Logger, zl zerolog.Logger) (*Backend, error) {
	db, err := database.GetPostgresDB(zl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:            db,
			Logger:        logger,
			FlushInterval: DefaultFlushInterval,
		}),
	}, nil
}

// Close writes queued records and closes the connection pool.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	sqlDB, err := b.DB().DB()
	if err != nil {
		return fmt.Errorf("error accessing sql interface: %w", err)
	}
	return sqlDB.Close()
}
