package main

import (
	"fmt"
	"log/slog"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"

	"github.com/xplnobj/codec/internal/config"
	"github.com/xplnobj/codec/internal/storage"
	"github.com/xplnobj/codec/internal/storage/memory"
	pgstorage "github.com/xplnobj/codec/internal/storage/postgres"
	sqlitestorage "github.com/xplnobj/codec/internal/storage/sqlite"
)

// openStorage opens and initializes the configured backend on first use.
func (a *app) openStorage() (storage.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}

	storageCfg := config.GetStorageConfig()
	backend, err := createStorageBackend(storageCfg, a.logger, a.zl)
	if err != nil {
		a.logger.Error("Failed to create storage backend", "error", err)
		return nil, err
	}
	if err := backend.Init(); err != nil {
		a.logger.Error("Failed to initialize storage backend", "error", err)
		backend.Close()
		return nil, fmt.Errorf("error initializing %s storage: %w", storageCfg.Type, err)
	}
	a.backend = backend
	return backend, nil
}

func createStorageBackend(storageCfg config.StorageConfig, logger *slog.Logger, zl zerolog.Logger) (storage.Backend, error) {
	switch storageCfg.Type {
	case "postgres":
		backend, err := pgstorage.New(logger, zl)
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres backend: %w", err)
		}
		logger.Info("Postgres storage backend initialized")
		return backend, nil

	case "sqlite":
		path, err := homedir.Expand(storageCfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("error expanding SQLite path: %w", err)
		}
		backend, err := sqlitestorage.New(sqlitestorage.Config{Path: path}, logger, zl)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		logger.Info("SQLite storage backend initialized", "path", path)
		return backend, nil

	case "memory", "":
		memCfg := storageCfg.Memory
		dir, err := homedir.Expand(memCfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("error expanding output dir: %w", err)
		}
		memCfg.OutputDir = dir
		logger.Info("Memory storage backend initialized", "outputDir", dir)
		return memory.New(memCfg), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageCfg.Type)
	}
}
