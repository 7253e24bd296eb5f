package database

import (
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xplnobj/codec/internal/model"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// rows per INSERT
const createBatchSize = 2000

var sqlitePragmas = []string{
	"PRAGMA user_version = 1;",
	"PRAGMA journal_mode = MEMORY;",
	"PRAGMA synchronous = OFF;",
	"PRAGMA cache_size = -32000;",
	"PRAGMA temp_store = MEMORY;",
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        createBatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
}

// PostgresDSN builds the Postgres DSN from the db.* config keys.
func PostgresDSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("db.host"),
		viper.GetString("db.port"),
		viper.GetString("db.username"),
		viper.GetString("db.password"),
		viper.GetString("db.database"),
	)
}

// GetPostgresDB returns a validated connection to the Postgres database using viper config.
func GetPostgresDB(log zerolog.Logger) (*gorm.DB, error) {
	log.Debug().Str("host", viper.GetString("db.host")).Str("database", viper.GetString("db.database")).
		Msg("Connecting to Postgres DB")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  PostgresDSN(),
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error accessing sql interface: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error validating connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	log.Info().Msg("Connected to Postgres DB")
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database file.
// MemoryPath opens a private in-memory database.
func GetSqliteDB(path string, log zerolog.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path not set")
	}

	cfg := gormConfig()
	cfg.PrepareStmt = true
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite DB: %w", err)
	}

	// an in-memory database lives as long as its only connection
	if path == MemoryPath {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("error accessing sql interface: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	for _, pragma := range sqlitePragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	log.Info().Str("path", path).Msg("Using local SQLite DB")
	return db, nil
}

// Migrate creates or updates the reference and conversion tables.
func Migrate(db *gorm.DB, log zerolog.Logger) error {
	log.Info().Str("dialect", db.Name()).Msg("Migrating schema")
	if err := db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("error migrating schema: %w", err)
	}
	log.Info().Msg("Database setup complete")
	return nil
}

// DumpSqliteToDisk writes a point-in-time copy of a SQLite database to a file.
func DumpSqliteToDisk(db *gorm.DB, sqliteFilePath string, log zerolog.Logger) error {
	if sqliteFilePath == "" {
		return fmt.Errorf("sqlite file path not set")
	}

	// VACUUM INTO refuses to overwrite
	if err := os.Remove(sqliteFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing existing DB file: %w", err)
	}

	start := time.Now()
	err := db.Exec("VACUUM INTO ?", sqliteFilePath).Error
	if err != nil {
		return fmt.Errorf("error dumping DB to disk: %w", err)
	}

	log.Debug().Dur("duration", time.Since(start)).Str("path", sqliteFilePath).Msg("Dumped DB to disk")
	return nil
}
