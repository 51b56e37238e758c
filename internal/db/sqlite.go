package db

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pysugar/code-facts/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrStorageUnavailable reports that the database could not be opened or queried.
var ErrStorageUnavailable = errors.New("storage unavailable")

// InitDB opens the SQLite database at dbPath and migrates the settings and
// generated-fact tables. The returned handle is meant to be created once and
// passed to every store that needs it.
func InitDB(dbPath string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, dbPath, err)
	}

	if err := db.AutoMigrate(&models.Setting{}, &models.GeneratedFact{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrStorageUnavailable, err)
	}

	log.Printf("🗄️  Database ready at %s", dbPath)
	return db, nil
}

// ParseLogLevel maps a level name to a gorm log level. Unknown names fall back
// to Warn.
func ParseLogLevel(name string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
