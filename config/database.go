package config

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes the database connection. When DATABASE_URL is
// set to a PostgreSQL URL it connects there; otherwise it opens the SQLite
// file named by the active profile.
func ConnectDatabase() error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	var err error
	if url := cfg.DatabaseURL; url != "" && (strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")) {
		DB, err = gorm.Open(postgres.Open(url), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Connected to PostgreSQL database")
		return nil
	}

	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Connected to SQLite database at %s", cfg.DatabasePath)
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
