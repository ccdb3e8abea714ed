package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema and
// installs it as the active database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// seedTestData loads the documented seed catalog (six products, four
// services, four discount codes)
func seedTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := models.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
}

// setupTestRouter returns a bare gin engine in test mode
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
