package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// setupIntegrationServer wires the real router against a seeded in-memory
// database
func setupIntegrationServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := models.Seed(db); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
	config.SetDB(db)

	return setupRouter(zap.NewNop()), db
}

// TestOrderPlacementEndToEnd runs the documented storefront scenario: an
// order for two Chlorpyrifos units with code SAVE10 on a 91.98 total.
func TestOrderPlacementEndToEnd(t *testing.T) {
	router, db := setupIntegrationServer(t)

	payload := map[string]interface{}{
		"customer": map[string]interface{}{
			"name":      "Ravi Patel",
			"email":     "ravi@greenfields.example",
			"phone":     "555-0101",
			"farm_size": 80,
			"crop_type": "wheat",
			"delivery":  "14 Canal Road",
			"notes":     "Call before delivery",
		},
		"items": []map[string]interface{}{
			{"product": "Chlorpyrifos", "quantity": 2, "price": 45.99},
		},
		"total":         91.98,
		"discount_code": "SAVE10",
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))
	assert.InDelta(t, 82.782, response["final_total"].(float64), 1e-6)
	assert.InDelta(t, 9.198, response["discount_applied"].(float64), 1e-6)

	// Stock reduced from the seeded 100 to 98
	var product models.Product
	assert.NoError(t, db.Where("name = ?", "Chlorpyrifos").First(&product).Error)
	assert.Equal(t, 98, product.Stock)

	// Exactly one customer exists
	var customerCount int64
	db.Model(&models.Customer{}).Count(&customerCount)
	assert.Equal(t, int64(1), customerCount)

	// The order shows up in the list with joined customer contact
	req, _ = http.NewRequest(http.MethodGet, "/api/orders", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var listResponse map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &listResponse)
	assert.Equal(t, float64(1), listResponse["count"])
	order := listResponse["orders"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "ravi@greenfields.example", order["customer_email"])
	assert.InDelta(t, 82.782, order["total_amount"].(float64), 1e-6)
}

// TestDashboardReflectsActivity verifies stats roll up orders placed through
// the API
func TestDashboardReflectsActivity(t *testing.T) {
	router, _ := setupIntegrationServer(t)

	payload := map[string]interface{}{
		"customer": map[string]interface{}{
			"name":  "Meera Joshi",
			"email": "meera@sunrisefarm.example",
			"phone": "555-0303",
		},
		"items": []map[string]interface{}{
			{"product": "Mancozeb", "quantity": 4, "price": 28.50},
		},
		"total": 114.00,
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/api/stats", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	stats := response["statistics"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_orders"])
	assert.InDelta(t, 114.00, stats["total_revenue"].(float64), 1e-9)
	assert.Equal(t, float64(1), stats["total_customers"])
	assert.Equal(t, float64(6), stats["total_products"])
}

// TestDiscountValidationEndToEnd checks the standalone validation endpoint
// against the seeded codes
func TestDiscountValidationEndToEnd(t *testing.T) {
	router, _ := setupIntegrationServer(t)

	for _, code := range []string{"SAVE10", "save10"} {
		body, _ := json.Marshal(map[string]string{"code": code})
		req, _ := http.NewRequest(http.MethodPost, "/api/discount/validate", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, true, response["valid"], "Code %q should validate", code)
		assert.Equal(t, 10.0, response["discount_percentage"])
	}
}
