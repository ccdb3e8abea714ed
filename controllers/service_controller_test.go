package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrichem-solutions/agrichem-api/models"
)

func TestListServices(t *testing.T) {
	db := setupTestDB(t)
	seedTestData(t, db)

	router := setupTestRouter()
	router.GET("/services", ListServices)

	req, _ := http.NewRequest(http.MethodGet, "/services", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response["success"].(bool))
	assert.Equal(t, float64(4), response["count"])

	servicesList := response["services"].([]interface{})
	first := servicesList[0].(map[string]interface{})
	assert.Equal(t, "Pest Consultation", first["name"])
}

func TestBookService(t *testing.T) {
	db := setupTestDB(t)
	seedTestData(t, db)

	var service models.Service
	db.Where("name = ?", "Soil Testing").First(&service)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name: "Successfully book a service for a new customer",
			requestBody: map[string]interface{}{
				"name":       "Meera Joshi",
				"email":      "meera@sunrisefarm.example",
				"phone":      "555-0303",
				"service_id": service.ID,
				"notes":      "Prefer a morning visit",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Fail with unknown service",
			requestBody: map[string]interface{}{
				"name":       "Meera Joshi",
				"email":      "meera@sunrisefarm.example",
				"phone":      "555-0303",
				"service_id": 9999,
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "SERVICE_NOT_FOUND",
		},
		{
			name: "Fail with missing phone",
			requestBody: map[string]interface{}{
				"name":       "Meera Joshi",
				"email":      "meera@sunrisefarm.example",
				"service_id": service.ID,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/services/book", BookService)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/services/book", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			json.Unmarshal(w.Body.Bytes(), &response)
			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
				return
			}

			var booking models.ServiceBooking
			err := db.First(&booking, "id = ?", response["booking_id"]).Error
			assert.NoError(t, err)
			assert.Equal(t, "pending", booking.Status)
			assert.Equal(t, service.ID, booking.ServiceID)
		})
	}
}

func TestBookService_ReusesExistingCustomer(t *testing.T) {
	db := setupTestDB(t)
	seedTestData(t, db)

	existing := models.Customer{Name: "Meera Joshi", Email: "meera@sunrisefarm.example", Phone: "555-0303"}
	assert.NoError(t, db.Create(&existing).Error)

	var service models.Service
	db.First(&service)

	router := setupTestRouter()
	router.POST("/services/book", BookService)

	body, _ := json.Marshal(map[string]interface{}{
		"name":       "Meera Joshi",
		"email":      "meera@sunrisefarm.example",
		"phone":      "555-0404",
		"service_id": service.ID,
	})
	req, _ := http.NewRequest(http.MethodPost, "/services/book", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count, "Booking must not duplicate an existing customer")

	var booking models.ServiceBooking
	db.Order("id DESC").First(&booking)
	assert.Equal(t, existing.ID, booking.CustomerID)
}
