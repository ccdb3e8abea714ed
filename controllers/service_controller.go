package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// BookServiceRequest represents the request body for booking a service
type BookServiceRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required"`
	ServiceID uint    `json:"service_id" binding:"required"`
	Address   *string `json:"address"`
	Notes     *string `json:"notes"`
}

// ListServices handles GET /api/services
func ListServices(c *gin.Context) {
	db := config.GetDB()

	var servicesList []models.Service
	if err := db.Find(&servicesList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch services",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(servicesList),
		"services": servicesList,
	})
}

// BookService handles POST /api/services/book - resolves the customer by
// email (creating one when absent) and records a pending booking
func BookService(c *gin.Context) {
	var req BookServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var service models.Service
	if err := db.First(&service, "id = ?", req.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_NOT_FOUND",
					"message": "Service not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch service",
			},
		})
		return
	}

	var booking models.ServiceBooking
	err := db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		findErr := tx.Where("email = ?", req.Email).First(&customer).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			customer = models.Customer{
				Name:    req.Name,
				Email:   req.Email,
				Phone:   req.Phone,
				Address: req.Address,
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		} else if findErr != nil {
			return findErr
		}

		booking = models.ServiceBooking{
			CustomerID: customer.ID,
			ServiceID:  service.ID,
			Status:     "pending",
			Notes:      req.Notes,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to book service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Service booked successfully",
		"booking_id": booking.ID,
	})
}
