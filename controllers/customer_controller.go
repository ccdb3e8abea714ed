package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// ListCustomers handles GET /api/customers
func ListCustomers(c *gin.Context) {
	db := config.GetDB()

	var customers []models.Customer
	if err := db.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(customers),
		"customers": customers,
	})
}

// GetCustomer handles GET /api/customers/:id
func GetCustomer(c *gin.Context) {
	db := config.GetDB()

	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CUSTOMER_NOT_FOUND",
					"message": "Customer not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch customer",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"customer": customer,
	})
}
