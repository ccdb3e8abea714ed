package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// ValidateDiscountRequest represents the request body for code validation
type ValidateDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateDiscount handles POST /api/discount/validate - case-insensitive
// lookup against active codes. An unknown or inactive code is not an error;
// the response simply reports valid=false.
func ValidateDiscount(c *gin.Context) {
	var req ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Discount code is required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var discount models.DiscountCode
	err := db.Where("code = ? AND active = ?", strings.ToUpper(req.Code), true).First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"valid":   false,
				"message": "Invalid or expired discount code",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to validate discount code",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"valid":               true,
		"code":                discount.Code,
		"discount_percentage": discount.DiscountPercentage,
	})
}
