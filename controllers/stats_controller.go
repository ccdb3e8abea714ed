package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// lowStockThreshold is the stock level below which a product appears in the
// dashboard low-stock list.
const lowStockThreshold = 50

// recentOrderRow is a recent order summary for the dashboard
type recentOrderRow struct {
	OrderNumber  string    `json:"order_number"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerName string    `json:"customer_name"`
}

// GetStatistics handles GET /api/stats - dashboard rollups, recomputed on
// every call
func GetStatistics(c *gin.Context) {
	db := config.GetDB()

	fail := func() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute statistics",
			},
		})
	}

	var totalOrders int64
	if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		fail()
		return
	}

	// Revenue excludes cancelled orders. COALESCE handles the empty table.
	var totalRevenue float64
	err := db.Model(&models.Order{}).
		Where("status != ?", "cancelled").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error
	if err != nil {
		fail()
		return
	}

	var totalCustomers int64
	if err := db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		fail()
		return
	}

	var totalProducts int64
	if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		fail()
		return
	}

	var recentOrders []recentOrderRow
	err = db.Table("orders").
		Select("orders.order_number, orders.total_amount, orders.status, orders.created_at, customers.name AS customer_name").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Order("orders.created_at DESC, orders.id DESC").
		Limit(5).
		Scan(&recentOrders).Error
	if err != nil {
		fail()
		return
	}

	var lowStock []models.Product
	err = db.Where("stock < ?", lowStockThreshold).
		Order("stock ASC").
		Find(&lowStock).Error
	if err != nil {
		fail()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"statistics": gin.H{
			"total_orders":       totalOrders,
			"total_revenue":      math.Round(totalRevenue*100) / 100,
			"total_customers":    totalCustomers,
			"total_products":     totalProducts,
			"recent_orders":      recentOrders,
			"low_stock_products": lowStock,
		},
	})
}
