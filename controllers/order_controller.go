package controllers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// totalTolerance is the float slack allowed between the submitted total and
// the server-side recomputation before a mismatch is flagged.
const totalTolerance = 0.01

var errOrderNumberConflict = errors.New("order number already exists")

// newOrderNumber is swapped out in tests to force collisions.
var newOrderNumber = generateOrderNumber

// OrderCustomerPayload is the customer block of an order submission. Email is
// the upsert key; delivery doubles as the customer's stored address.
type OrderCustomerPayload struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone" binding:"required"`
	FarmSize *int    `json:"farm_size"`
	CropType *string `json:"crop_type"`
	Delivery *string `json:"delivery"`
	Notes    *string `json:"notes"`
}

// OrderItemPayload is one product line in an order submission. Products are
// referenced by name, and the submitted unit price is what gets captured on
// the order item.
type OrderItemPayload struct {
	Product  string  `json:"product" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price" binding:"gte=0"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	Customer     OrderCustomerPayload `json:"customer" binding:"required"`
	Items        []OrderItemPayload   `json:"items" binding:"required,min=1,dive"`
	Total        *float64             `json:"total" binding:"required,gte=0"`
	DiscountCode string               `json:"discount_code"`
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// orderListRow is an order joined with its customer's contact fields
type orderListRow struct {
	models.Order
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// orderItemRow is an order item joined with its product. ProductName is a
// pointer because products can be deleted out from under existing items.
type orderItemRow struct {
	models.OrderItem
	ProductName *string `json:"product_name"`
	Category    *string `json:"category"`
}

// ListOrders handles GET /api/orders - all orders newest first, with the
// customer's name and email joined in
func ListOrders(c *gin.Context) {
	db := config.GetDB()

	var orders []orderListRow
	err := db.Table("orders").
		Select("orders.*, customers.name AS customer_name, customers.email AS customer_email").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Order("orders.created_at DESC, orders.id DESC").
		Scan(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

// GetOrder handles GET /api/orders/:id - a single order with customer contact
// details and its line items. Products are LEFT JOINed so items whose product
// has since been deleted still render, with a null product name.
func GetOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch order",
			},
		})
		return
	}

	var customer models.Customer
	if err := db.First(&customer, "id = ?", order.CustomerID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch order customer",
			},
		})
		return
	}

	var items []orderItemRow
	err := db.Table("order_items").
		Select("order_items.*, products.name AS product_name, products.category AS category").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", order.ID).
		Scan(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch order items",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":               order.ID,
			"order_number":     order.OrderNumber,
			"customer_id":      order.CustomerID,
			"customer_name":    customer.Name,
			"customer_email":   customer.Email,
			"customer_phone":   customer.Phone,
			"total_amount":     order.TotalAmount,
			"status":           order.Status,
			"delivery_address": order.DeliveryAddress,
			"special_notes":    order.SpecialNotes,
			"discount_code":    order.DiscountCode,
			"discount_amount":  order.DiscountAmount,
			"created_at":       order.CreatedAt,
			"items":            items,
		},
	})
}

// CreateOrder handles POST /api/orders - the order placement workflow.
//
// All writes run in one transaction: customer upsert by email, discount
// resolution, order insert, line item inserts and stock decrements. Any
// failure rolls the whole attempt back. Two documented leniencies are kept
// but surfaced in the response instead of staying silent: an unknown or
// inactive discount code still records on the order with a zero discount,
// and item lines naming an unknown product are skipped rather than failing
// the order.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	var (
		order          models.Order
		discountAmount float64
		finalTotal     float64
		skippedItems   []string
		recomputed     float64
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		// Resolve the customer by email, last writer wins on contact fields
		var customer models.Customer
		findErr := tx.Where("email = ?", req.Customer.Email).First(&customer).Error
		switch {
		case findErr == nil:
			updates := map[string]interface{}{
				"name":      req.Customer.Name,
				"phone":     req.Customer.Phone,
				"farm_size": req.Customer.FarmSize,
				"crop_type": req.Customer.CropType,
				"address":   req.Customer.Delivery,
			}
			if err := tx.Model(&customer).Updates(updates).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			customer = models.Customer{
				Name:     req.Customer.Name,
				Email:    req.Customer.Email,
				Phone:    req.Customer.Phone,
				FarmSize: req.Customer.FarmSize,
				CropType: req.Customer.CropType,
				Address:  req.Customer.Delivery,
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		// Resolve the discount. Unknown or inactive codes are still recorded
		// on the order but apply no discount.
		var discountCode *string
		if req.DiscountCode != "" {
			code := strings.ToUpper(req.DiscountCode)
			discountCode = &code

			var dc models.DiscountCode
			lookupErr := tx.Where("code = ? AND active = ?", code, true).First(&dc).Error
			switch {
			case lookupErr == nil:
				discountAmount = *req.Total * dc.DiscountPercentage / 100
			case errors.Is(lookupErr, gorm.ErrRecordNotFound):
				zap.L().Warn("discount code not applied", zap.String("code", code))
			default:
				return lookupErr
			}
		}

		finalTotal = *req.Total - discountAmount

		order = models.Order{
			OrderNumber:     newOrderNumber(),
			CustomerID:      customer.ID,
			TotalAmount:     finalTotal,
			Status:          "pending",
			DeliveryAddress: req.Customer.Delivery,
			SpecialNotes:    req.Customer.Notes,
			DiscountCode:    discountCode,
			DiscountAmount:  discountAmount,
		}
		if err := tx.Create(&order).Error; err != nil {
			if isUniqueViolation(err) {
				return errOrderNumberConflict
			}
			return err
		}

		// Line items: resolve by exact product name, capture the submitted
		// price, decrement stock with no floor. Unknown names are skipped.
		for _, item := range req.Items {
			var product models.Product
			resolveErr := tx.Where("name = ?", item.Product).First(&product).Error
			if errors.Is(resolveErr, gorm.ErrRecordNotFound) {
				skippedItems = append(skippedItems, item.Product)
				continue
			}
			if resolveErr != nil {
				return resolveErr
			}

			// Only charged lines count toward the server-side
			// recomputation; skipped lines never reach the order.
			recomputed += item.Price * float64(item.Quantity)

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			decrement := tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if decrement.Error != nil {
				return decrement.Error
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, errOrderNumberConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NUMBER_CONFLICT",
					"message": "Order number collision, please retry",
				},
			})
			return
		}
		zap.L().Error("order creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// The submitted total is compared against the sum of charged line
	// items. A mismatch is surfaced in the response but does not block
	// the order.
	totalMismatch := math.Abs(recomputed-*req.Total) > totalTolerance

	if len(skippedItems) > 0 {
		zap.L().Warn("order items skipped for unknown products",
			zap.String("order_number", order.OrderNumber),
			zap.Strings("products", skippedItems))
	}
	if totalMismatch {
		zap.L().Warn("submitted order total does not match line items",
			zap.String("order_number", order.OrderNumber),
			zap.Float64("submitted", *req.Total),
			zap.Float64("recomputed", recomputed))
	}

	response := gin.H{
		"success":          true,
		"message":          "Order created successfully",
		"order_id":         order.ID,
		"order_number":     order.OrderNumber,
		"final_total":      finalTotal,
		"discount_applied": discountAmount,
	}
	if len(skippedItems) > 0 {
		response["skipped_items"] = skippedItems
	}
	if totalMismatch {
		response["total_mismatch"] = true
	}

	c.JSON(http.StatusCreated, response)
}

// UpdateOrderStatus handles PUT /api/orders/:id/status - unconditional
// overwrite, no transition table
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch order",
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
	})
}

// generateOrderNumber builds the human-facing order identifier from a UUID
// fragment. The previous timestamp-to-the-second scheme collided under
// concurrent submissions; eight random hex chars do not.
func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// isUniqueViolation reports whether err is a unique constraint failure.
// Works with both SQLite and PostgreSQL error strings.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
