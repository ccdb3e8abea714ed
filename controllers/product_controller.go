package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
	"github.com/agrichem-solutions/agrichem-api/services"
	"github.com/agrichem-solutions/agrichem-api/utils"
)

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Size        string   `json:"size"`
	Stock       int      `json:"stock"`
	Rating      float64  `json:"rating"`
}

// ListProducts handles GET /api/products - lists products with optional
// category and search filters. Category is an exact match; search is a
// substring match over name and description.
func ListProducts(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Product{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	} else if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// GetProduct handles GET /api/products/:id
func GetProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch product",
			},
		})
		return
	}

	attachImageURL(&product)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}

// CreateProduct handles POST /api/products
func CreateProduct(c *gin.Context) {
	var req ProductRequest
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

	product := models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       *req.Price,
		Size:        req.Size,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Product added successfully",
		"product_id": product.ID,
	})
}

// UpdateProduct handles PUT /api/products/:id - full replace of mutable fields
func UpdateProduct(c *gin.Context) {
	var req ProductRequest
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
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch product",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"name":        req.Name,
		"category":    req.Category,
		"description": req.Description,
		"price":       *req.Price,
		"size":        req.Size,
		"stock":       req.Stock,
		"rating":      req.Rating,
	}
	if err := db.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
	})
}

// DeleteProduct handles DELETE /api/products/:id - hard delete with no
// referential check; existing order items keep their product_id and render
// with a null product name.
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()

	if err := db.Delete(&models.Product{}, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// UploadProductImage handles POST /api/products/:id/image - uploads a PNG
// product image to S3 and records the key on the product
func UploadProductImage(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch product",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Image file is required",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "VALIDATION_ERROR"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	storage := services.GetS3Service()
	if storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	s3Key, err := storage.UploadFile(fileHeader)
	if err != nil {
		zap.L().Error("product image upload failed", zap.Uint("product_id", product.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_ERROR",
				"message": "Failed to upload image",
			},
		})
		return
	}

	// Replace any previous image; best effort on the old object.
	if product.ImageS3Key != nil && *product.ImageS3Key != "" {
		if err := storage.DeleteFile(*product.ImageS3Key); err != nil {
			zap.L().Warn("failed to delete previous product image", zap.String("s3_key", *product.ImageS3Key), zap.Error(err))
		}
	}

	if err := db.Model(&product).Update("image_s3_key", s3Key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save image reference",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product image uploaded successfully",
		"s3_key":  s3Key,
	})
}

// attachImageURL fills the computed ImageURL field from the stored S3 key
func attachImageURL(product *models.Product) {
	if product.ImageS3Key == nil || *product.ImageS3Key == "" {
		return
	}
	storage := services.GetS3Service()
	if storage == nil {
		return
	}
	url, err := storage.GetPresignedURL(*product.ImageS3Key)
	if err != nil {
		zap.L().Warn("failed to presign product image", zap.String("s3_key", *product.ImageS3Key), zap.Error(err))
		return
	}
	product.ImageURL = url
}
