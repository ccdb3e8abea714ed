package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrichem-solutions/agrichem-api/config"
	"github.com/agrichem-solutions/agrichem-api/models"
)

// searchResult is one hit in the global search response
type searchResult struct {
	Type        string  `json:"type"`
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Search handles GET /api/search?q= - free-text substring search across
// product and service names and descriptions. An empty query matches
// everything, mirroring LIKE '%%'.
func Search(c *gin.Context) {
	db := config.GetDB()
	like := "%" + c.Query("q") + "%"

	fail := func() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Search failed",
			},
		})
	}

	products := []searchResult{}
	err := db.Model(&models.Product{}).
		Select("'product' AS type, id, name, description, price").
		Where("name LIKE ? OR description LIKE ?", like, like).
		Scan(&products).Error
	if err != nil {
		fail()
		return
	}

	servicesHits := []searchResult{}
	err = db.Model(&models.Service{}).
		Select("'service' AS type, id, name, description, price").
		Where("name LIKE ? OR description LIKE ?", like, like).
		Scan(&servicesHits).Error
	if err != nil {
		fail()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": gin.H{
			"products": products,
			"services": servicesHits,
			"total":    len(products) + len(servicesHits),
		},
	})
}
