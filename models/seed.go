package models

import (
	"gorm.io/gorm"
)

// AllModels lists every model for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Product{},
		&Customer{},
		&Order{},
		&OrderItem{},
		&Service{},
		&ServiceBooking{},
		&DiscountCode{},
	}
}

// Seed inserts the initial catalog, services, and discount codes. Each table
// is seeded only when empty, so restarting the server never duplicates rows.
func Seed(db *gorm.DB) error {
	var count int64

	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		products := []Product{
			{Name: "Chlorpyrifos", Category: "insecticide", Description: "Broad-spectrum organophosphate for soil and foliar pests", Price: 45.99, Size: "1L Bottle", Stock: 100, Rating: 4.8},
			{Name: "Deltamethrin", Category: "insecticide", Description: "Pyrethroid insecticide for cotton, vegetables, and fruits", Price: 38.50, Size: "500ml Bottle", Stock: 150, Rating: 4.5},
			{Name: "Lambda-Cyhalothrin", Category: "insecticide", Description: "Fast-acting control for chewing and sucking insects", Price: 52.75, Size: "1L Bottle", Stock: 80, Rating: 4.9},
			{Name: "Malathion", Category: "insecticide", Description: "Effective against aphids, mites, and fruit flies", Price: 34.99, Size: "2L Bottle", Stock: 120, Rating: 4.6},
			{Name: "Glyphosate", Category: "herbicide", Description: "Non-selective herbicide for weed control", Price: 89.99, Size: "5L Container", Stock: 60, Rating: 4.7},
			{Name: "Mancozeb", Category: "fungicide", Description: "Protective fungicide for various crops", Price: 28.50, Size: "1kg Pack", Stock: 200, Rating: 4.4},
		}
		if err := db.Create(&products).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		services := []Service{
			{Name: "Pest Consultation", Description: "Expert advice on pest identification and treatment solutions", Price: 50.00, Icon: "microscope"},
			{Name: "Application Services", Description: "Professional pesticide application by certified technicians", Price: 150.00, Icon: "tractor"},
			{Name: "Soil Testing", Description: "Comprehensive soil analysis for optimal chemical selection", Price: 75.00, Icon: "chart"},
			{Name: "Bulk Delivery", Description: "Free delivery on orders over 500", Price: 0.00, Icon: "package"},
		}
		if err := db.Create(&services).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&DiscountCode{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		codes := []DiscountCode{
			{Code: "SAVE10", DiscountPercentage: 10.0, Active: true},
			{Code: "SAVE20", DiscountPercentage: 20.0, Active: true},
			{Code: "FIRST50", DiscountPercentage: 50.0, Active: true},
			{Code: "BULK15", DiscountPercentage: 15.0, Active: true},
		}
		if err := db.Create(&codes).Error; err != nil {
			return err
		}
	}

	return nil
}
