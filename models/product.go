package models

import (
	"time"
)

// Product represents an agrochemical product in the catalog
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `gorm:"not null;index" json:"category"` // insecticide, herbicide, fungicide
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Size        string    `json:"size"` // pack size label, e.g. "1L Bottle"
	Stock       int       `gorm:"default:0" json:"stock"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	ImageS3Key  *string   `json:"image_s3_key,omitempty"`       // nullable, S3 key for uploaded product image
	ImageURL    string    `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
