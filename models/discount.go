package models

import (
	"time"
)

// DiscountCode is a named percentage-off token. Codes are stored as entered
// and matched after upper-casing the submitted value; only active codes apply.
type DiscountCode struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Code               string    `gorm:"uniqueIndex;not null" json:"code"`
	DiscountPercentage float64   `gorm:"not null" json:"discount_percentage"`
	Active             bool      `gorm:"default:true" json:"active"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName specifies the table name for the DiscountCode model
func (DiscountCode) TableName() string {
	return "discount_codes"
}
