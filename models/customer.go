package models

import (
	"time"
)

// Customer represents a farm customer. Email is the identity key: repeat
// orders and bookings upsert against it rather than creating duplicates.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	FarmSize  *int      `json:"farm_size"`
	CropType  *string   `json:"crop_type"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
