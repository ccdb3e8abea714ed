package models

import (
	"time"
)

// Order represents a placed order. TotalAmount is the post-discount total;
// DiscountCode is recorded even when the code did not resolve to a discount.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerID      uint        `gorm:"not null;index" json:"customer_id"`
	Customer        Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	Status          string      `gorm:"not null;default:'pending'" json:"status"` // pending, confirmed, shipped, delivered, cancelled
	DeliveryAddress *string     `json:"delivery_address"`
	SpecialNotes    *string     `json:"special_notes"`
	DiscountCode    *string     `json:"discount_code"`
	DiscountAmount  float64     `gorm:"default:0" json:"discount_amount"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line on an order. Price is the unit price the
// customer submitted at order time; later catalog price changes do not
// affect it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
