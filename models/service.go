package models

import (
	"time"
)

// Service represents a bookable agronomy service (consultation, application,
// soil testing, delivery)
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceBooking joins a customer to a booked service
type ServiceBooking struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`
	Customer    Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	ServiceID   uint      `gorm:"not null;index" json:"service_id"`
	Service     Service   `gorm:"foreignKey:ServiceID" json:"-"`
	BookingDate time.Time `gorm:"autoCreateTime" json:"booking_date"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`
	Notes       *string   `json:"notes"`
}

// TableName specifies the table name for the ServiceBooking model
func (ServiceBooking) TableName() string {
	return "service_bookings"
}
