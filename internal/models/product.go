package models

import "time"

// Product represents a row in the products table. Price is kept as the
// dot-grouped string the storefront displays and parses (e.g. "500.000");
// the database never does arithmetic on it.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null" validate:"required"`
	Price       string    `json:"price" gorm:"size:50;not null" validate:"required"`
	Image       string    `json:"image" gorm:"size:500;not null" validate:"required"`
	Category    string    `json:"category" gorm:"size:100;not null;index" validate:"required"`
	Badge       *string   `json:"badge" gorm:"size:50"`
	BadgeClass  *string   `json:"badge_class" gorm:"size:50"`
	Description *string   `json:"description" gorm:"type:text"`
	Stock       int       `json:"stock" gorm:"not null;default:0" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
}

// Available reports whether the product can still be added to a cart.
func (p Product) Available() bool {
	return p.Stock > 0
}
