package models

// Category represents a row in the categories table. The storefront only
// displays these; it never writes them.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Slug string `json:"slug" gorm:"size:100;not null"`
}
