package repositories

import (
	"errors"

	"footshop/internal/models"
)

// ErrProductNotFound is returned when no product row matches the given ID.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows a product listing. Category matches the column
// exactly; Search matches rows whose name or category contains the substring,
// case sensitivity delegated to the store's collation.
type ProductFilter struct {
	Category string
	Search   string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
