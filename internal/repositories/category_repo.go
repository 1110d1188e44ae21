package repositories

import "footshop/internal/models"

// CategoryRepository defines read access to the categories table.
type CategoryRepository interface {
	List() ([]models.Category, error)
}
