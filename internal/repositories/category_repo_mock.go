package repositories

import (
	"sort"
	"sync"

	"footshop/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[uint]models.Category
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[uint]models.Category),
	}
}

// Add stores a category, keyed by its ID.
func (r *MockCategoryRepository) Add(category models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = category
}

// List returns all categories ordered by identifier.
func (r *MockCategoryRepository) List() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categoryList = append(categoryList, c)
	}
	sort.Slice(categoryList, func(i, j int) bool {
		return categoryList[i].ID < categoryList[j].ID
	})
	return categoryList, nil
}
