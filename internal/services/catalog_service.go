package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"footshop/internal/models"
	"footshop/internal/repositories"
)

// ErrValidation marks a rejected write, such as a create with required
// fields missing. Handlers map it to a 400 response.
var ErrValidation = errors.New("validation failed")

// EventPublisher publishes catalog change events to the message broker.
type EventPublisher interface {
	PublishCatalogEvent(event string, payload map[string]interface{}) error
}

// CatalogService handles business logic for the product catalog.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	validate     *validator.Validate
	events       EventPublisher
}

// NewCatalogService creates a new CatalogService. events may be nil when no
// broker is configured.
func NewCatalogService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		validate:     validator.New(),
		events:       events,
	}
}

// ListProducts retrieves products matching the filter, newest first.
func (s *CatalogService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct validates and inserts a new product. Name, price, image and
// category are mandatory; optional fields stay absent and stock defaults to
// zero. The store assigns the ID and creation timestamp.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.publish("product.created", product)
	return nil
}

// UpdateProduct replaces every mutable field of an existing product.
// Unlike create there is no required-field validation: a partial body nulls
// the omitted columns, which is the contract clients rely on today.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.publish("product.updated", product)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.publish("product.deleted", &models.Product{ID: id})
	return nil
}

// ListCategories retrieves all categories ordered by identifier.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// publish sends a catalog change event, best-effort. Publishing failures are
// logged and never surfaced to the API caller.
func (s *CatalogService) publish(event string, product *models.Product) {
	if s.events == nil {
		return
	}
	payload := map[string]interface{}{
		"id":       product.ID,
		"name":     product.Name,
		"category": product.Category,
		"stock":    product.Stock,
	}
	if err := s.events.PublishCatalogEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", event, product.ID, err)
	}
}
