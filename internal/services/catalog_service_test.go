package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"footshop/internal/models"
	"footshop/internal/repositories"
	"footshop/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCatalogEvent(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func newService(productRepo repositories.ProductRepository, events services.EventPublisher) *services.CatalogService {
	return services.NewCatalogService(productRepo, new(MockCategoryRepository), events)
}

func TestCatalogService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo, nil)

	expected := []models.Product{
		{ID: 2, Name: "Mercurial Vapor 16", Price: "3.100.000", Category: "Shoes", Stock: 8},
		{ID: 1, Name: "Predator Elite FG", Price: "2.500.000", Category: "Shoes", Stock: 12},
	}
	filter := repositories.ProductFilter{Category: "Shoes"}

	mockRepo.On("List", filter).Return(expected, nil).Once()

	products, err := service.ListProducts(filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo, nil)

	expected := &models.Product{ID: 1, Name: "Predator Elite FG", Price: "2.500.000", Category: "Shoes", Stock: 12}

	mockRepo.On("GetByID", uint(1)).Return(expected, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(99)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	product := &models.Product{Name: "Match Ball Pro", Price: "650.000", Image: "/img/match-ball.png", Category: "Balls"}

	mockRepo.On("Create", product).Return(nil).Once()
	mockEvents.On("PublishCatalogEvent", "product.created", mock.Anything).Return(nil).Once()

	err := service.CreateProduct(product)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestCatalogService_CreateProduct_MissingRequiredFields(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newService(mockRepo, nil)

	cases := []models.Product{
		{Price: "650.000", Image: "/img/x.png", Category: "Balls"},
		{Name: "Match Ball Pro", Image: "/img/x.png", Category: "Balls"},
		{Name: "Match Ball Pro", Price: "650.000", Category: "Balls"},
		{Name: "Match Ball Pro", Price: "650.000", Image: "/img/x.png"},
	}
	for _, product := range cases {
		err := service.CreateProduct(&product)
		assert.ErrorIs(t, err, services.ErrValidation)
	}
	// No insert was attempted for any rejected create.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_CreateProduct_PublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	product := &models.Product{Name: "Match Ball Pro", Price: "650.000", Image: "/img/x.png", Category: "Balls"}

	mockRepo.On("Create", product).Return(nil).Once()
	mockEvents.On("PublishCatalogEvent", "product.created", mock.Anything).Return(errors.New("broker down")).Once()

	err := service.CreateProduct(product)
	assert.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	// Update skips required-field validation on purpose: a partial body
	// writes zero values through to the columns.
	partial := &models.Product{ID: 1, Name: "Renamed"}

	mockRepo.On("Update", partial).Return(nil).Once()
	mockEvents.On("PublishCatalogEvent", "product.updated", mock.Anything).Return(nil).Once()

	err := service.UpdateProduct(partial)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Update", mock.Anything).Return(repositories.ErrProductNotFound).Once()
	err = service.UpdateProduct(&models.Product{ID: 99})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	mockEvents.On("PublishCatalogEvent", "product.deleted", mock.Anything).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(1))

	mockRepo.On("Delete", uint(99)).Return(repositories.ErrProductNotFound).Once()
	assert.ErrorIs(t, service.DeleteProduct(99), repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
	// No event for a delete that matched nothing.
	mockEvents.AssertNumberOfCalls(t, "PublishCatalogEvent", 1)
}

func TestCatalogService_ListCategories(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewCatalogService(mockRepo, mockCategories, nil)

	expected := []models.Category{
		{ID: 1, Name: "Shoes", Slug: "shoes"},
		{ID: 2, Name: "Jerseys", Slug: "jerseys"},
	}
	mockCategories.On("List").Return(expected, nil).Once()

	categories, err := service.ListCategories()
	assert.NoError(t, err)
	assert.Equal(t, expected, categories)
	mockCategories.AssertExpectations(t)
}
