package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"footshop/internal/models"
)

func newIntegrationApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}))
	require.NoError(t, seedCatalog(db))

	return NewApp(db, nil, true)
}

func TestHealthCheck(t *testing.T) {
	app := newIntegrationApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestUnmatchedRoute(t *testing.T) {
	app := newIntegrationApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}))

	require.NoError(t, seedCatalog(db))
	var first int64
	require.NoError(t, db.Model(&models.Product{}).Count(&first).Error)
	require.NotZero(t, first)

	require.NoError(t, seedCatalog(db))
	var second int64
	require.NoError(t, db.Model(&models.Product{}).Count(&second).Error)
	assert.Equal(t, first, second)
}

func TestCreateThenFetchRoundTrip(t *testing.T) {
	app := newIntegrationApp(t)

	payload, err := json.Marshal(map[string]interface{}{
		"name":     "Ball A",
		"price":    "500.000",
		"image":    "x.png",
		"category": "Shoes",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      uint   `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.True(t, created.Success)
	require.NotZero(t, created.ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/products/"+itoa(created.ID), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched struct {
		Success bool           `json:"success"`
		Data    models.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	assert.Equal(t, "Ball A", fetched.Data.Name)
	assert.Equal(t, "500.000", fetched.Data.Price)
	assert.Equal(t, "x.png", fetched.Data.Image)
	assert.Equal(t, "Shoes", fetched.Data.Category)
	assert.Equal(t, 0, fetched.Data.Stock)
	assert.Nil(t, fetched.Data.Badge)
}

func TestListProductsFilterContract(t *testing.T) {
	app := newIntegrationApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products?category=Shoes", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Data    []models.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.True(t, listed.Success)
	require.NotZero(t, listed.Count)
	for _, p := range listed.Data {
		assert.Equal(t, "Shoes", p.Category)
	}
	for i := 1; i < len(listed.Data); i++ {
		assert.False(t, listed.Data[i-1].CreatedAt.Before(listed.Data[i].CreatedAt), "products must be newest first")
	}
}

func TestLogCatalogEventAcksDelivery(t *testing.T) {
	msg := amqp.Delivery{
		DeliveryTag: 7,
		Body:        []byte(`{"event":"product.created","payload":{"id":1}}`),
	}
	// A nil return acks the delivery; the consumer never requeues logged
	// events.
	assert.NoError(t, logCatalogEvent(msg))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
