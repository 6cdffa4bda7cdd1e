package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/models"
	"github.com/stretchr/testify/assert"
)

func productRouter() *gin.Engine {
	router := gin.New()
	router.POST("/api/products", CreateProduct)
	router.GET("/api/products", GetProducts)
	router.GET("/api/products/:id", GetProduct)
	router.PUT("/api/products/:id", UpdateProduct)
	router.DELETE("/api/products/:id", DeleteProduct)
	return router
}

func TestProductCRUD(t *testing.T) {
	db := setupTestDB(t)
	router := productRouter()

	t.Run("creates a product", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/products", map[string]any{
			"name":  "Lash Kit",
			"price": 1200,
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)
		var product models.Product
		assert.NoError(t, db.Where("name = ?", "Lash Kit").First(&product).Error)
		assert.True(t, product.IsActive)
	})

	t.Run("rejects a product without a price", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/products", map[string]any{
			"name": "Free Kit",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("updates a product without touching order snapshots", func(t *testing.T) {
		product := createTestProduct(t, db, "Glue", 300)
		order := models.ProductOrder{
			UserID:           1,
			ProductID:        int(product.ID),
			Quantity:         1,
			UnitPrice:        300,
			TotalAmount:      1300,
			PaymentReference: "LSH-PRODUCTTEST000001",
			PaymentStatus:    models.PaymentSuccessful,
			Status:           models.OrderConfirmed,
		}
		assert.NoError(t, db.Create(&order).Error)

		recorder := performRequest(router, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), map[string]any{
			"name":  "Glue Pro",
			"price": 450,
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var reloaded models.ProductOrder
		db.First(&reloaded, order.ID)
		assert.Equal(t, float64(300), reloaded.UnitPrice)
	})

	t.Run("delete deactivates instead of removing", func(t *testing.T) {
		product := createTestProduct(t, db, "Tweezers", 150)

		recorder := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var reloaded models.Product
		assert.NoError(t, db.First(&reloaded, product.ID).Error)
		assert.False(t, reloaded.IsActive)

		recorder = performRequest(router, http.MethodGet, "/api/products", nil)
		assert.NotContains(t, recorder.Body.String(), "Tweezers")
	})

	t.Run("search filters by name", func(t *testing.T) {
		createTestProduct(t, db, "Volume Lashes", 2000)
		createTestProduct(t, db, "Cleanser", 500)

		recorder := performRequest(router, http.MethodGet, "/api/products?search=Volume", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Volume Lashes")
		assert.NotContains(t, recorder.Body.String(), "Cleanser")
	})

	t.Run("404 for a missing product", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/api/products/9999", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
