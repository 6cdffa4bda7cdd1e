package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lashup/lashup-api/initializers"
	"github.com/lashup/lashup-api/models"
	"github.com/lashup/lashup-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// A second pooled connection would see a fresh empty in-memory
	// database, so pin the pool to one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Product{},
		&models.Booking{},
		&models.ProductOrder{},
		&models.GalleryItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	initializers.DB = db
	return db
}

// setupMocks swaps the payment provider and mailer for mocks and restores
// the real ones when the test finishes.
func setupMocks(t *testing.T) (*services.MockPaymentProvider, *services.MockMailer) {
	payment := services.NewMockPaymentProvider()
	mailer := services.NewMockMailer()
	previousPayment := services.Payment
	previousMailer := services.Mail
	services.SetPaymentProvider(payment)
	services.SetMailer(mailer)
	t.Cleanup(func() {
		services.SetPaymentProvider(previousPayment)
		services.SetMailer(previousMailer)
	})
	return payment, mailer
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	user := models.User{Name: name, Email: email, Password: "$2a$10$unusable", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// authAs injects claims the way RequireAuth would after validating a token.
func authAs(user models.User) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("user", jwt.MapClaims{
			"user_id": float64(user.ID),
			"email":   user.Email,
			"name":    user.Name,
			"role":    user.Role,
		})
		ctx.Next()
	}
}

func performRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response %q: %v", recorder.Body.String(), err)
	}
	return response
}
