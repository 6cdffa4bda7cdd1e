package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func authRouter(user models.User) *gin.Engine {
	router := gin.New()
	router.POST("/api/auth/register", Register)
	router.POST("/api/auth/login", Login)
	router.GET("/api/auth/profile", authAs(user), GetProfile)
	router.PUT("/api/auth/profile", authAs(user), UpdateProfile)
	router.PUT("/api/auth/change-password", authAs(user), ChangePassword)
	router.DELETE("/api/auth/account", authAs(user), DeleteAccount)
	router.GET("/api/users", authAs(user), GetAllUsers)
	router.GET("/api/users/:userId", authAs(user), GetUserDetails)
	router.PUT("/api/users/:userId/role", authAs(user), UpdateUserRole)
	router.DELETE("/api/users/:userId", authAs(user), DeleteUser)
	return router
}

// createLoginUser creates a user with a real bcrypt hash so password checks
// pass.
func createLoginUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	hashed, err := hashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	user := models.User{Name: "Ada", Email: email, Password: hashed, Role: models.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	router := authRouter(models.User{})

	t.Run("registers a new user with a lowercased email", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/register", map[string]any{
			"name":     "Ada Lovelace",
			"email":    "Ada@Example.com",
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var user models.User
		assert.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "hunter22", user.Password)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/register", map[string]any{
			"name":     "Other Ada",
			"email":    "ADA@example.com",
			"password": "different1",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, msgEmailTaken, decodeResponse(t, recorder)["message"])
	})

	t.Run("rejects a short password", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/register", map[string]any{
			"name":     "Bob",
			"email":    "bob@example.com",
			"password": "abc",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/register", map[string]any{
			"name":     "Bob",
			"email":    "not-an-email",
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")
	createLoginUser(t, db, "ada@example.com", "hunter22")
	router := authRouter(models.User{})

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ada@example.com",
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		response := decodeResponse(t, recorder)
		assert.NotEmpty(t, response["token"])
	})

	t.Run("matches the email case-insensitively", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ADA@Example.com",
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "ada@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, msgInvalidCredentials, decodeResponse(t, recorder)["message"])
	})

	t.Run("rejects an unknown email with the same message", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "nobody@example.com",
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, msgInvalidCredentials, decodeResponse(t, recorder)["message"])
	})
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Ada", "ada@example.com", models.RoleUser)
	createTestUser(t, db, "Eve", "eve@example.com", models.RoleUser)
	router := authRouter(user)

	t.Run("updates name and email", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, "/api/auth/profile", map[string]any{
			"name":  "Ada L.",
			"email": "Ada.L@Example.com",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var reloaded models.User
		db.First(&reloaded, user.ID)
		assert.Equal(t, "Ada L.", reloaded.Name)
		assert.Equal(t, "ada.l@example.com", reloaded.Email)
	})

	t.Run("refuses an email owned by somebody else", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, "/api/auth/profile", map[string]any{
			"name":  "Ada L.",
			"email": "eve@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	user := createLoginUser(t, db, "ada@example.com", "hunter22")
	router := authRouter(user)

	t.Run("rejects a wrong current password", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, "/api/auth/change-password", map[string]any{
			"currentPassword": "wrong-password",
			"newPassword":     "brand-new-1",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Current password is incorrect", decodeResponse(t, recorder)["message"])
	})

	t.Run("rejects reusing the current password", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, "/api/auth/change-password", map[string]any{
			"currentPassword": "hunter22",
			"newPassword":     "hunter22",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("changes the password", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, "/api/auth/change-password", map[string]any{
			"currentPassword": "hunter22",
			"newPassword":     "brand-new-1",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var reloaded models.User
		db.First(&reloaded, user.ID)
		assert.NoError(t, comparePasswords(reloaded.Password, "brand-new-1"))
	})
}

func TestDeleteAccount(t *testing.T) {
	db := setupTestDB(t)

	t.Run("refuses while active bookings exist", func(t *testing.T) {
		user := createLoginUser(t, db, "busy@example.com", "hunter22")
		service := createTestService(t, db, "Classic Set", 5000)
		booking := models.Booking{
			UserID:    int(user.ID),
			ServiceID: int(service.ID),
			Date:      time.Now().Add(48 * time.Hour),
			Status:    models.BookingPending,
		}
		assert.NoError(t, db.Create(&booking).Error)

		recorder := performRequest(authRouter(user), http.MethodDelete, "/api/auth/account", map[string]any{
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, msgActiveReferences, decodeResponse(t, recorder)["message"])
	})

	t.Run("refuses a wrong password", func(t *testing.T) {
		user := createLoginUser(t, db, "careless@example.com", "hunter22")

		recorder := performRequest(authRouter(user), http.MethodDelete, "/api/auth/account", map[string]any{
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("deletes an account with no active references", func(t *testing.T) {
		user := createLoginUser(t, db, "leaving@example.com", "hunter22")
		booking := models.Booking{
			UserID:    int(user.ID),
			ServiceID: 1,
			Date:      time.Now().Add(48 * time.Hour),
			Status:    models.BookingCancelled,
		}
		assert.NoError(t, db.Create(&booking).Error)

		recorder := performRequest(authRouter(user), http.MethodDelete, "/api/auth/account", map[string]any{
			"password": "hunter22",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var count int64
		db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestUpdateUserRole(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Boss", "boss@example.com", models.RoleAdmin)
	member := createTestUser(t, db, "Ada", "ada@example.com", models.RoleUser)
	router := authRouter(admin)

	t.Run("promotes a user, normalizing the role case", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, fmt.Sprintf("/api/users/%d/role", member.ID), map[string]any{
			"role": "admin",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		var reloaded models.User
		db.First(&reloaded, member.ID)
		assert.Equal(t, models.RoleAdmin, reloaded.Role)
	})

	t.Run("refuses changing your own role", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, fmt.Sprintf("/api/users/%d/role", admin.ID), map[string]any{
			"role": models.RoleUser,
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Cannot change your own role", decodeResponse(t, recorder)["message"])
		var reloaded models.User
		db.First(&reloaded, admin.ID)
		assert.Equal(t, models.RoleAdmin, reloaded.Role)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, fmt.Sprintf("/api/users/%d/role", member.ID), map[string]any{
			"role": "SUPERUSER",
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("404 for a missing user", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPut, "/api/users/9999/role", map[string]any{
			"role": models.RoleUser,
		})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Boss", "boss@example.com", models.RoleAdmin)
	router := authRouter(admin)

	t.Run("refuses while active orders exist", func(t *testing.T) {
		member := createTestUser(t, db, "Ada", "ada@example.com", models.RoleUser)
		order := models.ProductOrder{
			UserID:           int(member.ID),
			ProductID:        1,
			Quantity:         1,
			UnitPrice:        100,
			TotalAmount:      1100,
			PaymentReference: "LSH-DELETETEST0000001",
			PaymentStatus:    models.PaymentSuccessful,
			Status:           models.OrderConfirmed,
		}
		assert.NoError(t, db.Create(&order).Error)

		recorder := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/users/%d", member.ID), nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, msgActiveReferences, decodeResponse(t, recorder)["message"])
	})

	t.Run("deletes a user with no active references", func(t *testing.T) {
		member := createTestUser(t, db, "Eve", "eve@example.com", models.RoleUser)

		recorder := performRequest(router, http.MethodDelete, fmt.Sprintf("/api/users/%d", member.ID), nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var count int64
		db.Model(&models.User{}).Where("id = ?", member.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
