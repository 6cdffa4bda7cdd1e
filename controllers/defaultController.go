package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the LashUp And More API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/register" - Create user account
- POST "/api/auth/login" - Access user account
- GET "/api/auth/profile" - Get own profile
- PUT "/api/auth/profile" - Update own profile
- PUT "/api/auth/change-password" - Change password
- DELETE "/api/auth/account" - Delete own account

SERVICES
- GET "/api/services" - List services
- GET "/api/services/:id" - Get service by ID

PRODUCTS
- GET "/api/products" - List active products
- GET "/api/products/:id" - Get product by ID

BOOKINGS
- POST "/api/bookings" - Create a booking
- GET "/api/bookings/me" - Get own bookings
- PUT "/api/bookings/:id/cancel" - Cancel own booking
- PUT "/api/bookings/:id/status" - Update booking status (admin)

ORDERS
- POST "/api/orders/payment/initialize" - Start checkout
- GET "/api/orders/payment/verify/:reference" - Verify payment
- GET "/api/orders/me" - Get own orders
- PUT "/api/orders/:id/cancel" - Cancel own order
- PUT "/api/orders/:id/status" - Update order status (admin)

GALLERY
- GET "/api/gallery" - List gallery items`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
