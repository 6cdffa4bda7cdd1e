package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/controllers"
	"github.com/lashup/lashup-api/middlewares"
)

func BookingRoutes(server *gin.Engine) {
	bookings := server.Group("/api/bookings", middlewares.RequireAuth())
	{
		bookings.POST("", controllers.CreateBooking)
		bookings.GET("/me", controllers.GetMyBookings)
		bookings.PUT("/:id/cancel", controllers.CancelBooking)

		bookings.GET("", middlewares.RequireAdmin(), controllers.GetAllBookings)
		bookings.PUT("/:id/status", middlewares.RequireAdmin(), controllers.UpdateBookingStatus)
	}
}
