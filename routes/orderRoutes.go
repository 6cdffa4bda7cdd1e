package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/controllers"
	"github.com/lashup/lashup-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/api/orders")
	{
		// Public: hit by the payment provider's redirect/callback.
		orders.GET("/payment/verify/:reference", controllers.VerifyPayment)

		orders.POST("/payment/initialize", middlewares.RequireAuth(), controllers.InitializePayment)
		orders.GET("/me", middlewares.RequireAuth(), controllers.GetMyOrders)
		orders.PUT("/:id/cancel", middlewares.RequireAuth(), controllers.CancelOrder)

		orders.GET("", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.GetAllOrders)
		orders.PUT("/:id/status", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateOrderStatus)
	}
}
