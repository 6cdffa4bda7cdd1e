package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/controllers"
	"github.com/lashup/lashup-api/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	products := server.Group("/api/products")
	{
		products.GET("", controllers.GetProducts)
		products.GET("/:id", controllers.GetProduct)

		admin := products.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("", controllers.CreateProduct)
			admin.PUT("/:id", controllers.UpdateProduct)
			admin.DELETE("/:id", controllers.DeleteProduct)
		}
	}
}
