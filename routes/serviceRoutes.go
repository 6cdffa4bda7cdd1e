package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/controllers"
	"github.com/lashup/lashup-api/middlewares"
)

func ServiceRoutes(server *gin.Engine) {
	services := server.Group("/api/services")
	{
		services.GET("", controllers.GetServices)
		services.GET("/:id", controllers.GetService)

		admin := services.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("", controllers.CreateService)
			admin.PUT("/:id", controllers.UpdateService)
			admin.DELETE("/:id", controllers.DeleteService)
		}
	}
}
