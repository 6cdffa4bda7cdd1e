package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/controllers"
	"github.com/lashup/lashup-api/middlewares"
)

func GalleryRoutes(server *gin.Engine) {
	gallery := server.Group("/api/gallery")
	{
		gallery.GET("", controllers.GetGalleryItems)

		admin := gallery.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("", controllers.AddGalleryItem)
			admin.POST("/upload", controllers.UploadGalleryImages)
			admin.DELETE("/:id", controllers.DeleteGalleryItem)
		}
	}
}
