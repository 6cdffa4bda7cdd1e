package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lashup/lashup-api/controllers"
	"github.com/lashup/lashup-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.GET("/profile", middlewares.RequireAuth(), controllers.GetProfile)
		auth.PUT("/profile", middlewares.RequireAuth(), controllers.UpdateProfile)
		auth.PUT("/change-password", middlewares.RequireAuth(), controllers.ChangePassword)
		auth.DELETE("/account", middlewares.RequireAuth(), controllers.DeleteAccount)

		admin := auth.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.GET("/admin/users", controllers.GetAllUsers)
			admin.GET("/users/:userId", controllers.GetUserDetails)
			admin.PUT("/admin/user/:userId/role", controllers.UpdateUserRole)
			admin.DELETE("/users/:userId", controllers.DeleteUser)
		}
	}
}
