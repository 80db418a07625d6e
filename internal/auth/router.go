package auth

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller) *Router {
	return &Router{controller: controller}
}

// SetupRoutes registers all auth routes. None of them check the role here;
// calls that need a token are forwarded and the backend answers 401/403.
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authRouter.controller.Register)
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/logout", authRouter.controller.Logout)
		auth.GET("/me", authRouter.controller.GetMe)

		auth.PUT("/profile", authRouter.controller.UpdateProfile)
		auth.POST("/change-password", authRouter.controller.ChangePassword)
		auth.POST("/profile-picture", authRouter.controller.UploadProfilePicture)
	}

	rg.GET("/admin/users", authRouter.controller.ListUsers)
}
