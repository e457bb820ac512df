package auth

import (
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, users middleware.UserLoader) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.GET("/profile",
			middleware.AuthMiddleware(users),
			middleware.ContextLogger(zap.L()),
			middleware.RateLimitByUser(2, 5),
			handler.Profile,
		)
	}
}
