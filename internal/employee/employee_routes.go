package employee

import (
	"go-ems/internal/middleware"
	"go-ems/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, users middleware.UserLoader) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(users))
	employees.Use(middleware.ContextLogger(zap.L()))
	{
		// Self-service, any authenticated account.
		employees.GET("/profile",
			middleware.RateLimitByUser(5, 20),
			handler.MyProfile,
		)

		admin := employees.Group("", middleware.RoleMiddleware(user.RoleAdmin))
		{
			admin.GET("",
				middleware.RateLimitByUser(3, 10),
				handler.List,
			)

			admin.GET("/users-without-employee-records",
				middleware.RateLimitByUser(3, 10),
				handler.OnboardableUsers,
			)

			admin.GET("/:id",
				middleware.RateLimitByUser(3, 10),
				handler.GetByID,
			)

			admin.POST("",
				middleware.RateLimitByUser(0.5, 2),
				handler.Create,
			)

			admin.PUT("/:id",
				middleware.RateLimitByUser(0.5, 2),
				handler.Update,
			)

			admin.DELETE("/:id",
				middleware.RateLimitByUser(0.2, 1),
				handler.Delete,
			)
		}
	}
}
