package middleware

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"
	"go-ems/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserLoader is a local interface; any type with a FindByID matching
// the user repository satisfies it.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AuthMiddleware verifies the bearer token, reloads the account, and
// rejects missing users and deactivated accounts exactly like invalid
// tokens. A token outlives nothing: deactivation takes effect on the
// next request.
func AuthMiddleware(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrMissingToken.Message)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Message)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Message)
			c.Abort()
			return
		}

		userIDStr, ok := claims["user_id"].(string)
		if !ok || userIDStr == "" {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Message)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Message)
			c.Abort()
			return
		}

		u, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || !u.IsActive {
			response.Error(c, http.StatusUnauthorized, autherrors.ErrInvalidToken.Message)
			c.Abort()
			return
		}

		c.Set("user_id", userIDStr)
		c.Set("role", u.Role)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Message)
			c.Abort()
			return
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}
