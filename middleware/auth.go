package middleware

import (
	"context"
	"errors"
	"net/http"

	"orders-api/models"
	"orders-api/services"
	"orders-api/utils"

	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*models.Principal, error)
}

type principalContextKey struct{}

// AuthMiddleware is the single verification step for protected routes: it
// reads the bearer token, validates it and resolves its subject. Every
// failure is a 401 and the handler never runs.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := utils.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		principal, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), principalContextKey{}, principal))
		c.Next()
	}
}

func PrincipalFromContext(ctx context.Context) (*models.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(*models.Principal)
	return principal, ok && principal != nil
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Message: unauthorizedMessage(err),
		Error:   models.ErrClassAuthentication,
	})
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, utils.ErrTokenMissing):
		return "Authorization header required"
	case errors.Is(err, utils.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, services.ErrAuthBackend):
		return "Failed to authenticate token"
	default:
		return "Invalid or expired token"
	}
}
