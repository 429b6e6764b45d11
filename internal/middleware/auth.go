package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medvoice/medvoice-api/internal/handler"
	"github.com/medvoice/medvoice-api/internal/model"
)

const (
	contextUserKey  = "current_user"
	contextTokenKey = "access_token"
)

// Authenticator resolves a bearer token to its active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

type AuthMiddleware struct {
	authSvc Authenticator
}

func NewAuthMiddleware(authSvc Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate verifies the bearer token and sets the current user in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		user, err := m.authSvc.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("could not validate credentials"))
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextTokenKey, parts[1])
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authenticate.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// CurrentToken returns the raw bearer token set by Authenticate.
func CurrentToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}
