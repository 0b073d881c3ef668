// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/spendly/backend/internal/application/usecase/auth"
	"github.com/spendly/backend/internal/domain/entity"
	domainerror "github.com/spendly/backend/internal/domain/error"
	"github.com/spendly/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserKey is the context key for the authenticated user.
const UserKey ContextKey = "authenticated_user"

// AuthMiddleware resolves the bearer token of every request to a user.
type AuthMiddleware struct {
	authenticate *auth.AuthenticateUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(authenticate *auth.AuthenticateUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authenticate: authenticate,
	}
}

// Authenticate returns a Gin middleware handler that enforces authentication.
// On failure the chain is aborted and the handler never runs.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.authenticate.Execute(c.Request.Context(), auth.AuthenticateInput{
			AuthorizationHeader: c.GetHeader("Authorization"),
		})
		if err != nil {
			de, ok := domainerror.As(err)
			if !ok {
				de = domainerror.Internal(domainerror.CodeAuthInternalError, domainerror.MsgAuthInternalError, err)
			}
			c.AbortWithStatusJSON(dto.StatusForKind(de.Kind), dto.ErrorResponse{
				Error: de.Message,
				Code:  string(de.Code),
			})
			return
		}

		c.Set(string(UserKey), user)
		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated user from the Gin context.
func GetUserFromContext(c *gin.Context) (*entity.AuthenticatedUser, bool) {
	value, exists := c.Get(string(UserKey))
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.AuthenticatedUser)
	return user, ok && user != nil
}
