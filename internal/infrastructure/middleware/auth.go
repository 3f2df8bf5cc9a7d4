package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/auth"
	"github.com/marcos-nsantos/identity-service/internal/pkg/httputil"
)

const ClaimKey = "claim"

// UserVerifier is the slice of the user service the middleware needs.
type UserVerifier interface {
	VerifyToken(token string) *entity.TokenClaim
	GetUserByID(ctx context.Context, id string) (*entity.PublicUser, error)
}

type AuthMiddleware struct {
	tokens *auth.TokenService
	users  UserVerifier
}

func NewAuthMiddleware(tokens *auth.TokenService, users UserVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// RequireAuth validates the bearer token and confirms the subject still
// exists before storing the claim on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.tokens.ExtractFromHeader(c.GetHeader("Authorization"))
		if !ok || token == "" {
			httputil.Error(c, http.StatusUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		claim := m.users.VerifyToken(token)
		if claim == nil {
			httputil.Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if _, err := m.users.GetUserByID(c.Request.Context(), claim.UserID); err != nil {
			httputil.Error(c, http.StatusUnauthorized, "user no longer exists")
			c.Abort()
			return
		}

		c.Set(ClaimKey, claim)
		c.Next()
	}
}
