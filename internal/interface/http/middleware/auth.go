package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pkozlowski/bookstore/internal/infrastructure/persistence/redis"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
	"github.com/pkozlowski/bookstore/pkg/jwt"
	"github.com/pkozlowski/bookstore/pkg/response"
)

// AuthMiddleware guards the management endpoints: extracts the bearer token,
// checks the blacklist, verifies the signature and injects the staff
// identity into the request context.
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware creates the middleware. sessionStore may be nil, which
// disables the blacklist check.
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, sessionStore: sessionStore}
}

// RequireAuth rejects requests without a valid staff token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, apperrors.CodeUnauthorized, "authentication required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, apperrors.CodeInvalidToken, "malformed authorization header")
			c.Abort()
			return
		}
		tokenString := parts[1]

		if m.sessionStore != nil {
			blacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if blacklisted {
				response.ErrorWithCode(c, apperrors.CodeTokenExpired, "token revoked, log in again")
				c.Abort()
				return
			}
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ctxKeyStaffID, claims.StaffID)
		c.Set(ctxKeyEmail, claims.Email)
		c.Set(ctxKeyToken, tokenString)
		c.Next()
	}
}

const (
	ctxKeyStaffID = "staff_id"
	ctxKeyEmail   = "staff_email"
	ctxKeyToken   = "staff_token"
)

// MustGetStaffID returns the authenticated staff id. Only valid behind
// RequireAuth.
func MustGetStaffID(c *gin.Context) uint {
	return c.MustGet(ctxKeyStaffID).(uint)
}

// GetToken returns the raw bearer token behind RequireAuth.
func GetToken(c *gin.Context) string {
	token, _ := c.Get(ctxKeyToken)
	s, _ := token.(string)
	return s
}
