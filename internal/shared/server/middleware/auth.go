package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/auth"
	"cvmaker-backend/internal/shared/server/respond"
	"cvmaker-backend/internal/shared/telemetry"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
	isAdminKey   = "isAdmin"
)

// TokenVerifier validates a bearer token.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// AdminLookup confirms admin rights against the user store.
type AdminLookup interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Auth reads an optional bearer token and stores the identity in context.
// Requests without a token pass through anonymously; a malformed or invalid
// token is rejected.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" || verifier == nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.UserID)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		if claims.Name != "" {
			c.Set(userNameKey, claims.Name)
		}
		c.Set(isAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// RequireUser rejects anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests from users without admin rights. The user
// store is consulted so a revoked admin loses access before the token expires.
func RequireAdmin(lookup AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}
		isAdmin := IsAdminFromContext(c)
		if lookup != nil {
			ok, err := lookup.IsAdmin(c.Request.Context(), userID)
			if err != nil {
				telemetry.Error("auth.admin_lookup_failed", map[string]any{"user_id": userID, "err": err})
				ok = false
			}
			isAdmin = ok
		}
		if !isAdmin {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	return stringFromContext(c, userEmailKey)
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	return stringFromContext(c, userNameKey)
}

// IsAdminFromContext reports the admin flag carried by the token.
func IsAdminFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get(isAdminKey)
	admin, _ := val.(bool)
	return admin
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
