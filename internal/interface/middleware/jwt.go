package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hyb-mobile-app/hyb-api/pkg/helpers"
	"github.com/hyb-mobile-app/hyb-api/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// JWTAuth validates the bearer token and injects userID and userEmail into the context.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Access token is required", "")
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.Error(c, http.StatusUnauthorized, "Token has expired", "")
				return
			}
			response.Error(c, http.StatusUnauthorized, "Invalid token", "")
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalJWTAuth attaches the identity when a valid bearer token is present and never rejects.
func OptionalJWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.Verify(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxUserEmailKey, claims.Email)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
