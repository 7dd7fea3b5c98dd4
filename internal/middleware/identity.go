package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getmentor/mentorlink-api/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// SessionCookieName is the name of the session cookie
const SessionCookieName = "session"

type contextKey struct{ name string }

var userIDKey = contextKey{"user_id"}

// WithIdentity returns a context carrying the caller's user id
func WithIdentity(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the caller's user id and true if set; otherwise "", false.
func GetUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok && v != ""
}

// CallerID returns the identified caller for the request, or "" when anonymous
func CallerID(c *gin.Context) string {
	userID, _ := GetUserID(c.Request.Context())
	return userID
}

// IdentityMiddleware resolves the caller once per request from the session cookie
// or a Bearer token. Anonymous requests pass through without an identity; use
// RequireIdentity on routes that must reject them.
func IdentityMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokenManager.ValidateToken(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck
			if fromCookie {
				ClearSessionCookie(c, cookieDomain, cookieSecure)
			}
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.Header("X-Session-Expired", "true")
			}
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireIdentity aborts with 401 unless IdentityMiddleware identified the caller
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerID(c) == "" {
			_ = c.Error(fmt.Errorf("missing or invalid session")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionToken prefers the Authorization header over the cookie
func sessionToken(c *gin.Context) (token string, fromCookie bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		if bearer, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(bearer), false
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
