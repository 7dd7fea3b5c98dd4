package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware sets response headers for a JSON-only API.
// Responses carry per-caller data (profiles, requests, connections) and must not
// be cached or framed. HSTS is sent only when the service is served over HTTPS,
// which is the same condition that marks the session cookie Secure.
func SecurityHeadersMiddleware(https bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()

		// Nothing here renders HTML, so nothing may be loaded or embedded
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Resource-Policy", "same-site")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		h.Set("Cache-Control", "no-store")
		h.Set("Pragma", "no-cache")

		if https {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
