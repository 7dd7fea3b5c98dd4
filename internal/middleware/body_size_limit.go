package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errBodyTooLarge = errors.New("request body exceeds limit")

// BodySizeLimitMiddleware caps request bodies at maxBodySize bytes.
// A declared Content-Length over the cap is refused with 413 before the handler runs;
// bodies without one are wrapped in http.MaxBytesReader and fail while binding.
func BodySizeLimitMiddleware(maxBodySize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBodySize {
			_ = c.Error(errBodyTooLarge) //nolint:errcheck
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
		c.Next()
	}
}
