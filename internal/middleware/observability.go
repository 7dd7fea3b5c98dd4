package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/getmentor/mentorlink-api/pkg/logger"
	"github.com/getmentor/mentorlink-api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// unmatchedRoute labels requests that hit no registered route
const unmatchedRoute = "unmatched"

// sensitiveQueryParams are never copied into request logs
var sensitiveQueryParams = map[string]bool{
	"token": true, "password": true, "secret": true, "session": true,
}

// ObservabilityMiddleware records HTTP metrics and writes one log line per request.
// It must run before IdentityMiddleware: the caller id is read after c.Next, once
// identity has been attached to the request context.
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		// Route template, e.g. /api/v1/requests/:id, keeps label cardinality bounded
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		duration := metrics.MeasureDuration(start)
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)

		metrics.HTTPRequestDuration.WithLabelValues(method, route, statusStr).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, statusStr).Inc()

		fields := []zap.Field{
			zap.String("route", route),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if userID, ok := GetUserID(c.Request.Context()); ok {
			fields = append(fields, zap.String("user_id", userID))
		}
		if status >= 400 {
			fields = append(fields, failureFields(c)...)
		}

		logger.LogHTTPRequest(c.Request.Context(), method, c.Request.URL.Path, status, duration, fields...)
	}
}

// failureFields adds the request id, query and attached errors to failed request logs
func failureFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if id := c.Param("id"); id != "" {
		fields = append(fields, zap.String("resource_id", id))
	}

	if query := c.Request.URL.Query(); len(query) > 0 {
		sanitized := make(map[string]string, len(query))
		for k, v := range query {
			if !sensitiveQueryParams[strings.ToLower(k)] && len(v) > 0 {
				sanitized[k] = v[0]
			}
		}
		if len(sanitized) > 0 {
			fields = append(fields, zap.Any("query_params", sanitized))
		}
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}

	return fields
}
