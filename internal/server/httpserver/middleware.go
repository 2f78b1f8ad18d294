package httpserver

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gameauth/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	allowMethods = "GET, POST, OPTIONS"
	allowHeaders = "Content-Type, X-User-Id"
	corsMaxAge   = "86400"

	requestIDHeader = "X-Request-Id"
)

// CORS sets Access-Control-Allow-Origin on every response and answers
// preflight (OPTIONS) requests with an empty 200.
func CORS(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowOrigin)

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", allowMethods)
			c.Header("Access-Control-Allow-Headers", allowHeaders)
			c.Header("Access-Control-Max-Age", corsMaxAge)
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// RequestLogger tags each request with an id (reusing an inbound
// X-Request-Id) and logs its outcome.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		c.Next()

		logger.Info(c.Request.Context(), "http request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
