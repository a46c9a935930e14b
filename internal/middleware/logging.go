package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// LoggerMiddleware logs every request once it completes
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Request start
		c.Next()            // Run the handler chain

		status := c.Writer.Status()
		entry := logrus.WithFields(logrus.Fields{
			"request_id":  GetRequestID(c),                  // Request id
			"method":      c.Request.Method,                 // HTTP method
			"route":       routeOf(c),                       // Matched route
			"path":        c.Request.URL.Path,               // Raw path
			"status":      status,                           // Response status
			"duration_ms": time.Since(start).Milliseconds(), // Latency
			"client_ip":   c.ClientIP(),                     // Caller address
		})
		// Use appropriate log level based on status code
		switch {
		case status >= 500:
			entry.Error("HTTP request failed")
		case status >= 400:
			entry.Warn("HTTP request rejected")
		default:
			entry.Info("HTTP request completed")
		}
	}
}

// routeOf returns the matched route pattern, or a fixed label for misses
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
