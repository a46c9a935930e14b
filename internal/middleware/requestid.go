package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request id generation
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware reuses the caller's request id or generates one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Caller supplied id
		if id == "" {
			id = uuid.NewString() // Generate a new id
		}
		c.Set("requestID", id)        // Store request id in context
		c.Header(RequestIDHeader, id) // Echo it back
		c.Next()                      // Proceed to the next handler
	}
}

// GetRequestID returns the request id stored by RequestIDMiddleware
func GetRequestID(c *gin.Context) string {
	return c.GetString("requestID")
}
