package middleware

import (
	"codeberg.org/wcorrea/apierror/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// returns Gin middleware assigning every request a correlation id.
// an incoming X-Request-ID is kept, otherwise a new UUID is generated.
// the request context carries a logger tagged with the id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		ctx := logger.WithContext(c.Request.Context(), logger.With(RequestIDKey, id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
