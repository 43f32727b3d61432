package middleware

import (
	"fmt"
	"net/http"

	"codeberg.org/wcorrea/apierror/internal/apierror"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
)

// returns a Gin middleware limiting requests per client IP.
// rejections and store failures are rendered through the responder.
func (r *Responder) RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return mgin.NewMiddleware(l,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			detail := fmt.Sprintf("limit of %d requests per %s reached", l.Rate.Limit, l.Rate.Period)
			r.Reject(c, http.StatusTooManyRequests, apierror.KeyTooManyRequests, detail)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			r.Render(c, fmt.Errorf("rate limiter store: %w", err))
		}),
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return c.ClientIP()
		}),
	)
}
