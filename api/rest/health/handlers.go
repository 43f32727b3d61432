package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "apierror"
	serviceVersion = "1.0.0"
)

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: serviceName,
		Version: serviceVersion,
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

// returns a handler running every check; any failure answers 503
func ReadyHandler(checks map[string]Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := ReadyResponse{Status: "ready", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK

		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}

			resp.Checks[name] = "ok"
		}

		c.JSON(status, resp)
	}
}
