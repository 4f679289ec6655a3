package middleware

import (
	"expvar"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

var (
	requestsTotal  = expvar.NewInt("requests_total")
	requestsErrors = expvar.NewInt("requests_errors_total")
)

// RequestLogger assigns a request id, counts requests and writes one log
// line per request once the handler chain has finished.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		requestsTotal.Add(1)
		if status >= http.StatusBadRequest {
			requestsErrors.Add(1)
		}

		log.Printf("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
			c.Request.Method, c.Request.URL.Path, status, time.Since(start).Milliseconds(), requestID)
	}
}
