package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// APIKeyHeader is the fixed header carrying the perimeter shared secret.
const APIKeyHeader = "X-API-Key"

// NewAPIKeyGate rejects any request that does not carry the configured
// shared secret, before the rate limiter and any business logic. The
// health-check path is the single exemption. A missing header is treated
// identically to a mismatched one.
func NewAPIKeyGate(apiKey, healthPath string, rejections prometheus.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == healthPath {
			c.Next()
			return
		}
		if c.GetHeader(APIKeyHeader) != apiKey {
			if rejections != nil {
				rejections.Inc()
			}
			c.AbortWithStatusJSON(401, gin.H{"error": "Unauthorized: Invalid or missing API key."})
			return
		}
		c.Next()
	}
}
