package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequestLogger emits one structured access log line per request. The
// level follows the response status: error for 5xx, warn for 4xx, info
// otherwise.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		entry := log.With().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Logger()

		switch {
		case status >= 500:
			entry.Error().Str("errors", c.Errors.String()).Msg("request")
		case status >= 400:
			entry.Warn().Msg("request")
		default:
			entry.Info().Msg("request")
		}
	}
}
