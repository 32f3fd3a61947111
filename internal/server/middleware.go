package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"auction-settlement/services/bidding/helpers"
	"auction-settlement/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
		"actor":   c.GetString(helpers.ActorKey),
	})
}

// ActorMiddleware requires the X-User-ID header and stores it as the acting user
func ActorMiddleware(c *gin.Context) {
	actor := strings.TrimSpace(c.GetHeader(helpers.ActorHeader))
	if actor == "" {
		utils.JSONAbort(c, http.StatusUnauthorized, errors.New("missing "+helpers.ActorHeader+" header"), "acting user required")
		return
	}
	c.Set(helpers.ActorKey, actor)
	c.Next()
}

// CronAuthMiddleware protects the sweep endpoints with a bearer secret.
// An empty secret leaves them open, which is only meant for local runs.
func CronAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			utils.Warn("cron request rejected", map[string]any{"path": c.Request.URL.Path})
			utils.JSONAbort(c, http.StatusUnauthorized, errors.New("invalid cron secret"), "unauthorized")
			return
		}
		c.Next()
	}
}
