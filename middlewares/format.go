package middlewares

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware logs information about incoming requests.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// The auth middleware has run by now, so the account is known
		// for authenticated routes.
		account := "-"
		if userID, err := ExtractUserIDFromContext(c.Request.Context()); err == nil {
			account = userID
		}

		log.Printf("Request: %s %s | Status: %d | Account: %s | Duration: %v",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), account, time.Since(start))
	}
}
