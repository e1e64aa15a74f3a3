package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags each request with an X-Request-ID, minting one when the
// caller did not send one. Handlers pick it up from the context when logging
// engine failures.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one line per request after it completes. Conversion and
// export routes carry the grammar and target format as route params; the
// line names the operation so a slow render is attributable at a glance.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestID, _ := c.Get("request_id")
		line := fmt.Sprintf("[%v] %s %s %d %s",
			requestID,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
		if g, f := c.Param("grammar"), c.Param("format"); g != "" && f != "" {
			line += fmt.Sprintf(" op=%s->%s", g, f)
		}
		log.Print(line)
	}
}

// Recovery turns a handler panic into a 500. Engine panics never reach here;
// the dispatch layer recovers those into tagged failures.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
