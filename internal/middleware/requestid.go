package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// ContextRequestID is the gin context key under which the request ID
// is stored for the logging and error middleware.
const ContextRequestID = "request_id"

// RequestID tags every request with an ID, honoring one supplied by
// the client and minting a fresh UUID otherwise. The ID is echoed back
// in the response so clients can correlate log entries.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
