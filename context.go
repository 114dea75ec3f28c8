package sfexplorer

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceIDKey    = "sfexplorer/trace-id"
	TraceIDHeader = "X-Request-Id"
)

// TraceID tags the request with an id, reusing one sent by a proxy.
func TraceID(c *gin.Context) {
	id := c.GetHeader(TraceIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(TraceIDKey, id)
	c.Header(TraceIDHeader, id)
}

func isEmbedded(c *gin.Context) bool {
	return c.Query("embedded") == "1"
}

// abortWithResult answers with the failed Result as JSON.
func abortWithResult[T any](c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, Err[T](err))
}
