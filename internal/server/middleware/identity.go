package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nulzo/autorouter/internal/store"
)

const (
	HeaderAppName   = "X-App-Name"
	HeaderRequestID = "X-Request-ID"

	// maxHeaderValue bounds caller-supplied identity values kept in logs.
	maxHeaderValue = 64
)

// Identity tags the request with the caller's app name and a request ID.
// A missing X-Request-ID is generated and echoed back.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if app := truncate(c.GetHeader(HeaderAppName)); app != "" {
			ctx = context.WithValue(ctx, store.ContextKeyAppName, app)
		}

		reqID := truncate(c.GetHeader(HeaderRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx = context.WithValue(ctx, store.ContextKeyRequestID, reqID)
		c.Header(HeaderRequestID, reqID)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func truncate(v string) string {
	if len(v) > maxHeaderValue {
		return v[:maxHeaderValue]
	}
	return v
}

// AppNameFrom returns the caller's X-App-Name, if any.
func AppNameFrom(ctx context.Context) string {
	name, _ := ctx.Value(store.ContextKeyAppName).(string)
	return name
}

// RequestIDFrom returns the request ID set by Identity.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(store.ContextKeyRequestID).(string)
	return id
}
