package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/pkg/response"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an id, echoes it in the response
// header and stores a request-scoped logger under response.LoggerKey.
func RequestIDMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		if logger != nil {
			c.Set(response.LoggerKey, logger.WithFields(logrus.Fields{
				"request_id": id,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}))
		}
		c.Next()
	}
}
