package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

// ErrorBody is the stable error shape returned to clients.
type ErrorBody struct {
	Errors map[string][]string `json:"errors"`
}

// LoggerKey is the gin context key holding the request-scoped *logrus.Entry.
const LoggerKey = "logger"

// JSON writes data with the given status, defaulting to 200.
func JSON[T any](c *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

// Error maps err through the taxonomy and writes the error body.
func Error(c *gin.Context, err error) {
	ae := apperror.From(err)
	logFailure(c, ae)
	c.JSON(ae.Status(), ErrorBody{Errors: ae.Body()})
}

// Abort is Error for middleware: the handler chain stops here.
func Abort(c *gin.Context, err error) {
	ae := apperror.From(err)
	logFailure(c, ae)
	c.AbortWithStatusJSON(ae.Status(), ErrorBody{Errors: ae.Body()})
}

// NotFoundRoute answers unknown routes with the error shape.
func NotFoundRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorBody{Errors: map[string][]string{
		"message": {"the requested resource does not exist on this server"},
	}})
}

func logFailure(c *gin.Context, ae *apperror.Error) {
	v, ok := c.Get(LoggerKey)
	if !ok {
		return
	}
	entry, ok := v.(*logrus.Entry)
	if !ok {
		return
	}
	entry = entry.WithFields(logrus.Fields{"kind": ae.Kind.String(), "status": ae.Status()})
	if ae.Err != nil {
		entry = entry.WithError(ae.Err)
	}
	if ae.Kind == apperror.KindInternal {
		entry.Error("request failed")
		return
	}
	entry.Debug("request rejected")
}
