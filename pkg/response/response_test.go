package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

func init() { gin.SetMode(gin.TestMode) }

func render(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	Error(c, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorRendersMessageShape(t *testing.T) {
	rec, body := render(t, apperror.Conflict("email is taken"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, map[string][]string{"message": {"email is taken"}}, body.Errors)
}

func TestErrorNeverLeaksInternals(t *testing.T) {
	rec, body := render(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, []string{"unexpected error occurred"}, body.Errors["message"])
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestErrorRendersValidationFields(t *testing.T) {
	rec, body := render(t, apperror.Validation(map[string][]string{
		"email": {"email is required"},
		"name":  {"name is required"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, body.Errors, 2)
	assert.Equal(t, []string{"name is required"}, body.Errors["name"])
}

func TestAbortStopsChain(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	Abort(c, apperror.Unauthorized())

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
