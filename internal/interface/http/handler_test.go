package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

func TestQueryID(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name        string
		query       string
		wantPresent bool
		wantOK      bool
		wantCode    int
	}{
		{"absent", "", false, true, http.StatusOK},
		{"valid", "?category_id=" + id.String(), true, true, http.StatusOK},
		{"invalid", "?category_id=abc", true, false, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)

			got, present, ok := queryID(c, "category_id")
			assert.Equal(t, tc.wantPresent, present)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK && tc.wantPresent {
				assert.Equal(t, id, got)
			}
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestActingUserWithoutAuthIsUnauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := actingUser(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadAvatarRequiresFile(t *testing.T) {
	h := &UserHandler{AvatarMaxBytes: 1024}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/avatar", nil)
	c.Set(middleware.CtxUserIDKey, uuid.New())

	h.UploadAvatar(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "avatar is required")
}

func TestAllowedImage(t *testing.T) {
	assert.True(t, allowedImage("image/png"))
	assert.True(t, allowedImage("image/webp"))
	assert.False(t, allowedImage("text/html"))
	assert.False(t, allowedImage(""))
}
