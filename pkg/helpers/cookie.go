package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RefreshCookie is the cookie carrying the refresh token between signin and refresh/signout.
const RefreshCookie = "refresh_token"

type CookieManager struct {
	Domain string
	Secure bool
	Now    func() time.Time
}

func NewCookie(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

// SetRefresh stores the refresh token as an HttpOnly cookie living until exp.
// A zero exp writes a browser-session cookie.
func (m *CookieManager) SetRefresh(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookie, token, m.maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// ClearRefresh expires the refresh cookie on the client.
func (m *CookieManager) ClearRefresh(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func (m *CookieManager) maxAgeFrom(exp time.Time) int {
	if exp.IsZero() {
		return 0
	}
	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	sec := int(exp.Sub(now).Seconds())
	if sec <= 0 {
		return -1
	}
	return sec
}
