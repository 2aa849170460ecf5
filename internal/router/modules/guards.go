package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
)

// Guards is the request-boundary middleware shared by modules.
type Guards struct {
	// Auth requires a bearer access token that resolves to a live user.
	Auth gin.HandlerFunc
	// Session requires a refresh_token cookie.
	Session gin.HandlerFunc
	// Limit builds a rate limiter allowing max requests per window per key.
	Limit func(max int, key middleware.KeyFunc) gin.HandlerFunc
}

func (g Guards) limit(max int, key middleware.KeyFunc) gin.HandlerFunc {
	if g.Limit == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return g.Limit(max, key)
}
