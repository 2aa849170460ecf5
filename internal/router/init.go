package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/budget-ledger-api/internal/container"
	handlers "github.com/oksasatya/budget-ledger-api/internal/interface/http"
	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
	"github.com/oksasatya/budget-ledger-api/internal/router/modules"
)

// BuildGuards turns the container into the middleware modules share.
func BuildGuards(c *container.Container) modules.Guards {
	window := c.Config.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	allow := middleware.AllowPaths("/health")
	if c.Config.RateLimitSkipPrivate {
		allow = middleware.AnyOf(allow, middleware.AllowPrivateIP())
	}
	return modules.Guards{
		Auth:    middleware.RequireAuth(c.Tokens, c.Services.Users),
		Session: middleware.RequireSession(c.Tokens),
		Limit: func(max int, key middleware.KeyFunc) gin.HandlerFunc {
			return middleware.RateLimit(c.Redis, max, window, key, allow, c.Logger)
		},
	}
}

// InitModules builds handlers from the container and adds every module to the registry.
// Call it once during startup.
func InitModules(r *Registry, c *container.Container) {
	g := BuildGuards(c)
	s := c.Services

	users := handlers.NewUserHandler(s.Users, s.Sessions, c.Cookies, c.Config.AvatarMaxBytes)
	r.Add(modules.NewUserModule(users, g, c.Config.RateLimitMax))
	r.Add(modules.NewLedgerModule(handlers.NewLedgerHandler(s), g, c.Config.RateLimitMax*6))

	if c.Config.DebugMetricsEnabled {
		r.AddRoot(modules.NewDebugModule(g))
	}
}
