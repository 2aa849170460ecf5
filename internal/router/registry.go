package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/budget-ledger-api/pkg/response"
)

const APIPrefix = "/api/v1"

// Registry collects modules and mounts them under /api/v1, or at the root for operational endpoints.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	root        []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(APIPrefix)}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// AddRoot registers a module outside the API prefix.
func (r *Registry) AddRoot(mod Module) {
	r.root = append(r.root, mod)
}

func (r *Registry) RegisterAll() {
	r.Engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Engine.NoRoute(response.NotFoundRoute)

	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	for _, m := range r.root {
		m.Register(&r.Engine.RouterGroup)
	}
}
