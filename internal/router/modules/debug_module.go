package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
)

// DebugModule exposes expvar at /debug/vars, rate-limited per IP.
type DebugModule struct {
	Guards Guards
}

func NewDebugModule(g Guards) *DebugModule { return &DebugModule{Guards: g} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.Guards.limit(120, middleware.KeyByIP()), gin.WrapH(expvar.Handler()))
}
