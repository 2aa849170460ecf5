package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/budget-ledger-api/internal/interface/http"
	"github.com/oksasatya/budget-ledger-api/internal/interface/middleware"
)

// LedgerModule mounts /categories, /budgets and /expenses. All routes need a bearer token.
type LedgerModule struct {
	Handler *handlers.LedgerHandler
	Guards  Guards
	Limit   int
}

func NewLedgerModule(h *handlers.LedgerHandler, g Guards, limit int) *LedgerModule {
	return &LedgerModule{Handler: h, Guards: g, Limit: limit}
}

func (m *LedgerModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("")
	auth.Use(m.Guards.Auth, m.Guards.limit(m.Limit, middleware.KeyByUserID()))

	categories := auth.Group("/categories")
	categories.GET("", m.Handler.ListCategories)
	categories.POST("", m.Handler.CreateCategory)
	categories.PUT("/:id", m.Handler.UpdateCategory)
	categories.DELETE("/:id", m.Handler.DeleteCategory)

	budgets := auth.Group("/budgets")
	budgets.GET("", m.Handler.ListBudgets)
	budgets.POST("", m.Handler.CreateBudget)
	budgets.PUT("/:id", m.Handler.UpdateBudget)
	budgets.DELETE("/:id", m.Handler.DeleteBudget)

	expenses := auth.Group("/expenses")
	expenses.GET("", m.Handler.ListExpenses)
	expenses.POST("", m.Handler.CreateExpense)
	expenses.PUT("/:id", m.Handler.UpdateExpense)
	expenses.DELETE("/:id", m.Handler.DeleteExpense)
}
