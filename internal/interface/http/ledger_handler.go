package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/budget-ledger-api/internal/application"
	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	"github.com/oksasatya/budget-ledger-api/pkg/response"
	"github.com/oksasatya/budget-ledger-api/pkg/validation"
)

// LedgerHandler serves categories, budgets and expenses. Every route needs RequireAuth.
type LedgerHandler struct {
	Categories *application.CategoryService
	Budgets    *application.BudgetService
	Expenses   *application.ExpenseService
}

func NewLedgerHandler(s *application.Services) *LedgerHandler {
	return &LedgerHandler{Categories: s.Categories, Budgets: s.Budgets, Expenses: s.Expenses}
}

type createCategoryRequest struct {
	Name    string              `json:"name" binding:"required,min=1"`
	CatType entity.CategoryType `json:"cat_type" binding:"omitempty,oneof=Essential NonEssential"`
}

type updateCategoryRequest struct {
	Name    *string              `json:"name" binding:"omitempty,min=1"`
	CatType *entity.CategoryType `json:"cat_type" binding:"omitempty,oneof=Essential NonEssential"`
}

type createBudgetRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Amount      *float64        `json:"amount" binding:"required,gte=0"`
	Description string          `json:"description"`
	Plan        entity.PlanType `json:"plan" binding:"omitempty,oneof=Daily Weekly Monthly"`
}

type updateBudgetRequest struct {
	CategoryID  *string          `json:"category_id" binding:"omitempty,uuid"`
	Amount      *float64         `json:"amount" binding:"omitempty,gte=0"`
	Description *string          `json:"description"`
	Plan        *entity.PlanType `json:"plan" binding:"omitempty,oneof=Daily Weekly Monthly"`
}

type createExpenseRequest struct {
	CategoryID  string   `json:"category_id" binding:"required,uuid"`
	Amount      *float64 `json:"amount" binding:"required,gte=0"`
	Description string   `json:"description"`
}

type updateExpenseRequest struct {
	CategoryID  *string  `json:"category_id" binding:"omitempty,uuid"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
}

// ListCategories returns every category of the caller, or a single-element
// list when ?category_id= is given.
func (h *LedgerHandler) ListCategories(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, present, ok := queryID(c, "category_id")
	if !ok {
		return
	}
	if present {
		cat, err := h.Categories.Get(c.Request.Context(), uid, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, []entity.Category{*cat})
		return
	}
	out, err := h.Categories.List(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *LedgerHandler) CreateCategory(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	var req createCategoryRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	cat, err := h.Categories.Create(c.Request.Context(), uid, req.Name, req.CatType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cat)
}

func (h *LedgerHandler) UpdateCategory(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCategoryRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	cat, err := h.Categories.Update(c.Request.Context(), uid, id, application.CategoryInput{Name: req.Name, CatType: req.CatType})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cat)
}

func (h *LedgerHandler) DeleteCategory(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Categories.Delete(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *LedgerHandler) ListBudgets(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, present, ok := queryID(c, "budget_id")
	if !ok {
		return
	}
	if present {
		b, err := h.Budgets.Get(c.Request.Context(), uid, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, []entity.Budget{*b})
		return
	}
	out, err := h.Budgets.List(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *LedgerHandler) CreateBudget(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	var req createBudgetRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	catID, err := parseUUIDPtr("category_id", &req.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	b, err := h.Budgets.Create(c.Request.Context(), uid, entity.Budget{
		CategoryID:  *catID,
		Amount:      *req.Amount,
		Description: req.Description,
		Plan:        req.Plan,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b)
}

func (h *LedgerHandler) UpdateBudget(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateBudgetRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	catID, err := parseUUIDPtr("category_id", req.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	b, err := h.Budgets.Update(c.Request.Context(), uid, id, application.BudgetInput{
		CategoryID:  catID,
		Amount:      req.Amount,
		Description: req.Description,
		Plan:        req.Plan,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, b)
}

func (h *LedgerHandler) DeleteBudget(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Budgets.Delete(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *LedgerHandler) ListExpenses(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, present, ok := queryID(c, "expense_id")
	if !ok {
		return
	}
	if present {
		e, err := h.Expenses.Get(c.Request.Context(), uid, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, []entity.Expense{*e})
		return
	}
	out, err := h.Expenses.List(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	var req createExpenseRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	catID, err := parseUUIDPtr("category_id", &req.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.Expenses.Create(c.Request.Context(), uid, entity.Expense{
		CategoryID:  *catID,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, e)
}

func (h *LedgerHandler) UpdateExpense(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateExpenseRequest
	if err := validation.Bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	catID, err := parseUUIDPtr("category_id", req.CategoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.Expenses.Update(c.Request.Context(), uid, id, application.ExpenseInput{
		CategoryID:  catID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, e)
}

func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	uid, ok := actingUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Expenses.Delete(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusOK)
}
