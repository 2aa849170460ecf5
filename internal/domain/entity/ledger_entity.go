package entity

import (
	"time"

	"github.com/google/uuid"
)

type CategoryType string

const (
	CategoryEssential    CategoryType = "Essential"
	CategoryNonEssential CategoryType = "NonEssential"
)

func (t CategoryType) Valid() bool {
	return t == CategoryEssential || t == CategoryNonEssential
}

type PlanType string

const (
	PlanDaily   PlanType = "Daily"
	PlanWeekly  PlanType = "Weekly"
	PlanMonthly PlanType = "Monthly"
)

func (p PlanType) Valid() bool {
	return p == PlanDaily || p == PlanWeekly || p == PlanMonthly
}

// Category is owned directly by a user.
type Category struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	CatType   CategoryType `json:"cat_type"`
	UserID    uuid.UUID    `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Budget belongs to a user through its category.
type Budget struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Plan        PlanType   `json:"plan"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

// Expense belongs to a user through its category.
type Expense struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}
