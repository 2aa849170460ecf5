package application

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/budget-ledger-api/internal/domain/repository"
)

type Repositories struct {
	Users      repo.UserRepository
	Sessions   repo.SessionRepository
	Categories repo.CategoryRepository
	Budgets    repo.BudgetRepository
	Expenses   repo.ExpenseRepository
}

// Deps is everything the services need, built once at startup.
type Deps struct {
	Repos      Repositories
	Tokens     TokenCodec
	Hasher     PasswordHasher
	SessionTTL time.Duration

	Notifier  Notifier
	Directory UserDirectory
	Avatars   AvatarStore

	Logger logrus.FieldLogger
	Now    func() time.Time
}

type Services struct {
	Users      *UserService
	Sessions   *SessionService
	Categories *CategoryService
	Budgets    *BudgetService
	Expenses   *ExpenseService
	Guard      *Guard
}

func NewServices(d Deps) *Services {
	logger := d.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	sessions := NewSessionService(d.Repos.Sessions, d.Tokens, d.SessionTTL, logger.WithField("component", "sessions"))
	sessions.Now = now

	guard := &Guard{Categories: d.Repos.Categories, Budgets: d.Repos.Budgets, Expenses: d.Repos.Expenses}

	return &Services{
		Users: &UserService{
			Users:     d.Repos.Users,
			Hasher:    d.Hasher,
			Tokens:    d.Tokens,
			Sessions:  sessions,
			Notifier:  d.Notifier,
			Directory: d.Directory,
			Avatars:   d.Avatars,
			Logger:    logger.WithField("component", "users"),
			Now:       now,
		},
		Sessions:   sessions,
		Categories: &CategoryService{Categories: d.Repos.Categories, Guard: guard, Logger: logger.WithField("component", "categories")},
		Budgets:    &BudgetService{Budgets: d.Repos.Budgets, Guard: guard, Logger: logger.WithField("component", "budgets")},
		Expenses:   &ExpenseService{Expenses: d.Repos.Expenses, Guard: guard, Logger: logger.WithField("component", "expenses")},
		Guard:      guard,
	}
}
