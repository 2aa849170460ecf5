package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
)

const (
	seedUsers         = 3
	seedCategories    = 4
	seedPassword      = "password"
	seedUserAgent     = "Seed Agent"
	seedEmailTemplate = "testuser%d@gmail.com"
)

// Seed creates demo users with a few categories each. If the first demo user
// can already sign in, the data is assumed to be there and nothing happens.
func Seed(ctx context.Context, s *Services, logger logrus.FieldLogger) error {
	first := fmt.Sprintf(seedEmailTemplate, 1)
	if _, _, err := s.Users.Signin(ctx, SigninInput{Email: first, Password: seedPassword, UserAgent: seedUserAgent}); err == nil {
		logger.Info("data has already been seeded, skipping")
		return nil
	}

	logger.Info("seeding users...")
	for i := 1; i <= seedUsers; i++ {
		name := fmt.Sprintf("testuser%d", i)
		u, err := s.Users.Signup(ctx, SignupInput{
			Name:     name,
			Email:    fmt.Sprintf(seedEmailTemplate, i),
			Password: seedPassword,
		})
		if err != nil {
			return fmt.Errorf("seed user %s: %w", name, err)
		}
		for j := 1; j <= seedCategories; j++ {
			if _, err := s.Categories.Create(ctx, u.ID, fmt.Sprintf("%s category %d", name, j), entity.CategoryNonEssential); err != nil {
				return fmt.Errorf("seed category for %s: %w", name, err)
			}
		}
	}
	logger.WithField("users", seedUsers).Info("seed ran successfully")
	return nil
}
