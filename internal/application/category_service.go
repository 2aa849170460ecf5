package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
	repo "github.com/oksasatya/budget-ledger-api/internal/domain/repository"
	"github.com/oksasatya/budget-ledger-api/pkg/apperror"
)

type CategoryService struct {
	Categories repo.CategoryRepository
	Guard      *Guard
	Logger     logrus.FieldLogger
}

type CategoryInput struct {
	Name    *string
	CatType *entity.CategoryType
}

// Create defaults the type to NonEssential.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, name string, catType entity.CategoryType) (*entity.Category, error) {
	if catType == "" {
		catType = entity.CategoryNonEssential
	}
	c := &entity.Category{Name: name, CatType: catType, UserID: userID}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, apperror.Internal(err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "category_id": c.ID}).Debug("category created")
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	return s.Guard.Category(ctx, userID, id)
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]entity.Category, error) {
	out, err := s.Categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id uuid.UUID, in CategoryInput) (*entity.Category, error) {
	c, err := s.Guard.Category(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.CatType != nil {
		c.CatType = *in.CatType
	}
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, mutationErr(err, msgCategoryNotFound)
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Guard.Category(ctx, userID, id); err != nil {
		return err
	}
	return mutationErr(s.Categories.Delete(ctx, id), msgCategoryNotFound)
}
