package application

import (
	"github.com/google/uuid"

	"github.com/oksasatya/budget-ledger-api/internal/domain/entity"
)

// UserView is the client-facing projection of a user. It never carries the password hash.
type UserView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Bio         string    `json:"bio"`
	Image       string    `json:"image"`
	AccessToken string    `json:"access_token"`
}

// UserEnvelope wraps a view as {"user": {...}}.
type UserEnvelope struct {
	User UserView `json:"user"`
}

func NewUserView(u *entity.User, accessToken string) UserView {
	return UserView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Bio:         u.Bio,
		Image:       u.Image,
		AccessToken: accessToken,
	}
}
