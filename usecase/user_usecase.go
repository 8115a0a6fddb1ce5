package usecase

import (
	"context"
	"errors"
	"strings"

	"mckart-backend/apperr"
	"mckart-backend/dao"
	"mckart-backend/model"
)

type UserUsecase struct {
	users dao.UserStore
}

func NewUserUsecase(users dao.UserStore) *UserUsecase {
	return &UserUsecase{users: users}
}

// Register gets or creates the user for an email address. Existing
// users log in with whatever name and role they registered with.
func (u *UserUsecase) Register(ctx context.Context, name, email, role string) (*model.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, apperr.Validation("name and email are required")
	}
	if role != "buyer" && role != "seller" {
		return nil, apperr.Validation("role must be buyer or seller")
	}

	existing, err := u.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, dao.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		ID:    newID(),
		Name:  name,
		Email: email,
		Role:  role,
	}
	if err := u.users.Insert(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}
