package usecase

import (
	"context"
	"fmt"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"

	"go.uber.org/zap"
)

type UserService interface {
	GetUsers(ctx context.Context) ([]entity.User, error)
}

type userService struct {
	users repository.Collection[entity.User]
	log   *zap.Logger
}

func NewUserService(users repository.Collection[entity.User], log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}
