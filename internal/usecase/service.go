package usecase

import (
	"errors"

	"clothing-shop/internal/data/repository"
	"clothing-shop/pkg/utils"

	"go.uber.org/zap"
)

// ErrValidation wraps request rule violations.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the per-field messages of a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

type Service struct {
	Auth    AuthService
	User    UserService
	Product ProductService
	Order   OrderService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo.Account, config.JWT, log),
		User:    NewUserService(repo.User, log),
		Product: NewProductService(repo.Product, log),
		Order:   NewOrderService(repo.Order, log),
	}
}
