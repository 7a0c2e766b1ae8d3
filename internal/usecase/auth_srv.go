package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"
	"clothing-shop/internal/dto/request"
	"clothing-shop/internal/dto/response"
	"clothing-shop/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	// VerifyToken returns the identity embedded in a valid bearer token.
	VerifyToken(token string) (string, error)
}

type authService struct {
	accounts repository.Collection[entity.Account]
	config   utils.JWTConfig
	log      *zap.Logger
}

func NewAuthService(
	accounts repository.Collection[entity.Account],
	config utils.JWTConfig,
	log *zap.Logger,
) AuthService {
	return &authService{
		accounts: accounts,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) error {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to process password: %w", err)
	}

	// email uniqueness is left to the accounts index
	account := &entity.Account{
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}
	if err := s.accounts.Insert(ctx, account); err != nil {
		s.log.Error("Failed to create account", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("create account %s: %w", req.Email, err)
	}

	s.log.Info("Account registered", zap.String("email", req.Email))
	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	account, err := s.accounts.FindOne(ctx, repository.Filter{"email": req.Email})
	if err != nil {
		s.log.Error("Failed to find account", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find account %s: %w", req.Email, err)
	}

	if account == nil {
		s.log.Warn("Account not found for login", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(s.config.ExpiryMinutes) * time.Minute
	token, err := utils.GenerateToken(s.config.Secret, account.Email, ttl)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("Account logged in", zap.String("email", account.Email))
	return &response.LoginResponse{AccessToken: token}, nil
}

func (s *authService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	identity, err := utils.ParseToken(s.config.Secret, token)
	if err != nil {
		s.log.Debug("Token rejected", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return identity, nil
}
