package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campsite-service/internal/auth"
	"campsite-service/internal/models"
	"campsite-service/internal/repository"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password; login failures do not reveal which half was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	users repository.UserRepository
	log   *zap.SugaredLogger
}

func NewUserService(users repository.UserRepository, log *zap.SugaredLogger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
