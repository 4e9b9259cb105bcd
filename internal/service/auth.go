package service

import (
	"context"
	"errors"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"
	"roomledger-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Login never says which of email or password was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.NewUnauthorized("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.NewUnauthorized("invalid email or password")
	}
	if !user.Active {
		return nil, "", domain.NewForbidden("account is deactivated")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
