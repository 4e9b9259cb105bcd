package service

import (
	"context"
	"testing"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("test-secret-test-secret-test-secret", 60)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "ana@example.com").
			Return(&domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin, Active: true}, nil)

		user, token, err := svc.Login(ctx, "ana@example.com", "secret-pass")
		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.NotEmpty(t, token)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.NewNotFound("no such user"))

		_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "ana@example.com").
			Return(&domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash), Active: true}, nil)

		_, _, err := svc.Login(ctx, "ana@example.com", "wrong-pass")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("DeactivatedAccount", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "ana@example.com").
			Return(&domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash), Active: false}, nil)

		_, _, err := svc.Login(ctx, "ana@example.com", "secret-pass")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
