package service

import (
	"context"
	"strings"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, name, phone, email, password string, role domain.Role) (*domain.User, error) {
	if err := authorize(actor, OpManageUsers); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, domain.NewInvalidInput("name and email are required")
	}
	if len(password) < 8 {
		return nil, domain.NewInvalidInput("password must be at least 8 characters")
	}
	switch role {
	case domain.RoleAdmin, domain.RoleSupervisor, domain.RoleCollections:
	default:
		return nil, domain.NewInvalidInput("unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	// The repository maps the unique email violation to Conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser leaves the email alone: it is write-once.
func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, upd UserUpdate) (*domain.User, error) {
	if err := authorize(actor, OpManageUsers); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, domain.NewInvalidInput("name is required")
		}
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.Password != nil {
		if len(*upd.Password) < 8 {
			return nil, domain.NewInvalidInput("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if upd.Role != nil {
		switch *upd.Role {
		case domain.RoleAdmin, domain.RoleSupervisor, domain.RoleCollections:
		default:
			return nil, domain.NewInvalidInput("unknown role %q", *upd.Role)
		}
		user.Role = *upd.Role
	}
	if upd.Active != nil {
		user.Active = *upd.Active
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, userID string) error {
	if err := authorize(actor, OpManageUsers); err != nil {
		return err
	}
	if userID == actor.ID {
		return domain.NewInvalidInput("cannot delete your own account")
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := authorize(actor, OpManageUsers); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}
