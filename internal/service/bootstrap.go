package service

import (
	"context"
	"errors"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/logger"
	"roomledger-backend/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminEmail    = "admin@admin.com"
	defaultAdminPassword = "Admin123"
)

// Bootstrap seeds the singleton settings row and a default admin account on
// an empty database. Safe to run on every startup.
func Bootstrap(ctx context.Context, userRepo repository.UserRepository, settingsRepo repository.SettingsRepository) error {
	if err := settingsRepo.EnsureDefaults(ctx, &domain.Settings{
		Company:              domain.CompanyProfile{Name: "My Company"},
		Mail:                 domain.MailConfig{Port: 587, UseTLS: true},
		DefaultBillingDay:    5,
		DefaultExpenseTariff: decimal.NewFromFloat(50.0),
	}); err != nil {
		return err
	}

	_, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:         "Administrator",
		Email:        defaultAdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("seeded default admin account", "email", defaultAdminEmail)
	return nil
}
