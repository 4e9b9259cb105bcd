package service

import (
	"context"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) UpdateSettings(ctx context.Context, actor domain.Actor, upd *domain.Settings) error {
	if err := authorize(actor, OpManageSettings); err != nil {
		return err
	}
	if upd.DefaultBillingDay < 1 || upd.DefaultBillingDay > 28 {
		return domain.NewInvalidInput("default billing day must be between 1 and 28")
	}
	if upd.DefaultExpenseTariff.IsNegative() {
		return domain.NewInvalidInput("default expense tariff must not be negative")
	}
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	upd.ID = current.ID
	if upd.Mail.Password == "" {
		upd.Mail.Password = current.Mail.Password
	}
	return s.settingsRepo.Update(ctx, upd)
}
