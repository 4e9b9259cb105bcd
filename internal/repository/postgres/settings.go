package postgres

import (
	"context"
	"database/sql"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/google/uuid"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, company_name, company_tax_id, company_address, company_email, company_phone, company_logo, mail_host, mail_port, mail_user, mail_password, mail_use_tls, default_billing_day, default_expense_tariff, updated_on`

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	query := `SELECT ` + settingsColumns + ` FROM settings LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.Company.Name, &s.Company.TaxID, &s.Company.Address, &s.Company.Email,
		&s.Company.Phone, &s.Company.Logo, &s.Mail.Host, &s.Mail.Port, &s.Mail.User,
		&s.Mail.Password, &s.Mail.UseTLS, &s.DefaultBillingDay, &s.DefaultExpenseTariff, &s.UpdatedOn)
	if err != nil {
		return nil, notFoundOr(err, "settings not initialized")
	}
	return s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *domain.Settings) error {
	s.UpdatedOn = time.Now().UTC()
	query := `UPDATE settings SET company_name=$1, company_tax_id=$2, company_address=$3, company_email=$4, company_phone=$5, company_logo=$6,
	          mail_host=$7, mail_port=$8, mail_user=$9, mail_password=$10, mail_use_tls=$11,
	          default_billing_day=$12, default_expense_tariff=$13, updated_on=$14 WHERE id=$15`
	res, err := r.db.ExecContext(ctx, query, s.Company.Name, s.Company.TaxID, s.Company.Address,
		s.Company.Email, s.Company.Phone, s.Company.Logo, s.Mail.Host, s.Mail.Port,
		s.Mail.User, s.Mail.Password, s.Mail.UseTLS, s.DefaultBillingDay,
		s.DefaultExpenseTariff, s.UpdatedOn, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("settings not initialized")
	}
	return nil
}

func (r *settingsRepository) EnsureDefaults(ctx context.Context, s *domain.Settings) error {
	var existing string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM settings LIMIT 1`).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.UpdatedOn = time.Now().UTC()
	query := `INSERT INTO settings (` + settingsColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.db.ExecContext(ctx, query, s.ID, s.Company.Name, s.Company.TaxID, s.Company.Address,
		s.Company.Email, s.Company.Phone, s.Company.Logo, s.Mail.Host, s.Mail.Port,
		s.Mail.User, s.Mail.Password, s.Mail.UseTLS, s.DefaultBillingDay,
		s.DefaultExpenseTariff, s.UpdatedOn)
	return err
}
