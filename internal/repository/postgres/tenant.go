package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/google/uuid"
)

type tenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedOn = now
	t.UpdatedOn = now
	query := `INSERT INTO tenants (id, name, email, phone, national_id, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Email, t.Phone, t.NationalID, t.Active, t.CreatedOn, t.UpdatedOn)
	if isUniqueViolation(err) {
		return domain.NewConflict("a tenant with national id %s already exists", t.NationalID)
	}
	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	query := `SELECT id, name, email, phone, national_id, active, created_on, updated_on FROM tenants WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.NationalID, &t.Active, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, notFoundOr(err, "tenant %s not found", id)
	}
	return t, nil
}

func (r *tenantRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	query := `SELECT id, name, email, phone, national_id, active, created_on, updated_on FROM tenants WHERE national_id = $1`
	err := r.db.QueryRowContext(ctx, query, nationalID).Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.NationalID, &t.Active, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, notFoundOr(err, "tenant with national id %s not found", nationalID)
	}
	return t, nil
}

func (r *tenantRepository) List(ctx context.Context, search string, active *bool) ([]domain.Tenant, error) {
	query := `SELECT id, name, email, phone, national_id, active, created_on, updated_on FROM tenants WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if active != nil {
		query += ` AND active = $1`
		args = append(args, *active)
		argIdx++
	}
	if search != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d OR national_id ILIKE $%d)`, argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_on, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &t.Phone, &t.NationalID, &t.Active, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *tenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	t.UpdatedOn = time.Now().UTC()
	query := `UPDATE tenants SET name=$1, email=$2, phone=$3, active=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, t.Name, t.Email, t.Phone, t.Active, t.UpdatedOn, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("tenant %s not found", t.ID)
	}
	return nil
}
