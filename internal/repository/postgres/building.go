package postgres

import (
	"context"
	"database/sql"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/google/uuid"
)

type buildingRepository struct {
	db *sql.DB
}

func NewBuildingRepository(db *sql.DB) repository.BuildingRepository {
	return &buildingRepository{db: db}
}

func (r *buildingRepository) Create(ctx context.Context, b *domain.Building) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedOn = now
	b.UpdatedOn = now
	query := `INSERT INTO buildings (id, name, address, notes, has_cleaning_service, monthly_cleaning_fee, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, b.ID, b.Name, b.Address, b.Notes, b.HasCleaningService, b.MonthlyCleaningFee, b.CreatedOn, b.UpdatedOn)
	return err
}

func (r *buildingRepository) GetByID(ctx context.Context, id string) (*domain.Building, error) {
	b := &domain.Building{}
	query := `SELECT id, name, address, notes, has_cleaning_service, monthly_cleaning_fee, created_on, updated_on FROM buildings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.Notes, &b.HasCleaningService, &b.MonthlyCleaningFee, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, notFoundOr(err, "building %s not found", id)
	}
	return b, nil
}

func (r *buildingRepository) List(ctx context.Context) ([]domain.Building, error) {
	query := `SELECT id, name, address, notes, has_cleaning_service, monthly_cleaning_fee, created_on, updated_on FROM buildings ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []domain.Building
	for rows.Next() {
		var b domain.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Notes, &b.HasCleaningService, &b.MonthlyCleaningFee, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

func (r *buildingRepository) Update(ctx context.Context, b *domain.Building) error {
	b.UpdatedOn = time.Now().UTC()
	query := `UPDATE buildings SET name=$1, address=$2, notes=$3, has_cleaning_service=$4, monthly_cleaning_fee=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, b.Name, b.Address, b.Notes, b.HasCleaningService, b.MonthlyCleaningFee, b.UpdatedOn, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("building %s not found", b.ID)
	}
	return nil
}

func (r *buildingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM buildings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("building %s not found", id)
	}
	return nil
}
