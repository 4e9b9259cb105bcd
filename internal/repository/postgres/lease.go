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

type leaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) repository.LeaseRepository {
	return &leaseRepository{db: db}
}

const leaseColumns = `id, room_id, tenant_id, start_date, end_date, monthly_rent, deposit, expense_tariff, cleaning_included, status, archived, settlement_status, settlement_amount, settled_on, created_on, updated_on`

func scanLease(row interface{ Scan(...interface{}) error }, l *domain.Lease) error {
	return row.Scan(&l.ID, &l.RoomID, &l.TenantID, &l.StartDate, &l.EndDate,
		&l.MonthlyRent, &l.Deposit, &l.ExpenseTariff, &l.CleaningIncluded,
		&l.Status, &l.Archived, &l.Settlement.Status, &l.Settlement.AmountToReturn,
		&l.Settlement.SettledOn, &l.CreatedOn, &l.UpdatedOn)
}

// Create holds a row lock on the room while it re-checks the one-active-lease
// invariant, so two concurrent creations against the same room serialize. The
// partial unique index leases_one_active_per_room backs this up at the store
// level.
func (r *leaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	l.CreatedOn = now
	l.UpdatedOn = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var roomID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, l.RoomID).Scan(&roomID)
	if err != nil {
		return notFoundOr(err, "room %s not found", l.RoomID)
	}

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM leases WHERE room_id = $1 AND status = $2`, l.RoomID, domain.LeaseStatusActive).Scan(&existing)
	switch {
	case err == nil:
		return domain.NewConflict("room %s already has an active lease", l.RoomID)
	case err != sql.ErrNoRows:
		return err
	}

	query := `INSERT INTO leases (` + leaseColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = tx.ExecContext(ctx, query, l.ID, l.RoomID, l.TenantID, l.StartDate, l.EndDate,
		l.MonthlyRent, l.Deposit, l.ExpenseTariff, l.CleaningIncluded,
		l.Status, l.Archived, l.Settlement.Status, l.Settlement.AmountToReturn,
		l.Settlement.SettledOn, l.CreatedOn, l.UpdatedOn)
	if isUniqueViolation(err) {
		return domain.NewConflict("room %s already has an active lease", l.RoomID)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *leaseRepository) GetByID(ctx context.Context, id string) (*domain.Lease, error) {
	l := &domain.Lease{}
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1`
	if err := scanLease(r.db.QueryRowContext(ctx, query, id), l); err != nil {
		return nil, notFoundOr(err, "lease %s not found", id)
	}
	return l, nil
}

func (r *leaseRepository) GetActiveByRoom(ctx context.Context, roomID string) (*domain.Lease, error) {
	l := &domain.Lease{}
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE room_id = $1 AND status = $2`
	err := scanLease(r.db.QueryRowContext(ctx, query, roomID, domain.LeaseStatusActive), l)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leaseRepository) List(ctx context.Context, filter domain.LeaseFilter) ([]domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.RoomID != "" {
		query += fmt.Sprintf(` AND room_id = $%d`, argIdx)
		args = append(args, filter.RoomID)
		argIdx++
	}
	if filter.TenantID != "" {
		query += fmt.Sprintf(` AND tenant_id = $%d`, argIdx)
		args = append(args, filter.TenantID)
		argIdx++
	}
	if filter.BuildingID != "" {
		query += fmt.Sprintf(` AND room_id IN (SELECT id FROM rooms WHERE building_id = $%d)`, argIdx)
		args = append(args, filter.BuildingID)
		argIdx++
	}
	query += ` ORDER BY created_on, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		var l domain.Lease
		if err := scanLease(rows, &l); err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func (r *leaseRepository) Update(ctx context.Context, l *domain.Lease) error {
	l.UpdatedOn = time.Now().UTC()
	query := `UPDATE leases SET end_date=$1, monthly_rent=$2, status=$3, archived=$4, settlement_status=$5, settlement_amount=$6, settled_on=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, l.EndDate, l.MonthlyRent, l.Status, l.Archived,
		l.Settlement.Status, l.Settlement.AmountToReturn, l.Settlement.SettledOn, l.UpdatedOn, l.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("lease %s not found", l.ID)
	}
	return nil
}

func (r *leaseRepository) CountByRoom(ctx context.Context, roomID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM leases WHERE room_id = $1`, roomID).Scan(&count)
	return count, err
}

func (r *leaseRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM leases WHERE status = $1`, domain.LeaseStatusActive).Scan(&count)
	return count, err
}

func (r *leaseRepository) CountActiveEndingBefore(ctx context.Context, t time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM leases WHERE status = $1 AND end_date <= $2`, domain.LeaseStatusActive, t).Scan(&count)
	return count, err
}
