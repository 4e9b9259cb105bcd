package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, lease_id, month_year, type, amount, method, status, payment_date, created_by, reviewed_by, notes, created_on, updated_on`

func scanPayment(row interface{ Scan(...interface{}) error }, p *domain.Payment) error {
	return row.Scan(&p.ID, &p.LeaseID, &p.MonthYear, &p.Type, &p.Amount, &p.Method,
		&p.Status, &p.PaymentDate, &p.CreatedBy, &p.ReviewedBy, &p.Notes,
		&p.CreatedOn, &p.UpdatedOn)
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedOn = time.Now().UTC()
	query := `INSERT INTO payments (` + paymentColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.LeaseID, p.MonthYear, p.Type, p.Amount,
		p.Method, p.Status, p.PaymentDate, p.CreatedBy, p.ReviewedBy, p.Notes,
		p.CreatedOn, p.UpdatedOn)
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	if err := scanPayment(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		return nil, notFoundOr(err, "payment %s not found", id)
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	addFilter := func(clause string, value interface{}) {
		query += fmt.Sprintf(clause, argIdx)
		args = append(args, value)
		argIdx++
	}
	if filter.LeaseID != "" {
		addFilter(` AND lease_id = $%d`, filter.LeaseID)
	}
	if filter.Type != "" {
		addFilter(` AND type = $%d`, filter.Type)
	}
	if filter.Status != "" {
		addFilter(` AND status = $%d`, filter.Status)
	}
	if filter.MonthYear != "" {
		addFilter(` AND month_year = $%d`, filter.MonthYear)
	}
	if filter.RoomID != "" {
		addFilter(` AND lease_id IN (SELECT id FROM leases WHERE room_id = $%d)`, filter.RoomID)
	}
	if filter.TenantID != "" {
		addFilter(` AND lease_id IN (SELECT id FROM leases WHERE tenant_id = $%d)`, filter.TenantID)
	}
	if filter.BuildingID != "" {
		addFilter(` AND lease_id IN (SELECT l.id FROM leases l JOIN rooms r ON r.id = l.room_id WHERE r.building_id = $%d)`, filter.BuildingID)
	}
	query += ` ORDER BY created_on, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	now := time.Now().UTC()
	p.UpdatedOn = &now
	query := `UPDATE payments SET amount=$1, method=$2, status=$3, payment_date=$4, reviewed_by=$5, notes=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, p.Amount, p.Method, p.Status, p.PaymentDate, p.ReviewedBy, p.Notes, p.UpdatedOn, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("payment %s not found", p.ID)
	}
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("payment %s not found", id)
	}
	return nil
}

// MarkOverdueUpTo relies on the lexicographic ordering of "YYYY-MM" buckets.
// Only rent and expenses payments go overdue; deposit movements are excluded.
func (r *paymentRepository) MarkOverdueUpTo(ctx context.Context, bucket string) (int64, error) {
	query := `UPDATE payments SET status=$1, updated_on=$2
	          WHERE status = ANY($3) AND type = ANY($4) AND month_year <= $5`
	res, err := r.db.ExecContext(ctx, query, domain.PaymentStatusOverdue, time.Now().UTC(),
		pq.Array([]string{string(domain.PaymentStatusPending), string(domain.PaymentStatusInReview)}),
		pq.Array([]string{string(domain.PaymentTypeRent), string(domain.PaymentTypeExpenses)}),
		bucket)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *paymentRepository) SumByStatusAndMonth(ctx context.Context, status domain.PaymentStatus, bucket string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1 AND month_year = $2`
	err := r.db.QueryRowContext(ctx, query, status, bucket).Scan(&sum)
	return sum, err
}

func (r *paymentRepository) CountByStatuses(ctx context.Context, statuses []domain.PaymentStatus) (int, error) {
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE status = ANY($1)`, pq.Array(strs)).Scan(&count)
	return count, err
}
