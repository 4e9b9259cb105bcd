package postgres

import (
	"context"
	"database/sql"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedOn = time.Now().UTC()
	query := `INSERT INTO expenses (id, lease_id, date, concept, amount, deduct_from_deposit, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.LeaseID, e.Date, e.Concept, e.Amount, e.DeductFromDeposit, e.CreatedOn)
	return err
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	e := &domain.Expense{}
	query := `SELECT id, lease_id, date, concept, amount, deduct_from_deposit, created_on FROM expenses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.LeaseID, &e.Date, &e.Concept, &e.Amount, &e.DeductFromDeposit, &e.CreatedOn)
	if err != nil {
		return nil, notFoundOr(err, "expense %s not found", id)
	}
	return e, nil
}

func (r *expenseRepository) List(ctx context.Context, leaseID string) ([]domain.Expense, error) {
	query := `SELECT id, lease_id, date, concept, amount, deduct_from_deposit, created_on FROM expenses`
	args := []interface{}{}
	if leaseID != "" {
		query += ` WHERE lease_id = $1`
		args = append(args, leaseID)
	}
	query += ` ORDER BY created_on, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.LeaseID, &e.Date, &e.Concept, &e.Amount, &e.DeductFromDeposit, &e.CreatedOn); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	query := `UPDATE expenses SET date=$1, concept=$2, amount=$3, deduct_from_deposit=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, e.Date, e.Concept, e.Amount, e.DeductFromDeposit, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("expense %s not found", e.ID)
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("expense %s not found", id)
	}
	return nil
}

func (r *expenseRepository) SumDeductibleByLease(ctx context.Context, leaseID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE lease_id = $1 AND deduct_from_deposit = true`
	err := r.db.QueryRowContext(ctx, query, leaseID).Scan(&sum)
	return sum, err
}
