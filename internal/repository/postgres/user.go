package postgres

import (
	"context"
	"database/sql"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedOn = now
	u.UpdatedOn = now
	query := `INSERT INTO users (id, name, phone, email, password_hash, role, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Phone, u.Email, u.PasswordHash, u.Role, u.Active, u.CreatedOn, u.UpdatedOn)
	if isUniqueViolation(err) {
		return domain.NewConflict("a user with email %s already exists", u.Email)
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, phone, email, password_hash, role, active, created_on, updated_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, notFoundOr(err, "user %s not found", id)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, phone, email, password_hash, role, active, created_on, updated_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, notFoundOr(err, "user with email %s not found", email)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, phone, email, password_hash, role, active, created_on, updated_on FROM users ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedOn, &u.UpdatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedOn = time.Now().UTC()
	query := `UPDATE users SET name=$1, phone=$2, password_hash=$3, role=$4, active=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, u.Name, u.Phone, u.PasswordHash, u.Role, u.Active, u.UpdatedOn, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("user %s not found", u.ID)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("user %s not found", id)
	}
	return nil
}
