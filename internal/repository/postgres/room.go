package postgres

import (
	"context"
	"database/sql"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"

	"github.com/google/uuid"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, rm *domain.Room) error {
	if rm.ID == "" {
		rm.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rm.CreatedOn = now
	rm.UpdatedOn = now
	query := `INSERT INTO rooms (id, building_id, name, square_meters, base_price, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, rm.ID, rm.BuildingID, rm.Name, rm.SquareMeters, rm.BasePrice, rm.CreatedOn, rm.UpdatedOn)
	return err
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	rm := &domain.Room{}
	query := `SELECT id, building_id, name, square_meters, base_price, created_on, updated_on FROM rooms WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rm.ID, &rm.BuildingID, &rm.Name, &rm.SquareMeters, &rm.BasePrice, &rm.CreatedOn, &rm.UpdatedOn)
	if err != nil {
		return nil, notFoundOr(err, "room %s not found", id)
	}
	return rm, nil
}

func (r *roomRepository) List(ctx context.Context, buildingID string) ([]domain.Room, error) {
	query := `SELECT id, building_id, name, square_meters, base_price, created_on, updated_on FROM rooms`
	args := []interface{}{}
	if buildingID != "" {
		query += ` WHERE building_id = $1`
		args = append(args, buildingID)
	}
	query += ` ORDER BY created_on, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.BuildingID, &rm.Name, &rm.SquareMeters, &rm.BasePrice, &rm.CreatedOn, &rm.UpdatedOn); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// Update never touches building_id; the room's building is immutable.
func (r *roomRepository) Update(ctx context.Context, rm *domain.Room) error {
	rm.UpdatedOn = time.Now().UTC()
	query := `UPDATE rooms SET name=$1, square_meters=$2, base_price=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, rm.Name, rm.SquareMeters, rm.BasePrice, rm.UpdatedOn, rm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("room %s not found", rm.ID)
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("room %s not found", id)
	}
	return nil
}

func (r *roomRepository) CountByBuilding(ctx context.Context, buildingID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rooms WHERE building_id = $1`, buildingID).Scan(&count)
	return count, err
}

func (r *roomRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rooms`).Scan(&count)
	return count, err
}
